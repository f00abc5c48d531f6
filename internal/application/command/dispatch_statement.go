package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aja-school/aja-fees-hub/internal/domain/notification"
	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DISPATCH STATEMENT COMMAND
// Sends a guardian the download link for a student's fee statement over the
// configured messaging channel. Provider failures propagate; there is no
// retry and no state change on failure.
// ══════════════════════════════════════════════════════════════════════════════

// DispatchStatementCommand identifies the record and the destination.
type DispatchStatementCommand struct {
	// AdmissionNo selects the student whose statement link is sent.
	AdmissionNo string

	// To is the destination address in the provider's format
	// (e.g. "whatsapp:+254700000000").
	To string
}

// Validate checks the required fields.
func (c DispatchStatementCommand) Validate() error {
	if c.To == "" {
		return shared.MissingField("notification", "Dispatch", "to")
	}
	if c.AdmissionNo == "" {
		return shared.MissingField("notification", "Dispatch", "admission_no")
	}
	return nil
}

// DispatchStatementResult contains the provider's correlation identifier.
type DispatchStatementResult struct {
	Delivery notification.Delivery
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// DispatchStatementHandler handles the DispatchStatementCommand.
type DispatchStatementHandler struct {
	students  student.Repository
	messenger notification.Messenger

	// publicBaseURL is the externally reachable base of this service,
	// used to build the statement download link.
	publicBaseURL string

	log *logger.Logger
}

// NewDispatchStatementHandler creates a new DispatchStatementHandler.
func NewDispatchStatementHandler(
	students student.Repository,
	messenger notification.Messenger,
	publicBaseURL string,
	log *logger.Logger,
) *DispatchStatementHandler {
	if log == nil {
		log = logger.Default()
	}
	return &DispatchStatementHandler{
		students:      students,
		messenger:     messenger,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log.With(logger.Component("dispatch_statement")),
	}
}

// StatementLink builds the download link for a student's statement.
func (h *DispatchStatementHandler) StatementLink(no student.AdmissionNo) string {
	return fmt.Sprintf("%s/api/v1/students/%s/statement", h.publicBaseURL, no)
}

// Handle verifies the record exists, builds the link, and sends it. The
// record lookup happens before any provider call, so an unknown admission
// number never reaches the messaging provider.
func (h *DispatchStatementHandler) Handle(ctx context.Context, cmd DispatchStatementCommand) (*DispatchStatementResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	no := student.AdmissionNo(cmd.AdmissionNo)
	if _, err := h.students.GetByAdmissionNo(ctx, no); err != nil {
		return nil, err
	}

	link := h.StatementLink(no)
	body := fmt.Sprintf("Fee statement: %s", link)

	sid, err := h.messenger.Send(ctx, cmd.To, body)
	if err != nil {
		h.log.Error("statement dispatch failed",
			logger.AdmissionNo(cmd.AdmissionNo),
			logger.Err(err),
		)
		return nil, err
	}

	h.log.Info("statement link dispatched",
		logger.AdmissionNo(cmd.AdmissionNo),
		logger.String("sid", sid),
	)

	return &DispatchStatementResult{
		Delivery: notification.Delivery{
			ID:            uuid.New().String(),
			Channel:       notification.ChannelWhatsApp,
			To:            cmd.To,
			CorrelationID: sid,
			SentAt:        time.Now().UTC(),
		},
	}, nil
}
