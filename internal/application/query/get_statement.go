package query

import (
	"context"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/statement"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATEMENT QUERY
// Produces the downloadable artifact: the record's statement lines rendered
// onto a PDF page and wrapped with password protection. The password is the
// student's admission number.
// ══════════════════════════════════════════════════════════════════════════════

// statementCacheTTL bounds how long a rendered artifact stays cached.
// Records are immutable, so a cached statement never goes stale.
const statementCacheTTL = 24 * time.Hour

// GetStatementQuery identifies the record to render.
type GetStatementQuery struct {
	AdmissionNo string
}

// GetStatementResult carries the protected document and its download name.
type GetStatementResult struct {
	AdmissionNo student.AdmissionNo
	Filename    string
	Document    []byte
}

// GetStatementHandler handles the GetStatementQuery.
type GetStatementHandler struct {
	students  student.Repository
	renderer  statement.Renderer
	protector statement.Protector
	artifacts statement.ArtifactCache // optional
	log       *logger.Logger
}

// NewGetStatementHandler creates a new GetStatementHandler. The artifact
// cache may be nil.
func NewGetStatementHandler(
	students student.Repository,
	renderer statement.Renderer,
	protector statement.Protector,
	artifacts statement.ArtifactCache,
	log *logger.Logger,
) *GetStatementHandler {
	if log == nil {
		log = logger.Default()
	}
	return &GetStatementHandler{
		students:  students,
		renderer:  renderer,
		protector: protector,
		artifacts: artifacts,
		log:       log.With(logger.Component("get_statement")),
	}
}

// Handle looks up the record, then renders and protects its statement.
// An unknown admission number surfaces ErrStudentNotFound before any
// rendering work happens.
func (h *GetStatementHandler) Handle(ctx context.Context, q GetStatementQuery) (*GetStatementResult, error) {
	no := student.AdmissionNo(q.AdmissionNo)

	if h.artifacts != nil {
		if doc, err := h.artifacts.Get(ctx, no); err == nil {
			return &GetStatementResult{
				AdmissionNo: no,
				Filename:    statement.Filename(no),
				Document:    doc,
			}, nil
		}
	}

	s, err := h.students.GetByAdmissionNo(ctx, no)
	if err != nil {
		return nil, err
	}

	plain, err := h.renderer.Render(statement.Lines(s))
	if err != nil {
		return nil, err
	}

	protected, err := h.protector.Protect(plain, s.AdmissionNo.String())
	if err != nil {
		return nil, err
	}

	if h.artifacts != nil {
		if err := h.artifacts.Set(ctx, no, protected, statementCacheTTL); err != nil {
			h.log.Warn("statement cache write failed",
				logger.AdmissionNo(q.AdmissionNo),
				logger.Err(err),
			)
		}
	}

	h.log.Debug("statement rendered",
		logger.AdmissionNo(q.AdmissionNo),
		logger.Int("bytes", len(protected)),
	)

	return &GetStatementResult{
		AdmissionNo: no,
		Filename:    statement.Filename(no),
		Document:    protected,
	}, nil
}
