// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL STUDENT COMMAND
// Creates the fee record for a new student: validates input, resolves the
// itemized fees, computes totals, and persists exactly one record. This is
// the only mutation path in the system.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollStudentCommand contains the raw field set for a new fee record.
type EnrollStudentCommand struct {
	// AdmissionNo optionally overrides the generated admission number.
	// Colliding overrides fail with ErrDuplicateAdmissionNo.
	AdmissionNo string

	// FirstName and MiddleName are required. FamilyName is optional.
	FirstName  string
	MiddleName string
	FamilyName string

	// Grade is required. An unrecognized grade is accepted and priced at
	// zero tuition, matching the historical behaviour.
	Grade string

	// Elective opt-ins.
	Food           bool
	TextBooks      bool
	ExerciseBooks  bool
	AssessmentTool bool

	// TransportMode defaults to "None" when empty.
	TransportMode string

	// AmountPaid defaults to 0. Overpayment is allowed and yields a
	// negative balance.
	AmountPaid int
}

// Validate checks the required fields.
func (c EnrollStudentCommand) Validate() error {
	if c.FirstName == "" {
		return shared.MissingField("student", "Enroll", "first_name")
	}
	if c.MiddleName == "" {
		return shared.MissingField("student", "Enroll", "middle_name")
	}
	if c.Grade == "" {
		return shared.MissingField("student", "Enroll", "grade")
	}
	return nil
}

// EnrollStudentResult contains the outcome of an enrollment.
type EnrollStudentResult struct {
	// AdmissionNo is the generated or confirmed admission number.
	AdmissionNo student.AdmissionNo

	// TotalFee and Balance echo the computed amounts.
	TotalFee int
	Balance  int

	// CreatedAt is when the record was persisted.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// EnrollStudentHandler handles the EnrollStudentCommand.
type EnrollStudentHandler struct {
	students student.Repository
	log      *logger.Logger
}

// NewEnrollStudentHandler creates a new EnrollStudentHandler.
func NewEnrollStudentHandler(students student.Repository, log *logger.Logger) *EnrollStudentHandler {
	if log == nil {
		log = logger.Default()
	}
	return &EnrollStudentHandler{
		students: students,
		log:      log.With(logger.Component("enroll_student")),
	}
}

// Handle validates the command, resolves the fee schedule, and persists the
// record. Admission number allocation happens inside the repository's create
// transaction, so concurrent enrollments cannot silently share a number.
func (h *EnrollStudentHandler) Handle(ctx context.Context, cmd EnrollStudentCommand) (*EnrollStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	mode := student.TransportMode(cmd.TransportMode)
	if cmd.TransportMode == "" {
		mode = student.TransportNone
	}

	grade := student.Grade(cmd.Grade)
	fees := student.ResolveFees(grade, student.FeeOptions{
		Food:           cmd.Food,
		TextBooks:      cmd.TextBooks,
		ExerciseBooks:  cmd.ExerciseBooks,
		AssessmentTool: cmd.AssessmentTool,
	}, mode)

	total := fees.Total()
	s := &student.Student{
		AdmissionNo:   student.AdmissionNo(cmd.AdmissionNo),
		FirstName:     cmd.FirstName,
		MiddleName:    cmd.MiddleName,
		FamilyName:    cmd.FamilyName,
		Grade:         grade,
		Fees:          fees,
		TotalFee:      total,
		AmountPaid:    cmd.AmountPaid,
		Balance:       total - cmd.AmountPaid,
		TransportMode: mode,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.students.Create(ctx, s); err != nil {
		return nil, err
	}

	h.log.Info("student enrolled",
		logger.AdmissionNo(s.AdmissionNo.String()),
		logger.Grade(s.Grade.String()),
		logger.Amount("total_fee", s.TotalFee),
		logger.Amount("balance", s.Balance),
	)

	return &EnrollStudentResult{
		AdmissionNo: s.AdmissionNo,
		TotalFee:    s.TotalFee,
		Balance:     s.Balance,
		CreatedAt:   s.CreatedAt,
	}, nil
}
