package query

import (
	"context"

	"github.com/aja-school/aja-fees-hub/internal/domain/student"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery contains pagination parameters.
type ListStudentsQuery struct {
	Offset int
	Limit  int
}

// ListStudentsResult contains one page of records plus the total count.
type ListStudentsResult struct {
	Students []*student.Student
	Total    int
	Offset   int
	Limit    int
}

// ListStudentsHandler handles the ListStudentsQuery.
type ListStudentsHandler struct {
	students student.Repository
	log      *logger.Logger
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(students student.Repository, log *logger.Logger) *ListStudentsHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ListStudentsHandler{
		students: students,
		log:      log.With(logger.Component("list_students")),
	}
}

// Handle returns one page of records, newest first.
func (h *ListStudentsHandler) Handle(ctx context.Context, q ListStudentsQuery) (*ListStudentsResult, error) {
	opts := student.DefaultListOptions()
	if q.Limit > 0 {
		opts = opts.WithLimit(q.Limit)
	}
	if q.Offset > 0 {
		opts = opts.WithOffset(q.Offset)
	}

	students, err := h.students.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	total, err := h.students.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ListStudentsResult{
		Students: students,
		Total:    total,
		Offset:   opts.Offset,
		Limit:    opts.Limit,
	}, nil
}
