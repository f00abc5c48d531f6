// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/student"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// studentCacheTTL bounds how long a record stays cached. Records are
// immutable, so the TTL only limits memory, not staleness.
const studentCacheTTL = 24 * time.Hour

// GetStudentQuery identifies the record to fetch.
type GetStudentQuery struct {
	AdmissionNo string
}

// GetStudentHandler handles the GetStudentQuery with cache-aside reads.
type GetStudentHandler struct {
	students student.Repository
	cache    student.Cache // optional
	log      *logger.Logger
}

// NewGetStudentHandler creates a new GetStudentHandler. The cache may be nil.
func NewGetStudentHandler(students student.Repository, cache student.Cache, log *logger.Logger) *GetStudentHandler {
	if log == nil {
		log = logger.Default()
	}
	return &GetStudentHandler{
		students: students,
		cache:    cache,
		log:      log.With(logger.Component("get_student")),
	}
}

// Handle returns the record for an admission number, or ErrStudentNotFound.
func (h *GetStudentHandler) Handle(ctx context.Context, q GetStudentQuery) (*student.Student, error) {
	no := student.AdmissionNo(q.AdmissionNo)

	if h.cache != nil {
		if s, err := h.cache.Get(ctx, no); err == nil {
			return s, nil
		}
	}

	s, err := h.students.GetByAdmissionNo(ctx, no)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, s, studentCacheTTL); err != nil {
			h.log.Warn("student cache write failed",
				logger.AdmissionNo(q.AdmissionNo),
				logger.Err(err),
			)
		}
	}

	return s, nil
}
