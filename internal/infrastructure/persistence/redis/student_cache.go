package redis

import (
	"context"
	"errors"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// studentKeyPrefix namespaces cached fee records.
const studentKeyPrefix = "student:"

// cachedStudent is the serialized form of a fee record. A dedicated DTO keeps
// the cache format stable if the domain entity grows fields.
type cachedStudent struct {
	AdmissionNo    string    `json:"admission_no"`
	FirstName      string    `json:"first_name"`
	MiddleName     string    `json:"middle_name"`
	FamilyName     string    `json:"family_name,omitempty"`
	Grade          string    `json:"grade"`
	Tuition        int       `json:"tuition_fee"`
	Food           int       `json:"food_fee"`
	TextBooks      int       `json:"text_books_fee"`
	ExerciseBooks  int       `json:"exercise_books_fee"`
	AssessmentTool int       `json:"assesment_tool_fee"`
	Transport      int       `json:"transport_fee"`
	Activity       int       `json:"activity_fee"`
	Diary          int       `json:"diary_fee"`
	Admission      int       `json:"admission_fee"`
	TotalFee       int       `json:"total_fee"`
	AmountPaid     int       `json:"amount_paid"`
	Balance        int       `json:"balance"`
	TransportMode  string    `json:"transport_mode"`
	CreatedAt      time.Time `json:"created_at"`
}

// StudentCache implements student.Cache on Redis.
type StudentCache struct {
	cache *Cache
}

// NewStudentCache creates a new StudentCache.
func NewStudentCache(cache *Cache) *StudentCache {
	return &StudentCache{cache: cache}
}

// Get returns a cached record, or student.ErrStudentNotFound on a miss.
func (c *StudentCache) Get(ctx context.Context, no student.AdmissionNo) (*student.Student, error) {
	var dto cachedStudent
	if err := c.cache.Get(ctx, studentKeyPrefix+no.String(), &dto); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, student.ErrStudentNotFound
		}
		return nil, err
	}
	return dto.toEntity(), nil
}

// Set stores a record with the given TTL.
func (c *StudentCache) Set(ctx context.Context, s *student.Student, ttl time.Duration) error {
	return c.cache.Set(ctx, studentKeyPrefix+s.AdmissionNo.String(), fromEntity(s), ttl)
}

// Delete evicts a record.
func (c *StudentCache) Delete(ctx context.Context, no student.AdmissionNo) error {
	return c.cache.Delete(ctx, studentKeyPrefix+no.String())
}

func fromEntity(s *student.Student) cachedStudent {
	return cachedStudent{
		AdmissionNo:    s.AdmissionNo.String(),
		FirstName:      s.FirstName,
		MiddleName:     s.MiddleName,
		FamilyName:     s.FamilyName,
		Grade:          s.Grade.String(),
		Tuition:        s.Fees.Tuition,
		Food:           s.Fees.Food,
		TextBooks:      s.Fees.TextBooks,
		ExerciseBooks:  s.Fees.ExerciseBooks,
		AssessmentTool: s.Fees.AssessmentTool,
		Transport:      s.Fees.Transport,
		Activity:       s.Fees.Activity,
		Diary:          s.Fees.Diary,
		Admission:      s.Fees.Admission,
		TotalFee:       s.TotalFee,
		AmountPaid:     s.AmountPaid,
		Balance:        s.Balance,
		TransportMode:  s.TransportMode.String(),
		CreatedAt:      s.CreatedAt,
	}
}

func (d cachedStudent) toEntity() *student.Student {
	return &student.Student{
		AdmissionNo: student.AdmissionNo(d.AdmissionNo),
		FirstName:   d.FirstName,
		MiddleName:  d.MiddleName,
		FamilyName:  d.FamilyName,
		Grade:       student.Grade(d.Grade),
		Fees: student.FeeBreakdown{
			Tuition:        d.Tuition,
			Food:           d.Food,
			TextBooks:      d.TextBooks,
			ExerciseBooks:  d.ExerciseBooks,
			AssessmentTool: d.AssessmentTool,
			Transport:      d.Transport,
			Activity:       d.Activity,
			Diary:          d.Diary,
			Admission:      d.Admission,
		},
		TotalFee:      d.TotalFee,
		AmountPaid:    d.AmountPaid,
		Balance:       d.Balance,
		TransportMode: student.TransportMode(d.TransportMode),
		CreatedAt:     d.CreatedAt,
	}
}
