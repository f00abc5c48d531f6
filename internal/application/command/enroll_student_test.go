package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// fakeStudentRepo is an in-memory student.Repository for handler tests.
// Allocation mirrors the real store: the next number is derived from the
// last inserted record while holding the lock.
type fakeStudentRepo struct {
	mu      sync.Mutex
	records []*student.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{}
}

func (r *fakeStudentRepo) Create(ctx context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.AdmissionNo == "" {
		last := student.AdmissionNo("")
		if len(r.records) > 0 {
			last = r.records[len(r.records)-1].AdmissionNo
		}
		next, err := student.NextAdmissionNo(last)
		if err != nil {
			return err
		}
		s.AdmissionNo = next
	}

	for _, existing := range r.records {
		if existing.AdmissionNo == s.AdmissionNo {
			return student.ErrDuplicateAdmissionNo
		}
	}

	r.records = append(r.records, s)
	return nil
}

func (r *fakeStudentRepo) GetByAdmissionNo(ctx context.Context, no student.AdmissionNo) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.records {
		if s.AdmissionNo == no {
			return s, nil
		}
	}
	return nil, student.ErrStudentNotFound
}

func (r *fakeStudentRepo) List(ctx context.Context, opts student.ListOptions) ([]*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*student.Student, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	if opts.Offset >= len(out) {
		return nil, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *fakeStudentRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

// ─────────────────────────────────────────────────────────────────────────────

func TestEnrollStudent_FirstRecordGetsAJA001(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	result, err := h.Handle(context.Background(), EnrollStudentCommand{
		FirstName:  "Amina",
		MiddleName: "Wanjiru",
		Grade:      "Grade1",
	})

	require.NoError(t, err)
	assert.Equal(t, student.AdmissionNo("AJA001"), result.AdmissionNo)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestEnrollStudent_SequentialNumbers(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	for i, want := range []student.AdmissionNo{"AJA001", "AJA002", "AJA003"} {
		result, err := h.Handle(context.Background(), EnrollStudentCommand{
			FirstName:  "Student",
			MiddleName: "Number",
			Grade:      "Grade2",
		})
		require.NoError(t, err, "enrollment %d", i)
		assert.Equal(t, want, result.AdmissionNo)
	}
}

func TestEnrollStudent_MissingFields(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	cases := []struct {
		name string
		cmd  EnrollStudentCommand
		want string
	}{
		{"first name", EnrollStudentCommand{MiddleName: "W", Grade: "Grade1"}, "missing field first_name"},
		{"middle name", EnrollStudentCommand{FirstName: "A", Grade: "Grade1"}, "missing field middle_name"},
		{"grade", EnrollStudentCommand{FirstName: "A", MiddleName: "W"}, "missing field grade"},
	}

	for _, tc := range cases {
		_, err := h.Handle(context.Background(), tc.cmd)
		require.Error(t, err, tc.name)
		assert.True(t, shared.IsMissingField(err), tc.name)
		assert.Contains(t, err.Error(), tc.want, tc.name)

		count, _ := repo.Count(context.Background())
		assert.Equal(t, 0, count, "no record persisted for %s", tc.name)
	}
}

func TestEnrollStudent_ComputesTotalsFromSchedule(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	result, err := h.Handle(context.Background(), EnrollStudentCommand{
		FirstName:      "Amina",
		MiddleName:     "Wanjiru",
		Grade:          "Playgroup",
		Food:           true,
		TextBooks:      true,
		ExerciseBooks:  true,
		AssessmentTool: true,
		TransportMode:  "TwoWayUma",
		AmountPaid:     5000,
	})

	require.NoError(t, err)
	assert.Equal(t, 26150, result.TotalFee)
	assert.Equal(t, 21150, result.Balance)

	stored, err := repo.GetByAdmissionNo(context.Background(), result.AdmissionNo)
	require.NoError(t, err)
	assert.Equal(t, 6500, stored.Fees.Tuition)
	assert.Equal(t, 8000, stored.Fees.Transport)
	assert.Equal(t, 1000, stored.Fees.Admission)
	assert.Equal(t, student.TransportTwoWayUma, stored.TransportMode)
}

func TestEnrollStudent_TransportDefaultsToNone(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	result, err := h.Handle(context.Background(), EnrollStudentCommand{
		FirstName:  "Brian",
		MiddleName: "Kipchoge",
		Grade:      "Grade1",
	})

	require.NoError(t, err)
	stored, err := repo.GetByAdmissionNo(context.Background(), result.AdmissionNo)
	require.NoError(t, err)
	assert.Equal(t, student.TransportNone, stored.TransportMode)
	assert.Equal(t, 0, stored.Fees.Transport)
}

func TestEnrollStudent_UnknownGradeAccepted(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	result, err := h.Handle(context.Background(), EnrollStudentCommand{
		FirstName:  "Casey",
		MiddleName: "Njeri",
		Grade:      "Grade13",
	})

	// 0 tuition + activity 200 + diary 150
	require.NoError(t, err)
	assert.Equal(t, 350, result.TotalFee)
}

func TestEnrollStudent_OverpaymentYieldsNegativeBalance(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	result, err := h.Handle(context.Background(), EnrollStudentCommand{
		FirstName:  "Dana",
		MiddleName: "Atieno",
		Grade:      "Grade1",
		AmountPaid: 20000,
	})

	// Grade1 base: 8500 + 200 + 150 = 8850
	require.NoError(t, err)
	assert.Equal(t, 8850, result.TotalFee)
	assert.Equal(t, -11150, result.Balance)
}

func TestEnrollStudent_DuplicateOverrideRejected(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewEnrollStudentHandler(repo, nil)

	_, err := h.Handle(context.Background(), EnrollStudentCommand{
		AdmissionNo: "AJA500",
		FirstName:   "Eve",
		MiddleName:  "Moraa",
		Grade:       "Grade1",
	})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), EnrollStudentCommand{
		AdmissionNo: "AJA500",
		FirstName:   "Faith",
		MiddleName:  "Chebet",
		Grade:       "Grade2",
	})
	require.Error(t, err)
	assert.True(t, shared.IsAlreadyExists(err))

	count, _ := repo.Count(context.Background())
	assert.Equal(t, 1, count)
}
