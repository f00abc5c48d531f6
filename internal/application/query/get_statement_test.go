package query

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// fakeStudentRepo is an in-memory student.Repository for query tests.
type fakeStudentRepo struct {
	mu      sync.Mutex
	records []*student.Student
}

func (r *fakeStudentRepo) Create(ctx context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

// fakeRenderer joins lines so tests can inspect the "document" content.
type fakeRenderer struct {
	calls int
}

func (f *fakeRenderer) Render(lines []string) ([]byte, error) {
	f.calls++
	return []byte(strings.Join(lines, "\n")), nil
}

// fakeProtector prefixes the document with the password it was locked with.
type fakeProtector struct {
	passwords []string
}

func (f *fakeProtector) Protect(doc []byte, password string) ([]byte, error) {
	f.passwords = append(f.passwords, password)
	return append([]byte("locked:"+password+":"), doc...), nil
}

// fakeArtifactCache is an in-memory statement.ArtifactCache.
type fakeArtifactCache struct {
	mu   sync.Mutex
	docs map[student.AdmissionNo][]byte
}

func newFakeArtifactCache() *fakeArtifactCache {
	return &fakeArtifactCache{docs: make(map[student.AdmissionNo][]byte)}
}

func (c *fakeArtifactCache) Get(ctx context.Context, no student.AdmissionNo) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[no]
	if !ok {
		return nil, shared.NewDomainError("statement", "CacheGet", shared.ErrNotFound, "no cached statement")
	}
	return doc, nil
}

func (c *fakeArtifactCache) Set(ctx context.Context, no student.AdmissionNo, doc []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[no] = doc
	return nil
}

func seedStudent(t *testing.T, repo *fakeStudentRepo) *student.Student {
	t.Helper()
	fees := student.ResolveFees(student.Grade1, student.FeeOptions{Food: true}, student.TransportOneWay)
	total := fees.Total()
	s := &student.Student{
		AdmissionNo:   "AJA001",
		FirstName:     "Amina",
		MiddleName:    "Wanjiru",
		Grade:         student.Grade1,
		Fees:          fees,
		TotalFee:      total,
		AmountPaid:    1000,
		Balance:       total - 1000,
		TransportMode: student.TransportOneWay,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

// ─────────────────────────────────────────────────────────────────────────────

func TestGetStatement_RendersAndProtects(t *testing.T) {
	repo := &fakeStudentRepo{}
	seedStudent(t, repo)

	renderer := &fakeRenderer{}
	protector := &fakeProtector{}
	h := NewGetStatementHandler(repo, renderer, protector, nil, nil)

	result, err := h.Handle(context.Background(), GetStatementQuery{AdmissionNo: "AJA001"})

	require.NoError(t, err)
	assert.Equal(t, "AJA001_fee.pdf", result.Filename)
	assert.Contains(t, string(result.Document), "Fee Statement: AJA001")
	assert.Contains(t, string(result.Document), "Food Fee: Ksh 3500")

	// The password is the admission number.
	require.Len(t, protector.passwords, 1)
	assert.Equal(t, "AJA001", protector.passwords[0])
}

func TestGetStatement_UnknownStudent(t *testing.T) {
	repo := &fakeStudentRepo{}
	renderer := &fakeRenderer{}
	protector := &fakeProtector{}
	h := NewGetStatementHandler(repo, renderer, protector, nil, nil)

	_, err := h.Handle(context.Background(), GetStatementQuery{AdmissionNo: "AJA999"})

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
	assert.Equal(t, 0, renderer.calls, "nothing rendered for unknown record")
}

func TestGetStatement_CacheHitSkipsRendering(t *testing.T) {
	repo := &fakeStudentRepo{}
	seedStudent(t, repo)

	renderer := &fakeRenderer{}
	protector := &fakeProtector{}
	artifacts := newFakeArtifactCache()
	h := NewGetStatementHandler(repo, renderer, protector, artifacts, nil)

	first, err := h.Handle(context.Background(), GetStatementQuery{AdmissionNo: "AJA001"})
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)

	second, err := h.Handle(context.Background(), GetStatementQuery{AdmissionNo: "AJA001"})
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls, "second request served from cache")
	assert.Equal(t, first.Document, second.Document)
}

func TestGetStudent_Found(t *testing.T) {
	repo := &fakeStudentRepo{}
	seeded := seedStudent(t, repo)

	h := NewGetStudentHandler(repo, nil, nil)
	got, err := h.Handle(context.Background(), GetStudentQuery{AdmissionNo: "AJA001"})

	require.NoError(t, err)
	assert.Equal(t, seeded.AdmissionNo, got.AdmissionNo)
	assert.Equal(t, seeded.TotalFee, got.TotalFee)
}

func TestGetStudent_NotFound(t *testing.T) {
	repo := &fakeStudentRepo{}
	h := NewGetStudentHandler(repo, nil, nil)

	_, err := h.Handle(context.Background(), GetStudentQuery{AdmissionNo: "AJA404"})

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestListStudents_NewestFirstWithTotal(t *testing.T) {
	repo := &fakeStudentRepo{}
	for _, no := range []student.AdmissionNo{"AJA001", "AJA002", "AJA003"} {
		require.NoError(t, repo.Create(context.Background(), &student.Student{
			AdmissionNo: no,
			FirstName:   "Test",
			MiddleName:  "Student",
			Grade:       student.Grade1,
		}))
	}

	h := NewListStudentsHandler(repo, nil)
	result, err := h.Handle(context.Background(), ListStudentsQuery{Limit: 2})

	require.NoError(t, err)
	require.Len(t, result.Students, 2)
	assert.Equal(t, student.AdmissionNo("AJA003"), result.Students[0].AdmissionNo)
	assert.Equal(t, student.AdmissionNo("AJA002"), result.Students[1].AdmissionNo)
	assert.Equal(t, 3, result.Total)
}
