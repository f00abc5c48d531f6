// Package statement builds the printable fee statement for a student record.
// The line list produced here is the full content contract of the document:
// same record in, same lines out, so the rendered bytes stay reproducible.
package statement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LINE LAYOUT
// ══════════════════════════════════════════════════════════════════════════════

// feeCategory names one line item and how to read its amount off a record.
type feeCategory struct {
	key    string
	amount func(f student.FeeBreakdown) int
}

// feeCategories fixes the order and naming of the fee lines. The keys are the
// historical column names; "assesment_tool" keeps its original spelling
// because printed statements must not change.
var feeCategories = []feeCategory{
	{"tuition", func(f student.FeeBreakdown) int { return f.Tuition }},
	{"food", func(f student.FeeBreakdown) int { return f.Food }},
	{"text_books", func(f student.FeeBreakdown) int { return f.TextBooks }},
	{"exercise_books", func(f student.FeeBreakdown) int { return f.ExerciseBooks }},
	{"assesment_tool", func(f student.FeeBreakdown) int { return f.AssessmentTool }},
	{"transport", func(f student.FeeBreakdown) int { return f.Transport }},
	{"activity", func(f student.FeeBreakdown) int { return f.Activity }},
	{"diary", func(f student.FeeBreakdown) int { return f.Diary }},
	{"admission", func(f student.FeeBreakdown) int { return f.Admission }},
}

// displayName derives the printed category name from its key: underscores
// become spaces and each word is title-cased ("text_books" -> "Text Books").
func displayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Lines produces the statement content, top to bottom: title, name, grade,
// the nine fee lines in fixed order, then total, paid, and balance.
func Lines(s *student.Student) []string {
	lines := make([]string, 0, len(feeCategories)+6)

	lines = append(lines,
		fmt.Sprintf("Fee Statement: %s", s.AdmissionNo),
		fmt.Sprintf("Name: %s", s.FullName()),
		fmt.Sprintf("Grade: %s", s.Grade),
	)

	for _, cat := range feeCategories {
		lines = append(lines, fmt.Sprintf("%s Fee: Ksh %d", displayName(cat.key), cat.amount(s.Fees)))
	}

	lines = append(lines,
		fmt.Sprintf("Total: Ksh %d", s.TotalFee),
		fmt.Sprintf("Paid: Ksh %d", s.AmountPaid),
		fmt.Sprintf("Balance: Ksh %d", s.Balance),
	)

	return lines
}

// Filename returns the download name of a student's statement.
func Filename(no student.AdmissionNo) string {
	return fmt.Sprintf("%s_fee.pdf", no)
}

// ══════════════════════════════════════════════════════════════════════════════
// RENDERING PORTS
// Implementations live in infrastructure/pdf.
// ══════════════════════════════════════════════════════════════════════════════

// Renderer draws an ordered list of text lines onto a single-page document.
type Renderer interface {
	Render(lines []string) ([]byte, error)
}

// Protector wraps a rendered document with password-based access protection.
// The content is otherwise unchanged.
type Protector interface {
	Protect(doc []byte, password string) ([]byte, error)
}

// ArtifactCache stores rendered, protected statements keyed by admission
// number. Records are immutable, so cached artifacts never go stale.
type ArtifactCache interface {
	// Get returns a cached artifact, or shared.ErrNotFound on a miss.
	Get(ctx context.Context, no student.AdmissionNo) ([]byte, error)

	// Set stores an artifact with the given TTL.
	Set(ctx context.Context, no student.AdmissionNo, doc []byte, ttl time.Duration) error
}
