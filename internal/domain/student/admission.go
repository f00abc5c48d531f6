package student

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADMISSION NUMBERS
// Format: "AJA" followed by a sequential integer, zero-padded to at least
// three digits ("AJA001", "AJA042", "AJA1000"). Numbers are never reassigned.
// ══════════════════════════════════════════════════════════════════════════════

// AdmissionPrefix is the fixed prefix of every admission number.
const AdmissionPrefix = "AJA"

// admissionPadWidth is the minimum width of the numeric suffix.
const admissionPadWidth = 3

// AdmissionNo is the unique per-student identifier.
type AdmissionNo string

// String returns the string representation of the admission number.
func (a AdmissionNo) String() string {
	return string(a)
}

// IsValid reports whether the number has the expected prefix and a positive
// numeric suffix.
func (a AdmissionNo) IsValid() bool {
	_, err := a.Sequence()
	return err == nil
}

// Sequence extracts the numeric suffix of the admission number.
func (a AdmissionNo) Sequence() (int, error) {
	s := string(a)
	if !strings.HasPrefix(s, AdmissionPrefix) {
		return 0, shared.NewDomainError("student", "ParseAdmissionNo", shared.ErrValidation,
			fmt.Sprintf("admission number %q lacks prefix %s", s, AdmissionPrefix))
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, AdmissionPrefix))
	if err != nil || n <= 0 {
		return 0, shared.NewDomainError("student", "ParseAdmissionNo", shared.ErrValidation,
			fmt.Sprintf("admission number %q has no numeric suffix", s))
	}
	return n, nil
}

// FormatAdmissionNo builds an admission number from a sequence value.
// The suffix grows past three digits once the sequence does.
func FormatAdmissionNo(seq int) AdmissionNo {
	return AdmissionNo(fmt.Sprintf("%s%0*d", AdmissionPrefix, admissionPadWidth, seq))
}

// NextAdmissionNo derives the next sequential admission number from the most
// recently issued one. An empty last number means no records exist yet, and
// the sequence starts at "AJA001".
func NextAdmissionNo(last AdmissionNo) (AdmissionNo, error) {
	if last == "" {
		return FormatAdmissionNo(1), nil
	}
	seq, err := last.Sequence()
	if err != nil {
		return "", err
	}
	return FormatAdmissionNo(seq + 1), nil
}
