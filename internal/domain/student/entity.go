// Package student contains the fee-record domain model for AJA School.
// This is the core of the business logic - no external dependencies here.
package student

import (
	"strings"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrStudentNotFound is returned when no record matches an admission number.
	ErrStudentNotFound = shared.NewDomainError("student", "Find", shared.ErrNotFound, "student not found")

	// ErrDuplicateAdmissionNo is returned when a create collides with an
	// existing admission number.
	ErrDuplicateAdmissionNo = shared.NewDomainError("student", "Create", shared.ErrAlreadyExists, "admission number already exists")
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Grade represents a class level at AJA School.
type Grade string

const (
	GradePlaygroup Grade = "Playgroup"
	GradePP1       Grade = "PP1"
	GradePP2       Grade = "PP2"
	Grade1         Grade = "Grade1"
	Grade2         Grade = "Grade2"
	Grade3         Grade = "Grade3"
	Grade4         Grade = "Grade4"
	Grade5         Grade = "Grade5"
	Grade6         Grade = "Grade6"
	Grade7         Grade = "Grade7"
	Grade8         Grade = "Grade8"
	Grade9         Grade = "Grade9"
)

// Grades lists all recognized grades in school order.
func Grades() []Grade {
	return []Grade{
		GradePlaygroup, GradePP1, GradePP2,
		Grade1, Grade2, Grade3, Grade4, Grade5,
		Grade6, Grade7, Grade8, Grade9,
	}
}

// IsValid reports whether the grade is one of the recognized levels.
// Unrecognized grades are still accepted by the fee resolver (they price
// at zero); validity only matters to callers that want to warn about typos.
func (g Grade) IsValid() bool {
	switch g {
	case GradePlaygroup, GradePP1, GradePP2,
		Grade1, Grade2, Grade3, Grade4, Grade5,
		Grade6, Grade7, Grade8, Grade9:
		return true
	default:
		return false
	}
}

// String returns the string representation of the grade.
func (g Grade) String() string {
	return string(g)
}

// TransportMode describes the student's commuting arrangement.
type TransportMode string

const (
	// TransportNone - the student does not use school transport.
	TransportNone TransportMode = "None"
	// TransportOneWay - school transport in one direction only.
	TransportOneWay TransportMode = "OneWay"
	// TransportTwoWayTown - both directions on the town route.
	TransportTwoWayTown TransportMode = "TwoWayTown"
	// TransportTwoWayUma - both directions on the Uma route.
	TransportTwoWayUma TransportMode = "TwoWayUma"
)

// IsValid reports whether the mode is one of the recognized arrangements.
func (m TransportMode) IsValid() bool {
	switch m {
	case TransportNone, TransportOneWay, TransportTwoWayTown, TransportTwoWayUma:
		return true
	default:
		return false
	}
}

// String returns the string representation of the transport mode.
func (m TransportMode) String() string {
	return string(m)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is the central entity: one fee record per enrolled student.
// Records are immutable after creation; totals are always recomputed from
// the line items, never taken from the caller.
type Student struct {
	// AdmissionNo is the unique per-student identifier ("AJA" + sequence).
	AdmissionNo AdmissionNo

	// FirstName and MiddleName are required; FamilyName is optional.
	FirstName  string
	MiddleName string
	FamilyName string

	// Grade is the class level the fees were resolved for.
	Grade Grade

	// Fees holds the itemized fee amounts in whole Kenyan shillings.
	Fees FeeBreakdown

	// TotalFee is the sum of all nine line items.
	TotalFee int

	// AmountPaid is the amount received so far.
	AmountPaid int

	// Balance is TotalFee - AmountPaid. Negative when overpaid.
	Balance int

	// TransportMode records the commuting arrangement the transport fee
	// was priced from.
	TransportMode TransportMode

	// CreatedAt is set once at creation and never changes.
	CreatedAt time.Time
}

// FullName joins first, middle, and family names, omitting the family name
// when it is absent.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.MiddleName + " " + s.FamilyName)
}
