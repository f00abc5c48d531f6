package student

// ══════════════════════════════════════════════════════════════════════════════
// FEE SCHEDULE
// The lookup tables below are the school's published fee schedule.
// Unrecognized grades and transport modes price at zero rather than failing;
// callers that passed through the old system depend on that behaviour.
// ══════════════════════════════════════════════════════════════════════════════

// Per-item amounts in whole Kenyan shillings.
const (
	feeFood           = 3500
	feeTextBooks      = 6000
	feeExerciseBooks  = 500
	feeAssessmentTool = 300
	feeActivity       = 200
	feeDiary          = 150
	feeAdmissionEntry = 1000 // charged once, Playgroup intake only
)

// tuitionByGrade maps each grade to its termly tuition.
var tuitionByGrade = map[Grade]int{
	GradePlaygroup: 6500,
	GradePP1:       6500,
	GradePP2:       6500,
	Grade1:         8500,
	Grade2:         8500,
	Grade3:         8500,
	Grade4:         9000,
	Grade5:         9000,
	Grade6:         9000,
	Grade7:         12000,
	Grade8:         12000,
	Grade9:         12000,
}

// transportByMode maps each commuting arrangement to its termly charge.
var transportByMode = map[TransportMode]int{
	TransportNone:       0,
	TransportOneWay:     4500,
	TransportTwoWayTown: 7000,
	TransportTwoWayUma:  8000,
}

// FeeOptions carries the opt-in flags for the elective line items.
type FeeOptions struct {
	Food           bool
	TextBooks      bool
	ExerciseBooks  bool
	AssessmentTool bool
}

// FeeBreakdown holds the nine itemized fee amounts of one record.
type FeeBreakdown struct {
	Tuition        int
	Food           int
	TextBooks      int
	ExerciseBooks  int
	AssessmentTool int
	Transport      int
	Activity       int
	Diary          int
	Admission      int
}

// Total sums all nine line items.
func (f FeeBreakdown) Total() int {
	return f.Tuition + f.Food + f.TextBooks + f.ExerciseBooks +
		f.AssessmentTool + f.Transport + f.Activity + f.Diary + f.Admission
}

// ResolveFees maps a grade, the elective opt-ins, and a transport mode to the
// itemized fee amounts. Pure and deterministic: no side effects, no errors.
// An unknown grade or mode yields a zero amount for that item.
func ResolveFees(grade Grade, opts FeeOptions, mode TransportMode) FeeBreakdown {
	fees := FeeBreakdown{
		Tuition:   tuitionByGrade[grade],
		Transport: transportByMode[mode],
		Activity:  feeActivity,
		Diary:     feeDiary,
	}

	if opts.Food {
		fees.Food = feeFood
	}
	if opts.TextBooks {
		fees.TextBooks = feeTextBooks
	}
	if opts.ExerciseBooks {
		fees.ExerciseBooks = feeExerciseBooks
	}
	if opts.AssessmentTool {
		fees.AssessmentTool = feeAssessmentTool
	}

	if grade == GradePlaygroup {
		fees.Admission = feeAdmissionEntry
	}

	return fees
}
