package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFees_TuitionByGrade(t *testing.T) {
	cases := []struct {
		grade   Grade
		tuition int
	}{
		{GradePlaygroup, 6500},
		{GradePP1, 6500},
		{GradePP2, 6500},
		{Grade1, 8500},
		{Grade2, 8500},
		{Grade3, 8500},
		{Grade4, 9000},
		{Grade5, 9000},
		{Grade6, 9000},
		{Grade7, 12000},
		{Grade8, 12000},
		{Grade9, 12000},
	}

	for _, tc := range cases {
		fees := ResolveFees(tc.grade, FeeOptions{}, TransportNone)
		assert.Equal(t, tc.tuition, fees.Tuition, "tuition for %s", tc.grade)
	}
}

func TestResolveFees_UnknownGradePricesZero(t *testing.T) {
	fees := ResolveFees(Grade("Grade13"), FeeOptions{}, TransportNone)
	assert.Equal(t, 0, fees.Tuition)
	assert.Equal(t, 0, fees.Admission)
}

func TestResolveFees_UnknownTransportPricesZero(t *testing.T) {
	fees := ResolveFees(Grade1, FeeOptions{}, TransportMode("Helicopter"))
	assert.Equal(t, 0, fees.Transport)
}

func TestResolveFees_TransportByMode(t *testing.T) {
	cases := []struct {
		mode   TransportMode
		charge int
	}{
		{TransportNone, 0},
		{TransportOneWay, 4500},
		{TransportTwoWayTown, 7000},
		{TransportTwoWayUma, 8000},
	}

	for _, tc := range cases {
		fees := ResolveFees(Grade1, FeeOptions{}, tc.mode)
		assert.Equal(t, tc.charge, fees.Transport, "transport for %s", tc.mode)
	}
}

func TestResolveFees_ElectivesOptIn(t *testing.T) {
	none := ResolveFees(Grade1, FeeOptions{}, TransportNone)
	assert.Equal(t, 0, none.Food)
	assert.Equal(t, 0, none.TextBooks)
	assert.Equal(t, 0, none.ExerciseBooks)
	assert.Equal(t, 0, none.AssessmentTool)

	all := ResolveFees(Grade1, FeeOptions{
		Food:           true,
		TextBooks:      true,
		ExerciseBooks:  true,
		AssessmentTool: true,
	}, TransportNone)
	assert.Equal(t, 3500, all.Food)
	assert.Equal(t, 6000, all.TextBooks)
	assert.Equal(t, 500, all.ExerciseBooks)
	assert.Equal(t, 300, all.AssessmentTool)
}

func TestResolveFees_MandatoryItemsAlwaysCharged(t *testing.T) {
	fees := ResolveFees(Grade5, FeeOptions{}, TransportNone)
	assert.Equal(t, 200, fees.Activity)
	assert.Equal(t, 150, fees.Diary)
}

func TestResolveFees_AdmissionOnlyForPlaygroup(t *testing.T) {
	pg := ResolveFees(GradePlaygroup, FeeOptions{}, TransportNone)
	assert.Equal(t, 1000, pg.Admission)

	for _, g := range []Grade{GradePP1, GradePP2, Grade1, Grade9} {
		fees := ResolveFees(g, FeeOptions{}, TransportNone)
		assert.Equal(t, 0, fees.Admission, "admission for %s", g)
	}
}

func TestFeeBreakdown_Total(t *testing.T) {
	// Grade1 with every elective and the town transport route:
	// 8500 + 3500 + 6000 + 500 + 300 + 7000 + 200 + 150 + 0 = 26150
	fees := ResolveFees(Grade1, FeeOptions{
		Food:           true,
		TextBooks:      true,
		ExerciseBooks:  true,
		AssessmentTool: true,
	}, TransportTwoWayTown)

	assert.Equal(t, 26150, fees.Total())
}

func TestFeeBreakdown_TotalZero(t *testing.T) {
	assert.Equal(t, 0, FeeBreakdown{}.Total())
}

func TestResolveFees_Deterministic(t *testing.T) {
	opts := FeeOptions{Food: true, TextBooks: true}
	first := ResolveFees(Grade4, opts, TransportOneWay)
	second := ResolveFees(Grade4, opts, TransportOneWay)
	assert.Equal(t, first, second)
}
