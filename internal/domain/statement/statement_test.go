package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

func sampleStudent() *student.Student {
	fees := student.ResolveFees(student.GradePlaygroup, student.FeeOptions{
		Food:           true,
		TextBooks:      true,
		ExerciseBooks:  true,
		AssessmentTool: true,
	}, student.TransportTwoWayUma)

	total := fees.Total()
	return &student.Student{
		AdmissionNo:   "AJA001",
		FirstName:     "Amina",
		MiddleName:    "Wanjiru",
		FamilyName:    "Odhiambo",
		Grade:         student.GradePlaygroup,
		Fees:          fees,
		TotalFee:      total,
		AmountPaid:    5000,
		Balance:       total - 5000,
		TransportMode: student.TransportTwoWayUma,
	}
}

func TestLines_OrderAndContent(t *testing.T) {
	s := sampleStudent()
	lines := Lines(s)

	require.Len(t, lines, 15)

	assert.Equal(t, "Fee Statement: AJA001", lines[0])
	assert.Equal(t, "Name: Amina Wanjiru Odhiambo", lines[1])
	assert.Equal(t, "Grade: Playgroup", lines[2])

	assert.Equal(t, "Tuition Fee: Ksh 6500", lines[3])
	assert.Equal(t, "Food Fee: Ksh 3500", lines[4])
	assert.Equal(t, "Text Books Fee: Ksh 6000", lines[5])
	assert.Equal(t, "Exercise Books Fee: Ksh 500", lines[6])
	assert.Equal(t, "Assesment Tool Fee: Ksh 300", lines[7])
	assert.Equal(t, "Transport Fee: Ksh 8000", lines[8])
	assert.Equal(t, "Activity Fee: Ksh 200", lines[9])
	assert.Equal(t, "Diary Fee: Ksh 150", lines[10])
	assert.Equal(t, "Admission Fee: Ksh 1000", lines[11])

	assert.Equal(t, "Total: Ksh 26150", lines[12])
	assert.Equal(t, "Paid: Ksh 5000", lines[13])
	assert.Equal(t, "Balance: Ksh 21150", lines[14])
}

func TestLines_FamilyNameOmitted(t *testing.T) {
	s := sampleStudent()
	s.FamilyName = ""

	lines := Lines(s)
	assert.Equal(t, "Name: Amina Wanjiru", lines[1])
}

func TestLines_ZeroAmountsStillListed(t *testing.T) {
	fees := student.ResolveFees(student.Grade1, student.FeeOptions{}, student.TransportNone)
	total := fees.Total()
	s := &student.Student{
		AdmissionNo: "AJA002",
		FirstName:   "Brian",
		MiddleName:  "Kipchoge",
		Grade:       student.Grade1,
		Fees:        fees,
		TotalFee:    total,
		Balance:     total,
	}

	lines := Lines(s)
	require.Len(t, lines, 15)
	assert.Contains(t, lines, "Food Fee: Ksh 0")
	assert.Contains(t, lines, "Transport Fee: Ksh 0")
	assert.Contains(t, lines, "Admission Fee: Ksh 0")
}

func TestLines_NegativeBalance(t *testing.T) {
	s := sampleStudent()
	s.AmountPaid = 30000
	s.Balance = s.TotalFee - s.AmountPaid

	lines := Lines(s)
	assert.Equal(t, "Balance: Ksh -3850", lines[14])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Tuition", displayName("tuition"))
	assert.Equal(t, "Text Books", displayName("text_books"))
	assert.Equal(t, "Assesment Tool", displayName("assesment_tool"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "AJA001_fee.pdf", Filename("AJA001"))
	assert.Equal(t, "AJA1000_fee.pdf", Filename("AJA1000"))
}
