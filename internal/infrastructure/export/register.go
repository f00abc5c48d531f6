// Package export produces downloadable reports from fee records.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// registerSheet is the worksheet name of the fee register.
const registerSheet = "Fee Register"

// registerHeaders is the fixed column order of the register. The misspelled
// assessment column matches the stored record format.
var registerHeaders = []string{
	"Admission No",
	"Name",
	"Grade",
	"Tuition Fee",
	"Food Fee",
	"Text Books Fee",
	"Exercise Books Fee",
	"Assesment Tool Fee",
	"Transport Fee",
	"Activity Fee",
	"Diary Fee",
	"Admission Fee",
	"Total Fee",
	"Amount Paid",
	"Balance",
	"Transport Mode",
}

// FeeRegister renders students as an XLSX workbook with one row per record.
type FeeRegister struct{}

// NewFeeRegister creates a new FeeRegister.
func NewFeeRegister() *FeeRegister {
	return &FeeRegister{}
}

// Render returns the workbook bytes for the given records, ordered as passed.
func (r *FeeRegister) Render(students []*student.Student) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, shared.WrapError("export", "Render", shared.ErrIO, "failed to create register sheet", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, shared.WrapError("export", "Render", shared.ErrIO, "failed to drop default sheet", err)
	}

	for col, header := range registerHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, shared.WrapError("export", "Render", shared.ErrIO, "invalid header cell", err)
		}
		if err := f.SetCellValue(registerSheet, cell, header); err != nil {
			return nil, shared.WrapError("export", "Render", shared.ErrIO, "failed to write header", err)
		}
	}

	for row, s := range students {
		values := []any{
			s.AdmissionNo.String(),
			s.FullName(),
			s.Grade.String(),
			s.Fees.Tuition,
			s.Fees.Food,
			s.Fees.TextBooks,
			s.Fees.ExerciseBooks,
			s.Fees.AssessmentTool,
			s.Fees.Transport,
			s.Fees.Activity,
			s.Fees.Diary,
			s.Fees.Admission,
			s.TotalFee,
			s.AmountPaid,
			s.Balance,
			s.TransportMode.String(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, shared.WrapError("export", "Render", shared.ErrIO, "invalid data cell", err)
			}
			if err := f.SetCellValue(registerSheet, cell, v); err != nil {
				return nil, shared.WrapError("export", "Render", shared.ErrIO,
					fmt.Sprintf("failed to write row %d", row+2), err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, shared.WrapError("export", "Render", shared.ErrIO, "failed to serialize workbook", err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name of the register workbook.
func (r *FeeRegister) Filename() string {
	return "fee_register.xlsx"
}
