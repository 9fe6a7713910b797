package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"contract-claim-system/internal/model"
)

var columns = []string{
	"Claim ID", "Claim Month", "Lecturer", "Hours Worked", "Hourly Rate",
	"Total Amount", "Status", "Submitted Date", "Reviewed By", "Review Comments",
}

// BuildXLSX renders the claims into a single-sheet Excel workbook.
func BuildXLSX(claims []model.Claim) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Claims"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	for rowIdx, c := range claims {
		for colIdx, value := range claimRow(c) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildCSV renders the claims as a CSV file with the same columns as the
// Excel export.
func BuildCSV(claims []model.Claim) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, c := range claims {
		if err := w.Write(claimRow(c)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func claimRow(c model.Claim) []string {
	submitted := ""
	if !c.SubmittedDate.IsZero() {
		submitted = c.SubmittedDate.Format("2006-01-02")
	}
	return []string{
		c.ID,
		c.ClaimMonth,
		c.LecturerName,
		c.HoursWorked.String(),
		c.HourlyRate.String(),
		c.TotalAmount().String(),
		string(c.Status),
		submitted,
		c.ReviewedBy,
		c.ReviewComments,
	}
}
