package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the class rows as a spreadsheet with a styled header
// and a frozen top row, for teachers who skip the CSV import dance.
func WriteXLSX(w io.Writer, school, classGroup string, rows []LearnerRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Class"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, name := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	lastCol, err := excelize.CoordinatesToCellName(len(csvHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		d1, d1m, d2, d2m := "", any(""), "", any("")
		if len(r.Difficulties) > 0 {
			d1 = r.Difficulties[0].Title
			d1m = r.Difficulties[0].Mastery
		}
		if len(r.Difficulties) > 1 {
			d2 = r.Difficulties[1].Title
			d2m = r.Difficulties[1].Mastery
		}
		values := []any{
			school, classGroup,
			r.GradeYear, r.FirstName, r.ProfileID,
			r.WeeklyActiveDays, formatLastActive(r.LastActiveAt),
			r.TotalSessions, r.TotalMinutes,
			r.Units.UnitsSeen, r.Units.UnitsPassed,
			r.Units.BossTried, r.Units.BossPassed,
			r.FairMastery, r.Coverage,
			d1, d1m, d2, d2m,
			r.TopErrorType, r.TopErrorCount,
			strings.Join(r.InclusionFlags, "|"),
			r.Recommendation,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
