package export

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rotaplan/oncall/core/schedule"
)

const sheetName = "On-Call Schedule"

// WorkbookMeta is the title-block content of the spreadsheet.
type WorkbookMeta struct {
	Name        string
	Description string
	Range       schedule.DateRange
	Generated   time.Time
}

// WriteWorkbook renders the canonical schedule into an xlsx file: a merged
// title block, one styled row per shift with per-person fill colors, a
// blank separator row between dates, and Hours / On-Call Status formulas.
// The file is written via a temp path and renamed so a failed export leaves
// nothing behind.
func WriteWorkbook(path string, meta WorkbookMeta, sched schedule.Schedule, colors *schedule.ColorMap) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	st, err := newStyleSet(f)
	if err != nil {
		return err
	}

	row := 1
	if err := writeTitleBlock(f, st, meta, &row); err != nil {
		return err
	}
	row++

	headers := []string{"Date", "Day", "Start Time", "End Time", "Hours", "On-Call Person", "On-Call Status"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, st.header); err != nil {
			return err
		}
	}
	row++

	for gi, group := range sched.GroupByDate() {
		if gi > 0 {
			row++ // separator between dates
		}
		for _, shift := range group.Shifts {
			if err := writeShiftRow(f, st, shift, row, colors.Color(shift.Person)); err != nil {
				return err
			}
			row++
		}
	}

	widths := map[string]float64{"A": 15, "B": 12, "C": 12, "D": 12, "E": 8, "F": 20, "G": 15}
	for col, w := range widths {
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func writeTitleBlock(f *excelize.File, st *styleSet, meta WorkbookMeta, row *int) error {
	lines := []struct {
		value string
		style int
	}{
		{meta.Name, st.title},
		{meta.Description, st.subtitle},
		{fmt.Sprintf("Period: %s to %s", meta.Range.Start.Format("2006-01-02"), meta.Range.End.Format("2006-01-02")), st.period},
		{"Generated: " + meta.Generated.Format("2006-01-02 15:04"), st.generated},
	}
	for _, line := range lines {
		start := fmt.Sprintf("A%d", *row)
		end := fmt.Sprintf("G%d", *row)
		if err := f.MergeCell(sheetName, start, end); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, start, line.value); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, start, end, line.style); err != nil {
			return err
		}
		*row++
	}
	return nil
}

func writeShiftRow(f *excelize.File, st *styleSet, shift schedule.Shift, row int, color string) error {
	set := func(col int, v any) error {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		return f.SetCellValue(sheetName, cell, v)
	}
	if err := set(1, shift.Date); err != nil {
		return err
	}
	if err := set(2, shift.Date.Format("Monday")); err != nil {
		return err
	}
	if err := set(3, shift.Start); err != nil {
		return err
	}
	if err := set(4, shift.End); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("(D%d-C%d)*24", row, row)); err != nil {
		return err
	}
	if err := set(6, shift.Person); err != nil {
		return err
	}
	status := fmt.Sprintf(`IF(AND(NOW()>=A%d+C%d,NOW()<=A%d+D%d),"On-Call","")`, row, row, row, row)
	if err := f.SetCellFormula(sheetName, fmt.Sprintf("G%d", row), status); err != nil {
		return err
	}

	styles, err := st.rowStyles(f, color)
	if err != nil {
		return err
	}
	for col := 1; col <= 7; col++ {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		style := styles.data
		switch col {
		case 1:
			style = styles.date
		case 5:
			style = styles.hours
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
