// Package report renders extracted tables to their output files: a
// spreadsheet per query, plus an optional narrative Word summary for the
// submissions query.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"canvaslogs/app/table"
)

// timeCellLayout renders localized timestamps in spreadsheet cells. Zone
// suffix deliberately absent: output is display-zone wall-clock time.
const timeCellLayout = "2006-01-02 15:04:05"

// WriteSpreadsheet serializes the table as a single-sheet workbook at path,
// creating or overwriting the file. The header row comes from the column
// names; rows follow in table order.
func WriteSpreadsheet(t *table.Table, path, sheetTitle string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTitle); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for c, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetTitle, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if ts, ok := v.(time.Time); ok {
				v = ts.Format(timeCellLayout)
			}
			if err := f.SetCellValue(sheetTitle, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", r+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write spreadsheet %s: %w", path, err)
	}
	return nil
}
