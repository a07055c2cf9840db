package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"canvaslogs/app/table"
)

func TestWriteSpreadsheet(t *testing.T) {
	tbl := table.New([]string{"assignment", "ip_at_submit", "city", "submitted_at"})
	submitted := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	if err := tbl.Append([]any{"Lab Report 1", "203.0.113.5", "Springfield", submitted}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Append([]any{"Lab Report 2", "203.0.113.5", nil, submitted.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "jdoe-submissions.xlsx")
	if err := WriteSpreadsheet(tbl, path, "Submissions"); err != nil {
		t.Fatalf("WriteSpreadsheet failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 1 || got[0] != "Submissions" {
		t.Errorf("sheets = %v, want [Submissions]", got)
	}

	rows, err := f.GetRows("Submissions")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Header plus the two data rows.
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(rows))
	}

	wantHeader := []string{"assignment", "ip_at_submit", "city", "submitted_at"}
	for i, name := range wantHeader {
		if rows[0][i] != name {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], name)
		}
	}
	if rows[1][0] != "Lab Report 1" {
		t.Errorf("row 1 assignment = %q", rows[1][0])
	}
	if rows[1][3] != "2025-09-10 12:00:00" {
		t.Errorf("row 1 submitted_at = %q, want formatted wall clock", rows[1][3])
	}
	// Nil cells come back empty, not as a literal "nil" or "<nil>".
	cell, err := f.GetCellValue("Submissions", "C3")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if cell != "" {
		t.Errorf("nil cell rendered as %q, want empty", cell)
	}
}

func TestWriteSpreadsheetHeaderOnly(t *testing.T) {
	tbl := table.New([]string{"url", "created_at"})

	path := filepath.Join(t.TempDir(), "jdoe-activity.xlsx")
	if err := WriteSpreadsheet(tbl, path, "Activity"); err != nil {
		t.Fatalf("WriteSpreadsheet failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Activity")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty table produced %d rows, want header only", len(rows))
	}
}
