package report

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	docx "github.com/fumiama/go-docx"

	"canvaslogs/app/logs"
	"canvaslogs/app/settings"
	"canvaslogs/app/table"
)

// submittedLayout matches the original report format, e.g.
// "08/26/2025 at 09:30 AM".
const submittedLayout = "01/02/2006 at 03:04 PM"

const unknownCourse = "(Unknown Course)"
const unknownAssignment = "(Unknown Assignment)"

// SummaryWriter writes the narrative submissions summary. Implementations
// are chosen once at startup: a real Word writer, or a no-op stub when the
// capability is turned off.
type SummaryWriter interface {
	WriteSummary(t *table.Table, username, path string) error
}

// NewSummaryWriter picks the summary implementation from settings.
func NewSummaryWriter(s settings.Settings) SummaryWriter {
	if !s.SummaryDocument {
		return &noopSummaryWriter{}
	}
	return &docxSummaryWriter{roles: s.ColumnRoles}
}

// noopSummaryWriter reports its own skip instead of failing the run.
type noopSummaryWriter struct{}

func (w *noopSummaryWriter) WriteSummary(_ *table.Table, _, _ string) error {
	logs.Logger.Info().Msg("skipping Word summary (summary_document disabled)")
	return nil
}

// docxSummaryWriter renders the grouped bullet summary as a .docx document.
type docxSummaryWriter struct {
	roles settings.ColumnRoles
}

// WriteSummary groups rows by course (one ungrouped block when no course
// column exists), sorts groups by case-insensitive name and rows by
// submission time, and emits the per-submission bullet structure.
func (w *docxSummaryWriter) WriteSummary(t *table.Table, username, path string) error {
	courseCol := table.FindColumn(t.Columns, w.roles.Course)
	assignCol := table.FindColumn(t.Columns, w.roles.Assignment)
	timeCol := table.FindColumn(t.Columns, w.roles.SubmittedAt)
	ipCol := table.FindColumn(t.Columns, w.roles.IP)
	countryCol := table.FindColumn(t.Columns, []string{"country"})
	regionCol := table.FindColumn(t.Columns, []string{"region"})
	cityCol := table.FindColumn(t.Columns, []string{"city"})

	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(fmt.Sprintf("%s logs summary report", username)).Bold()

	for _, g := range groupRows(t, courseCol, timeCol) {
		// Without a course column the rows form one ungrouped block with
		// no course heading.
		if courseCol >= 0 {
			doc.AddParagraph()
			course := doc.AddParagraph()
			course.AddText("Course Name: " + g.name).Bold()
		}
		doc.AddParagraph().AddText("Assignments Submitted:")

		for _, row := range g.rows {
			assignment := unknownAssignment
			if assignCol >= 0 {
				if s := table.CellString(row[assignCol]); s != "" {
					assignment = s
				}
			}
			submitted := ""
			if timeCol >= 0 {
				if ts, ok := row[timeCol].(time.Time); ok {
					submitted = ts.Format(submittedLayout)
				} else if s := table.CellString(row[timeCol]); s != "" {
					submitted = s
				}
			}
			ip := ""
			if ipCol >= 0 {
				ip = table.CellString(row[ipCol])
			}
			location := joinLocation(
				cellAt(row, cityCol),
				cellAt(row, regionCol),
				cellAt(row, countryCol),
			)

			doc.AddParagraph().AddText("• " + assignment)
			doc.AddParagraph().AddText("\t◦ Submitted: " + submitted)
			doc.AddParagraph().AddText("\t◦ IP Address: " + ip)
			doc.AddParagraph().AddText("\t◦ IP Address Location: " + location)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write summary document %s: %w", path, err)
	}
	defer f.Close()
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write summary document %s: %w", path, err)
	}
	return nil
}

// group is one course's rows, already sorted by submission time.
type group struct {
	name string
	rows [][]any
}

// groupRows splits rows by course name. With no course column all rows form
// a single unnamed group. Groups are sorted by case-insensitive name; rows
// within a group by the submission time column when present.
func groupRows(t *table.Table, courseCol, timeCol int) []group {
	byName := make(map[string][][]any)
	for _, row := range t.Rows {
		name := unknownCourse
		if courseCol >= 0 {
			if s := table.CellString(row[courseCol]); s != "" {
				name = s
			}
		}
		byName[name] = append(byName[name], row)
	}

	groups := make([]group, 0, len(byName))
	for name, rows := range byName {
		if timeCol >= 0 {
			sort.SliceStable(rows, func(i, j int) bool {
				return rowTime(rows[i], timeCol).Before(rowTime(rows[j], timeCol))
			})
		}
		groups = append(groups, group{name: name, rows: rows})
	}
	sort.Slice(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].name) < strings.ToLower(groups[j].name)
	})
	return groups
}

// rowTime extracts a sortable time from a row; rows without one sort first.
func rowTime(row []any, timeCol int) time.Time {
	if ts, ok := row[timeCol].(time.Time); ok {
		return ts
	}
	return time.Time{}
}

// cellAt is CellString with a tolerant index.
func cellAt(row []any, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return table.CellString(row[col])
}

// joinLocation joins the present parts of {city, region, country} with
// commas, omitting missing parts entirely.
func joinLocation(parts ...string) string {
	var present []string
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, ", ")
}
