// Package table holds the in-memory tabular result passed from extraction to
// the report writers.
package table

import "fmt"

// Table is an ordered column list plus rows. Every row has exactly one cell
// per column, in column order. Cell values are scalars: string, numeric,
// time.Time, bool or nil.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New creates an empty table with the given column set.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row. The row must match the column count.
func (t *Table) Append(row []any) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value at (row, col) or nil when out of range.
func (t *Table) Cell(row, col int) any {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// InsertColumns inserts the named columns starting at position pos, shifting
// everything from pos rightwards. vals holds one slice per row, parallel to
// t.Rows, each with one value per inserted column. The relative order of all
// pre-existing columns is preserved.
func (t *Table) InsertColumns(pos int, names []string, vals [][]any) error {
	if pos < 0 || pos > len(t.Columns) {
		return fmt.Errorf("insert position %d out of range (0..%d)", pos, len(t.Columns))
	}
	if len(vals) != len(t.Rows) {
		return fmt.Errorf("got values for %d rows, table has %d", len(vals), len(t.Rows))
	}

	cols := make([]string, 0, len(t.Columns)+len(names))
	cols = append(cols, t.Columns[:pos]...)
	cols = append(cols, names...)
	cols = append(cols, t.Columns[pos:]...)
	t.Columns = cols

	for i, row := range t.Rows {
		if len(vals[i]) != len(names) {
			return fmt.Errorf("row %d: got %d inserted values, want %d", i, len(vals[i]), len(names))
		}
		next := make([]any, 0, len(row)+len(names))
		next = append(next, row[:pos]...)
		next = append(next, vals[i]...)
		next = append(next, row[pos:]...)
		t.Rows[i] = next
	}
	return nil
}
