package table

import (
	"fmt"
	"strings"
	"time"
)

// FindColumn returns the index of the first column whose name matches one of
// the candidates, case-insensitively, or -1. Candidates are checked in order
// so earlier names take priority over later ones.
func FindColumn(columns []string, candidates []string) int {
	for _, cand := range candidates {
		for i, col := range columns {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

// TimeColumns returns the indices of columns whose values are timestamps.
// Detection is by value type rather than by name: a column qualifies when at
// least one cell is a time.Time and no cell is anything other than a
// time.Time or nil.
func (t *Table) TimeColumns() []int {
	var out []int
	for c := range t.Columns {
		seen := false
		ok := true
		for _, row := range t.Rows {
			switch row[c].(type) {
			case time.Time:
				seen = true
			case nil:
			default:
				ok = false
			}
			if !ok {
				break
			}
		}
		if seen && ok {
			out = append(out, c)
		}
	}
	return out
}

// DistinctStrings returns the distinct non-null values of column c rendered
// as strings, in first-seen order. Null and empty cells are skipped.
func (t *Table) DistinctStrings(c int) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		s := CellString(row[c])
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// CellString renders a scalar cell as a string, with nil mapping to "".
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
