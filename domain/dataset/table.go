package dataset

import "strings"

// Table is a parsed tabular upload: a header row plus string cells. Cell
// coercion happens later, in data preparation, so every reader (CSV, Excel)
// produces the same shape.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex resolves a column name case-insensitively.
func (t Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the trimmed cell at (row, col), "" when the row is ragged.
func (t Table) Cell(row, col int) string {
	if col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}
