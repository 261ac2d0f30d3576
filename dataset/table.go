package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is an in-memory tabular result: named columns, declared SQLite types
// and row cells kept as strings the way they came off the wire. Numeric
// interpretation happens at the point of use.
type Table struct {
	Columns []string
	Types   []string // "INTEGER", "REAL" or "TEXT", parallel to Columns
	Rows    [][]string
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Head returns a copy of the table truncated to the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	rows := make([][]string, n)
	copy(rows, t.Rows[:n])
	return &Table{
		Columns: append([]string(nil), t.Columns...),
		Types:   append([]string(nil), t.Types...),
		Rows:    rows,
	}
}

// Cell returns the cell at (row, col), or "" when out of range. Ragged rows
// show up when a query projects fewer values than expected.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Numeric reports whether every non-empty cell in column col parses as a
// number. An all-empty column is not numeric.
func (t *Table) Numeric(col int) bool {
	seen := false
	for _, row := range t.Rows {
		if col >= len(row) || row[col] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

// Float returns the cell at (row, col) parsed as float64, or 0 when it does
// not parse.
func (t *Table) Float(row, col int) float64 {
	v, _ := strconv.ParseFloat(t.Cell(row, col), 64)
	return v
}

// String renders the table as aligned plain text, the shape LLM prompts and
// chat context expect. Large tables are rendered in full by the caller's
// choice; use Head first to bound prompt size.
func (t *Table) String() string {
	if len(t.Columns) == 0 {
		return "(empty)"
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	for _, row := range t.Rows {
		for i := range t.Columns {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var b strings.Builder
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], c)
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		for i := range t.Columns {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Schema renders "name (TYPE)" pairs for prompt construction.
func (t *Table) Schema() string {
	parts := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		typ := "TEXT"
		if i < len(t.Types) {
			typ = t.Types[i]
		}
		parts[i] = fmt.Sprintf("%s (%s)", c, typ)
	}
	return strings.Join(parts, ", ")
}
