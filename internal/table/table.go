// Package table renders Markdown pipe tables for generated report pages.
package table

import (
	"strings"
)

// Table is an ordered set of headers and rows. Numeric holds the indices of
// columns rendered right-aligned.
type Table struct {
	Headers []string
	Rows    [][]string
	Numeric []int
}

// String renders the table as Markdown.
func (t Table) String() string {
	return Format(t.Headers, t.Rows, t.Numeric...)
}

// Len reports the number of body rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Format builds a Markdown table. Rows are expected to carry one cell per header;
// the caller is responsible for that.
func Format(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, idx := range numeric {
		right[idx] = true
	}

	separator := make([]string, len(headers))
	for i := range headers {
		if right[i] {
			separator[i] = "---:"
		} else {
			separator[i] = "---"
		}
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, formatRow(headers), formatRow(separator))
	for _, row := range rows {
		lines = append(lines, formatRow(row))
	}
	return strings.Join(lines, "\n")
}

func formatRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// Code wraps s in inline code markup.
func Code(s string) string {
	return "`" + s + "`"
}
