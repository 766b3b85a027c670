package cli

import (
	"strings"
	"unicode/utf8"
)

// Alignment controls how a column pads its cells.
type Alignment int

const (
	// AlignLeft pads on the right.
	AlignLeft Alignment = iota
	// AlignRight pads on the left; used for numbers.
	AlignRight
)

// Table represents a simple table formatter with dynamic column widths.
// Widths are measured in visible runes so cells may carry ANSI colour escapes.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	align   map[int]Alignment
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
		align:   make(map[int]Alignment),
	}
}

// SetColumnAlign sets the alignment for a column.
func (t *Table) SetColumnAlign(colIndex int, align Alignment) {
	t.align[colIndex] = align
}

// AddRow adds a row to the table.
// Rows are padded or truncated to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) != len(t.headers) {
		newRow := make([]string, len(t.headers))
		copy(newRow, row)
		t.rows = append(t.rows, newRow)
		return
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = visibleWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := visibleWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var result strings.Builder
	sep := strings.Repeat(" ", t.padding)

	t.writeLine(&result, t.headers, colWidths, sep)

	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(sepParts, sep))
	result.WriteString("\n")

	for _, row := range t.rows {
		t.writeLine(&result, row, colWidths, sep)
	}

	return result.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int, sep string) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if t.align[i] == AlignRight {
			parts[i] = padLeft(cell, widths[i])
		} else {
			parts[i] = padRight(cell, widths[i])
		}
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
	b.WriteString("\n")
}

// padRight pads a string with spaces on the right to reach the desired width.
func padRight(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads a string with spaces on the left to reach the desired width.
func padLeft(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// visibleWidth counts the runes in s that are not part of an ANSI CSI sequence.
func visibleWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			i++ // final byte
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		width++
	}
	return width
}
