package output

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// renderWidth is the terminal width tables and section rules fit into.
var renderWidth = 80

// SetWidth sets the render width used by tables and section headers.
// Non-positive values are ignored.
func SetWidth(w int) {
	if w > 0 {
		renderWidth = w
	}
}

// Width returns the current render width.
func Width() int {
	return renderWidth
}

// minColumnWidth is the floor a column can be squeezed to when a table
// exceeds the render width.
const minColumnWidth = 6

// columnGap separates table columns.
const columnGap = "  "

// Table is a width-aware table renderer for suggestion and pattern
// listings. Columns grow to their widest cell, then the widest columns are
// squeezed (and their cells truncated) until the table fits the render
// width. Individual columns can carry a styler, applied after padding so
// ANSI sequences never skew alignment.
type Table struct {
	headers  []string
	rows     [][]string
	widths   []int
	maxWidth int
	stylers  map[int]func(cell string) string
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// SetMaxWidth overrides the render width for this table.
func (t *Table) SetMaxWidth(w int) {
	t.maxWidth = w
}

// StyleColumn registers a styler for a column. The styler receives the
// padded cell text and returns the string to print.
func (t *Table) StyleColumn(col int, fn func(cell string) string) {
	if t.stylers == nil {
		t.stylers = make(map[int]func(string) string)
	}
	t.stylers[col] = fn
}

// AddRow adds a row of values to the table. The number of values should
// match the number of headers.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if w := utf8.RuneCountInString(row[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := t.fitWidths()

	var sb strings.Builder

	// Header row.
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		sb.WriteString(StyleHeader.Render(pad(truncate(h, widths[i]), widths[i])))
	}
	sb.WriteString("\n")

	// Separator.
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	// Data rows.
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(columnGap)
			}
			padded := pad(truncate(cell, widths[i]), widths[i])
			if fn, ok := t.stylers[i]; ok {
				padded = fn(padded)
			}
			sb.WriteString(padded)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to stdout.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

// fitWidths squeezes the widest columns until the table fits the width
// budget, stopping at the per-column floor.
func (t *Table) fitWidths() []int {
	widths := append([]int(nil), t.widths...)

	budget := t.maxWidth
	if budget <= 0 {
		budget = renderWidth
	}

	total := func() int {
		sum := len(columnGap) * (len(widths) - 1)
		for _, w := range widths {
			sum += w
		}
		return sum
	}

	for total() > budget {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}

	return widths
}

// truncate cuts a string to the given rune width, marking the cut with an
// ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// pad right-pads a string to the given rune width.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
