package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders rows of text under a header, one column per header.
// Missing cells render blank; extra cells are dropped.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	align map[int]lipgloss.Position
}

// NewSimpleTable creates a table with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{Title: title, Headers: headers}
}

// AddRow appends a row.
func (t *SimpleTable) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// AlignRight right-aligns the given columns, for numbers.
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	if t.align == nil {
		t.align = make(map[int]lipgloss.Position)
	}
	for _, c := range cols {
		t.align[c] = lipgloss.Right
	}
	return t
}

func (t *SimpleTable) widths() []int {
	w := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		w[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(w); i++ {
			w[i] = max(w[i], lipgloss.Width(row[i]))
		}
	}
	return w
}

// View renders the table. An empty table renders nothing.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := t.widths()
	sep := styles.Muted.Render("|")

	line := func(style lipgloss.Style, cells []string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			pos, ok := t.align[i]
			if !ok {
				pos = lipgloss.Left
			}
			parts[i] = style.Width(w + 2).Align(pos).Render(cell)
		}
		return strings.Join(parts, sep)
	}

	rule := len(widths) - 1
	for _, w := range widths {
		rule += w + 2
	}

	out := make([]string, 0, len(t.Rows)+3)
	if t.Title != "" {
		out = append(out, styles.Title.Render(t.Title))
	}
	out = append(out,
		line(styles.Bold.Padding(0, 1), t.Headers),
		styles.Muted.Render(strings.Repeat("-", rule)))
	for _, row := range t.Rows {
		out = append(out, line(styles.Body.Padding(0, 1), row))
	}
	return strings.Join(out, "\n") + "\n"
}
