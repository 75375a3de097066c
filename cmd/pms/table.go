package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// table renders rows as aligned columns. Styling follows the capabilities
// of the writer, so piped output stays plain text.
type table struct {
	w       io.Writer
	headers []string
	rows    [][]string
	header  lipgloss.Style
	cell    lipgloss.Style
}

func newTable(w io.Writer, headers ...string) *table {
	r := lipgloss.NewRenderer(w)
	return &table{
		w:       w,
		headers: headers,
		header:  r.NewStyle().Bold(true).PaddingRight(2),
		cell:    r.NewStyle().PaddingRight(2),
	}
}

func (t *table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table, or "(none)" when it has no rows
func (t *table) Render() error {
	if len(t.rows) == 0 {
		_, err := io.WriteString(t.w, "(none)\n")
		return err
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var sb strings.Builder
	t.line(&sb, t.header, widths, t.headers)
	for _, row := range t.rows {
		t.line(&sb, t.cell, widths, row)
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *table) line(sb *strings.Builder, style lipgloss.Style, widths []int, cells []string) {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		s := style
		if i == len(widths)-1 {
			// no trailing padding on the last column
			s = s.UnsetPaddingRight()
			parts = append(parts, s.Render(cell))
			continue
		}
		parts = append(parts, s.Width(widths[i]+2).Render(cell))
	}
	sb.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " "))
	sb.WriteString("\n")
}
