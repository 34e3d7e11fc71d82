package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787"))
)

// table renders rows of plain cells under a title and a header line.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{Title: title, Headers: headers, Rows: make([][]string, 0)}
}

func (t *table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table. Column widths fit the widest cell.
func (t *table) View() string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(titleStyle.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// Width includes padding.
	for i := range widths {
		widths[i] += 2
	}

	sep := mutedStyle.Render("|")

	cells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cells[i] = headerStyle.Width(widths[i]).Render(h)
	}
	sb.WriteString(strings.Join(cells, sep))
	sb.WriteString("\n")

	total := len(t.Headers) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		cells = cells[:0]
		for i, cell := range row {
			if i < len(widths) {
				cells = append(cells, cellStyle.Width(widths[i]).Render(cell))
			}
		}
		sb.WriteString(strings.Join(cells, sep))
		sb.WriteString("\n")
	}

	return sb.String()
}
