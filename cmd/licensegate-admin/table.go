package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Bold(true)
)

// renderTable lays headers and rows out in aligned columns, with the header
// row styled. Cell widths follow the widest value per column.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(formatRow(headers, widths)))
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(formatRow(row, widths))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
	}
	return strings.Join(padded, "  ")
}
