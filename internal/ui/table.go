package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders headers and rows as a bordered grid. Each row should have
// len(headers) cells; short rows are padded with empty cells.
func (s Styler) Table(headers []string, rows [][]string) string {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(headers) {
			row = append(append([]string(nil), row...), make([]string, len(headers)-len(row))...)
		}
		padded[i] = row
	}

	plain := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(padded...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if !s.Styled() {
				return plain
			}
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})

	if s.Styled() {
		t = t.BorderStyle(BorderStyle)
	}

	return t.Render()
}
