package console

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/muesli/termenv"
)

// RenderTable renders a table with the given headers and rows.
// Tags in cells are resolved before rendering so widths are measured on visible text.
// useLineChars selects Unicode box drawing characters over plain ASCII.
func RenderTable(headers []string, rows [][]string, useLineChars bool) string {
	if len(headers) == 0 {
		return ""
	}

	border := lipgloss.ASCIIBorder()
	if useLineChars {
		border = lipgloss.NormalBorder()
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(preferredProfile != termenv.Ascii)
			}
			return cell
		})

	parsedHeaders := make([]string, len(headers))
	for i, h := range headers {
		parsedHeaders[i] = Strip(h)
	}
	t.Headers(parsedHeaders...)

	for _, row := range rows {
		parsed := make([]string, len(headers))
		for i := range parsed {
			if i < len(row) {
				parsed[i] = ToANSI(row[i])
			}
		}
		t.Row(parsed...)
	}

	return t.String()
}

// PrintTable prints RenderTable's output to Stdout.
func PrintTable(headers []string, rows [][]string, useLineChars bool) {
	if s := RenderTable(headers, rows, useLineChars); s != "" {
		fmt.Fprintln(Stdout, s)
	}
}
