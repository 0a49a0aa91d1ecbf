package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	minFileWidth     = 24
	fixedColumnWidth = 12 + 28 + 8 + 6 + 6 + 6 + 8
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

func defaultColumns() []table.Column {
	return columnsForWidth(0)
}

// columnsForWidth gives the file column whatever the fixed columns leave over.
func columnsForWidth(width int) []table.Column {
	fileWidth := width - fixedColumnWidth - 16
	if fileWidth < minFileWidth {
		fileWidth = minFileWidth
	}
	return []table.Column{
		{Title: "File", Width: fileWidth},
		{Title: "Domain", Width: 12},
		{Title: "Status", Width: 28},
		{Title: "Records", Width: 8},
		{Title: "Fixed", Width: 6},
		{Title: "New", Width: 6},
		{Title: "Errors", Width: 6},
		{Title: "Time", Width: 8},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, fileWidth int, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatFile(row.File, fileWidth),
			row.Domain,
			formatStatus(row, noColor),
			formatCount(row.Records),
			formatCount(row.Corrections),
			formatCount(row.Registrations),
			formatCount(row.Errors),
			formatRowDuration(row, now),
		})
	}
	return rows
}
