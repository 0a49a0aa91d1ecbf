package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"quizlint/internal/validator"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatCount renders zero as blank so busy tables stay readable.
func formatCount(value int) string {
	if value <= 0 {
		return ""
	}
	return fmtInt(value)
}

// formatFile shortens long paths from the left, keeping the file name visible.
func formatFile(file string, limit int) string {
	runes := []rune(file)
	if limit <= 3 || len(runes) <= limit {
		return file
	}
	return "..." + string(runes[len(runes)-limit+3:])
}

// formatStatus renders a status string for a row.
func formatStatus(row FileRow, noColor bool) string {
	text := string(row.Status)
	if row.Status == validator.FileFailed && row.Reason != "" {
		text += ": " + firstLine(row.Reason)
	}
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row FileRow, now time.Time) string {
	if row.StartedAt.IsZero() {
		return ""
	}
	if !row.FinishedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	return formatDuration(now.Sub(row.StartedAt))
}

func firstLine(text string) string {
	if index := strings.IndexByte(text, '\n'); index >= 0 {
		return text[:index]
	}
	return text
}

// statusStyle selects a style for a given status.
func statusStyle(status validator.FileEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case validator.FileClean:
		color = lipgloss.Color("42")
	case validator.FileFixed:
		color = lipgloss.Color("220")
	case validator.FileFailed:
		color = lipgloss.Color("196")
	case validator.FileValidating:
		color = lipgloss.Color("33")
	case validator.FileQueued, validator.FileSkipped:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
