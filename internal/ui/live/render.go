package live

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorHeader  = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorQuiet   = lipgloss.Color("240")
	colorFailure = lipgloss.Color("196")
)

func renderHeader(state State, now time.Time, noColor bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Validating %d files", len(state.Rows))
	if state.DryRun {
		b.WriteString(" (dry run)")
	}
	if !state.StartedAt.IsZero() {
		fmt.Fprintf(&b, " | Elapsed: %s", formatDuration(now.Sub(state.StartedAt)))
	}
	return stylize(b.String(), noColor, colorHeader)
}

func renderSummary(state State, noColor bool) string {
	c := state.Counts
	line := fmt.Sprintf("Queued: %d Validating: %d Done: %d Clean: %d Fixed: %d Failed: %d Skipped: %d",
		c.Queued, c.Validating, c.Done, c.Clean, c.Fixed, c.Failed, c.Skipped)
	return stylize(line, noColor, colorMuted)
}

func renderTotals(state State, noColor bool) string {
	t := state.Totals
	color := colorQuiet
	if t.Errors > 0 {
		color = colorFailure
	}
	line := fmt.Sprintf("Corrections: %d New labels: %d Errors: %d", t.Corrections, t.Registrations, t.Errors)
	return stylize(line, noColor, color)
}

func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, colorMuted)
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
