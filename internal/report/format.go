package report

import (
	"fmt"
	"time"

	"quizlint/internal/findings"
	"quizlint/internal/scanner"
)

// formatPercent returns a similarity score as a percentage string.
func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

func formatLocation(location scanner.Location) string {
	return fmt.Sprintf("%s #%s", location.File, location.Ordinal)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02 15:04:05 UTC")
}

func formatCommit(summary findings.Summary) string {
	if summary.RepoCommit == "" {
		return "-"
	}
	commit := summary.RepoCommit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if summary.RepoBranch != "" {
		commit = summary.RepoBranch + "@" + commit
	}
	if summary.RepoDirty {
		commit += " (dirty)"
	}
	return commit
}

func formatStatus(summary findings.Summary) string {
	if summary.Failed {
		return "failed"
	}
	return "ok"
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
