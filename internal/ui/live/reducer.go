package live

import (
	"fmt"
	"time"

	"quizlint/internal/validator"
)

// StartState seeds the state with one queued row per file.
func StartState(state State, files []string, at time.Time) State {
	if state.StartedAt.IsZero() {
		state.StartedAt = at
	}
	rows := make([]FileRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, FileRow{File: file, Status: validator.FileQueued})
	}
	state.Rows = rows
	state.Counts = recount(rows)
	state.Totals = Totals{}
	state.Finished = false
	state.LastEvent = ""
	return state
}

// Reduce applies a file event to the UI state.
func Reduce(state State, event validator.FileEvent) State {
	index := rowIndex(state.Rows, event.File)
	if index < 0 {
		state.Rows = append(state.Rows, FileRow{File: event.File, Status: validator.FileQueued})
		index = len(state.Rows) - 1
	}
	row := state.Rows[index]
	if event.Domain != "" {
		row.Domain = event.Domain
	}
	if !isTerminalStatus(row.Status) {
		row.Status = event.Type
	}
	switch event.Type {
	case validator.FileValidating:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case validator.FileClean, validator.FileFixed, validator.FileFailed, validator.FileSkipped:
		if row.FinishedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Records = event.Records
		row.Corrections = event.Corrections
		row.Registrations = event.Registrations
		row.Errors = event.Errors
		row.Reason = event.Reason
	}
	state.Rows[index] = row
	state.Counts = recount(state.Rows)
	state.Totals = total(state.Rows)
	if message := formatLastEvent(row, event.Type); message != "" {
		state.LastEvent = message
	}
	return state
}

// Finish marks the run complete and records the final summary line.
func Finish(state State, report validator.Report) State {
	state.Finished = true
	state.DryRun = report.DryRun
	state.Totals = Totals{
		Corrections:   len(report.Corrections),
		Registrations: len(report.Registrations),
		Errors:        len(report.Errors),
	}
	state.LastEvent = fmt.Sprintf("finished: %d files modified, taxonomy modified: %t",
		report.FilesModified, report.TaxonomyModified)
	return state
}

func rowIndex(rows []FileRow, file string) int {
	for i, row := range rows {
		if row.File == file {
			return i
		}
	}
	return -1
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status validator.FileEventType) bool {
	switch status {
	case validator.FileClean, validator.FileFixed, validator.FileFailed, validator.FileSkipped:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []FileRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case validator.FileQueued:
			counts.Queued++
		case validator.FileValidating:
			counts.Validating++
		case validator.FileClean:
			counts.Done++
			counts.Clean++
		case validator.FileFixed:
			counts.Done++
			counts.Fixed++
		case validator.FileFailed:
			counts.Done++
			counts.Failed++
		case validator.FileSkipped:
			counts.Done++
			counts.Skipped++
		}
	}
	return counts
}

func total(rows []FileRow) Totals {
	var totals Totals
	for _, row := range rows {
		totals.Corrections += row.Corrections
		totals.Registrations += row.Registrations
		totals.Errors += row.Errors
	}
	return totals
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(row FileRow, kind validator.FileEventType) string {
	switch kind {
	case validator.FileFixed:
		return fmt.Sprintf("%s fixed (%d corrections, %d new labels)", row.File, row.Corrections, row.Registrations)
	case validator.FileFailed:
		return fmt.Sprintf("%s failed: %s", row.File, row.Reason)
	case validator.FileSkipped:
		return fmt.Sprintf("%s skipped: %s", row.File, row.Reason)
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
