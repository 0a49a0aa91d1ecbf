package live

import (
	"time"

	"quizlint/internal/validator"
)

// FileRow holds UI state for a single content file.
type FileRow struct {
	File          string
	Domain        string
	Status        validator.FileEventType
	Records       int
	Corrections   int
	Registrations int
	Errors        int
	Reason        string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued     int
	Validating int
	Done       int
	Clean      int
	Fixed      int
	Failed     int
	Skipped    int
}

// Totals aggregates findings across finished files.
type Totals struct {
	Corrections   int
	Registrations int
	Errors        int
}

// State captures the live UI state for a validation run.
type State struct {
	StartedAt time.Time
	Finished  bool
	DryRun    bool
	LastEvent string
	Rows      []FileRow
	Counts    StatusCounts
	Totals    Totals
}
