package validator

import "time"

// Correction is a stale label rewritten to its replacement.
type Correction struct {
	File   string
	ID     string
	From   string
	To     string
	Change string
}

// Error is a problem the validator could not fix.
type Error struct {
	File   string
	ID     string
	Reason string
}

// Registration is a label added to the taxonomy by this run.
type Registration struct {
	Domain string
	Main   string
	Label  string
	File   string
}

// Skipped is a file that was not validated, with the reason.
type Skipped struct {
	File   string
	Reason string
}

// Report collects everything one validation run did.
type Report struct {
	Corrections      []Correction
	Errors           []Error
	Registrations    []Registration
	Skipped          []Skipped
	FilesProcessed   int
	FilesModified    int
	TaxonomyModified bool
	DryRun           bool
}

// Failed reports whether any unfixable error was recorded.
func (r Report) Failed() bool {
	return len(r.Errors) > 0
}

// FileEventType identifies a per-file status update.
type FileEventType string

const (
	// FileQueued marks a file known but not yet picked up by a worker.
	FileQueued FileEventType = "queued"
	// FileValidating marks a file being checked.
	FileValidating FileEventType = "validating"
	// FileClean marks a file with every label valid.
	FileClean FileEventType = "clean"
	// FileFixed marks a file that needed corrections or registrations but has no errors.
	FileFixed FileEventType = "fixed"
	// FileFailed marks a file with at least one unfixable error.
	FileFailed FileEventType = "failed"
	// FileSkipped marks a file outside any taxonomy domain.
	FileSkipped FileEventType = "skipped"
)

// FileEvent carries a single status update for a file.
type FileEvent struct {
	File          string
	Domain        string
	Type          FileEventType
	Records       int
	Corrections   int
	Registrations int
	Errors        int
	Reason        string
	EmittedAt     time.Time
}

// Observer receives validation progress for UI or logging.
type Observer interface {
	// OnRunStart signals the files about to be validated.
	OnRunStart(files []string)
	// OnFileEvent delivers a file status update.
	OnFileEvent(event FileEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(report Report)
}
