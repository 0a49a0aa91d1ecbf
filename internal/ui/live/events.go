package live

import "quizlint/internal/validator"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the files about to be validated.
	EventRunStart EventKind = iota
	// EventFile delivers a file status update.
	EventFile
	// EventRunEnd signals run completion with the final report.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind   EventKind
	Files  []string
	File   validator.FileEvent
	Report validator.Report
}
