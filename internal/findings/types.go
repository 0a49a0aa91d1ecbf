package findings

import (
	"time"

	"quizlint/internal/scanner"
	"quizlint/internal/validator"
	"quizlint/internal/vcs"
)

// Kind names which tool produced a run.
type Kind string

const (
	// KindScan is a similarity scanner run.
	KindScan Kind = "scan"
	// KindValidate is a taxonomy validator run.
	KindValidate Kind = "validate"
)

// Meta describes when and against what a run happened.
type Meta struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ContentDir string
	Repo       vcs.Metadata
}

// Summary is one row of the run index.
type Summary struct {
	ID           string
	Kind         Kind
	StartedAt    time.Time
	FinishedAt   time.Time
	ContentDir   string
	RepoCommit   string
	RepoBranch   string
	RepoDirty    bool
	DryRun       bool
	FindingCount int
	Failed       bool
}

// Run is a stored run with its findings. Scan is set for scan runs and Validation for
// validate runs.
type Run struct {
	Summary
	Scan       *scanner.Result
	Validation *validator.Report
}
