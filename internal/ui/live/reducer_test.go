package live

import (
	"strings"
	"testing"
	"time"

	"quizlint/internal/testutil"
	"quizlint/internal/validator"
)

// TestReduceFileLifecycle verifies core status transitions are recorded.
func TestReduceFileLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		clock := testutil.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
		state := StartState(State{}, []string{"thai-01.yml", "thai-02.yml"}, clock.Now())
		if state.Counts.Queued != 2 {
			t.Fatalf("expected 2 queued, got %+v", state.Counts)
		}

		state = Reduce(state, event("thai-01.yml", validator.FileValidating, clock.Now()))
		clock.Advance(250 * time.Millisecond)
		done := event("thai-01.yml", validator.FileFixed, clock.Now())
		done.Records = 4
		done.Corrections = 2
		done.Registrations = 1
		state = Reduce(state, done)

		row := state.Rows[0]
		if row.Status != validator.FileFixed || row.Domain != "thai" {
			t.Fatalf("unexpected row %+v", row)
		}
		if got := formatRowDuration(row, clock.Now()); got != "250ms" {
			t.Fatalf("expected 250ms, got %s", got)
		}
		if state.Counts.Fixed != 1 || state.Counts.Queued != 1 || state.Counts.Done != 1 {
			t.Fatalf("unexpected counts %+v", state.Counts)
		}
		if state.Totals.Corrections != 2 || state.Totals.Registrations != 1 {
			t.Fatalf("unexpected totals %+v", state.Totals)
		}
		if !strings.Contains(state.LastEvent, "thai-01.yml fixed") {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
	})
}

// TestReduceKeepsTerminalStatus ignores late progress events for finished files.
func TestReduceKeepsTerminalStatus(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		now := time.Now()
		state := StartState(State{}, []string{"a.yml"}, now)
		failed := event("a.yml", validator.FileFailed, now)
		failed.Errors = 1
		failed.Reason = "label \"x\" is not in the taxonomy"
		state = Reduce(state, failed)
		state = Reduce(state, event("a.yml", validator.FileValidating, now))
		if state.Rows[0].Status != validator.FileFailed {
			t.Fatalf("expected failed status to stick, got %s", state.Rows[0].Status)
		}
		if got := formatStatus(state.Rows[0], true); got != "failed: label \"x\" is not in the taxonomy" {
			t.Fatalf("unexpected status text %q", got)
		}
	})
}

// TestReduceUnknownFileAppendsRow covers events for files not announced at start.
func TestReduceUnknownFileAppendsRow(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, event("eng-01.yml", validator.FileSkipped, time.Now()))
		if len(state.Rows) != 1 || state.Counts.Skipped != 1 {
			t.Fatalf("unexpected state %+v", state)
		}
	})
}

func TestFinishUsesReportTotals(t *testing.T) {
	state := Finish(State{}, validator.Report{
		Corrections:      []validator.Correction{{File: "a.yml"}},
		Errors:           []validator.Error{{File: "b.yml"}, {File: "c.yml"}},
		FilesModified:    1,
		TaxonomyModified: true,
		DryRun:           true,
	})
	if !state.Finished || !state.DryRun || state.Totals.Errors != 2 || state.Totals.Corrections != 1 {
		t.Fatalf("unexpected state %+v", state)
	}
	if !strings.Contains(renderHeader(state, time.Now(), true), "(dry run)") {
		t.Fatalf("expected dry run marker in header")
	}
}

// TestModelAppliesEvents drives the Bubble Tea model without a terminal.
func TestModelAppliesEvents(t *testing.T) {
	clock := testutil.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	model := NewModel(nil, Options{NoColor: true, Now: clock.Now})
	updated, _ := model.Update(EventMsg{Event: Event{Kind: EventRunStart, Files: []string{"thai-01.yml"}}})
	updated, _ = updated.Update(EventMsg{Event: Event{Kind: EventFile, File: event("thai-01.yml", validator.FileClean, clock.Now())}})
	if rows := updated.(Model).State().Rows; len(rows) != 1 || rows[0].Status != validator.FileClean {
		t.Fatalf("unexpected rows %+v", rows)
	}
	view := updated.View()
	for _, want := range []string{"Validating 1 files", "Clean: 1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestFormatFileKeepsTail(t *testing.T) {
	if got := formatFile("quizzes/very/long/path/thai-01.yml", 16); got != "...h/thai-01.yml" {
		t.Fatalf("unexpected %q", got)
	}
	if got := formatFile("short.yml", 16); got != "short.yml" {
		t.Fatalf("unexpected %q", got)
	}
}

// event builds a FileEvent for testing.
func event(file string, kind validator.FileEventType, when time.Time) validator.FileEvent {
	return validator.FileEvent{
		File:      file,
		Domain:    "thai",
		Type:      kind,
		EmittedAt: when,
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
