// Package findingstest opens throwaway findings stores for tests.
package findingstest

import (
	"testing"
	"time"

	"quizlint/internal/findings"
	"quizlint/internal/testutil"
)

const defaultTimeout = 5 * time.Second

// Open opens an in-memory findings store that is closed when the test ends.
func Open(t testing.TB) *findings.Store {
	t.Helper()
	return OpenPath(t, ":memory:")
}

// OpenPath opens a findings store at path that is closed when the test ends.
func OpenPath(t testing.TB, path string) *findings.Store {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	store, err := findings.Open(ctx, path)
	if err != nil {
		t.Fatalf("open findings store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
