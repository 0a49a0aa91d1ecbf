// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"
)

const fallbackTimeout = 5 * time.Second

// Context returns a context cancelled when the test ends or after timeout, whichever is
// first. A zero timeout means five seconds. The timeout is shortened to leave a second
// before the go test deadline so failures report instead of panicking.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = fallbackTimeout
	}
	if withDeadline, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := withDeadline.Deadline(); ok {
			if left := time.Until(deadline) - time.Second; left > 0 && left < timeout {
				timeout = left
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
