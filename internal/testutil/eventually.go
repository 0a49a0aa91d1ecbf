package testutil

import (
	"testing"
	"time"
)

// Eventually checks cond every few milliseconds and fails the test with the formatted
// message if it is still false after within.
func Eventually(t testing.TB, within time.Duration, cond func() bool, format string, args ...any) {
	t.Helper()
	interval := within / 100
	if interval < 5*time.Millisecond {
		interval = 5 * time.Millisecond
	}
	timer := time.NewTimer(within)
	defer timer.Stop()
	for !cond() {
		select {
		case <-timer.C:
			if cond() {
				return
			}
			t.Fatalf(format, args...)
		case <-time.After(interval):
		}
	}
}
