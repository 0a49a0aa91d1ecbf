package testutil

import (
	"testing"
	"time"
)

// plainTB hides the Deadline method that *testing.T carries.
type plainTB struct {
	testing.TB
}

func TestContextWithoutDeadline(t *testing.T) {
	ctx := Context(plainTB{TB: t}, 50*time.Millisecond)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if left := time.Until(deadline); left > 50*time.Millisecond {
		t.Fatalf("deadline too far: %v", left)
	}
}

func TestContextDefaultsTimeout(t *testing.T) {
	ctx := Context(t, 0)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if left := time.Until(deadline); left > fallbackTimeout {
		t.Fatalf("deadline beyond fallback: %v", left)
	}
}
