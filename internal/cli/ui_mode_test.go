package cli

import (
	"io"
	"testing"
)

func TestParseDisplayMode(t *testing.T) {
	for input, want := range map[string]displayMode{"": displayAuto, " LIVE ": displayLive, "plain": displayPlain} {
		got, err := parseDisplayMode(input)
		if err != nil || got != want {
			t.Fatalf("parse %q: expected %q, got %q (%v)", input, want, got, err)
		}
	}
	if _, err := parseDisplayMode("fancy"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestChooseDisplay(t *testing.T) {
	cases := []struct {
		name       string
		mode       displayMode
		env        string
		verbose    bool
		tty        bool
		wantLive   bool
		wantNotice bool
	}{
		{name: "auto on a terminal", mode: displayAuto, env: "local", tty: true, wantLive: true},
		{name: "auto piped", mode: displayAuto, env: "local"},
		{name: "auto in ci", mode: displayAuto, env: "ci", tty: true},
		{name: "plain", mode: displayPlain, env: "local", tty: true},
		{name: "verbose wins", mode: displayLive, env: "local", verbose: true, tty: true},
		{name: "live in ci", mode: displayLive, env: "ci", tty: true, wantLive: true},
		{name: "live piped", mode: displayLive, env: "local", wantNotice: true},
	}

	original := isTerminal
	t.Cleanup(func() { isTerminal = original })

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(io.Writer) bool { return tc.tty }
			got := chooseDisplay(tc.mode, tc.env, tc.verbose, nil)
			if got.live != tc.wantLive {
				t.Fatalf("expected live=%v, got %+v", tc.wantLive, got)
			}
			if (got.notice != "") != tc.wantNotice {
				t.Fatalf("unexpected notice %q", got.notice)
			}
		})
	}
}

func TestChooseDisplayHonorsNoColor(t *testing.T) {
	original := isTerminal
	t.Cleanup(func() { isTerminal = original })
	isTerminal = func(io.Writer) bool { return true }
	t.Setenv("NO_COLOR", "1")

	if got := chooseDisplay(displayAuto, "local", false, nil); !got.live || !got.noColor {
		t.Fatalf("expected live output without color, got %+v", got)
	}
}
