package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// displayMode is the --ui flag value.
type displayMode string

const (
	displayAuto  displayMode = "auto"
	displayLive  displayMode = "live"
	displayPlain displayMode = "plain"
)

// display is the resolved progress output for one validate run.
type display struct {
	live    bool
	noColor bool
	notice  string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = writerIsTerminal

func parseDisplayMode(value string) (displayMode, error) {
	switch mode := displayMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return displayAuto, nil
	case displayAuto, displayLive, displayPlain:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto, live, or plain)", value)
	}
}

// chooseDisplay decides between the live table and plain output. Verbose runs are always
// plain; auto mode is also plain in the ci environment or when stdout is not a terminal.
func chooseDisplay(mode displayMode, env string, verbose bool, stdout io.Writer) display {
	_, noColor := os.LookupEnv("NO_COLOR")
	if verbose || mode == displayPlain {
		return display{}
	}
	tty := isTerminal(stdout)
	if mode == displayLive && !tty {
		return display{notice: "Live progress needs a terminal; printing plain output instead."}
	}
	if mode == displayAuto && (!tty || strings.EqualFold(env, "ci")) {
		return display{}
	}
	return display{live: true, noColor: noColor}
}

func writerIsTerminal(w io.Writer) bool {
	switch out := w.(type) {
	case *os.File:
		return term.IsTerminal(int(out.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(out.Fd()))
	default:
		return false
	}
}
