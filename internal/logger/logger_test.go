package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewRespectsVerbose(t *testing.T) {
	var quiet bytes.Buffer
	New("local", false, &quiet).Debug("hidden")
	if quiet.Len() != 0 {
		t.Fatalf("expected debug output to be suppressed, got %q", quiet.String())
	}

	var loud bytes.Buffer
	New("local", true, &loud).Debug("shown", zap.String("file", "a.yml"))
	if !strings.Contains(loud.String(), "shown") || !strings.Contains(loud.String(), "a.yml") {
		t.Fatalf("expected debug output, got %q", loud.String())
	}
}

func TestNewProductionLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", false, &buf)
	log.Info("ready")
	if !strings.Contains(buf.String(), "ready") || !strings.Contains(buf.String(), "info") {
		t.Fatalf("unexpected production output %q", buf.String())
	}
}
