package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const duplicateA = `[{"question": "คำถามทดสอบ", "options": ["ก", "ข", "ค"]}]`

const duplicateB = `[{"question": "คำถามทดสอบ", "options": ["ค", "ข", "ก"]}]`

func TestScanCommandReportsDuplicates(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"eng-a.json": duplicateA, "eng-b.json": duplicateB})

	code, out, errOut := runCLI("scan", "--config", repo.configPath)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	for _, want := range []string{"Exact duplicates (1)", "eng-b.json #1", "Duplicates found: 1", "Recorded run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	code, _, _ = runCLI("scan", "--config", repo.configPath, "--no-store", "--fail-on-findings")
	if code != ExitError {
		t.Fatalf("expected --fail-on-findings to exit %d, got %d", ExitError, code)
	}
}

// TestCheckThenReport validates, scans, and renders the stored runs.
func TestCheckThenReport(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"thai-1.yml": staleFile, "eng-a.json": duplicateA, "eng-b.json": duplicateB})

	code, out, errOut := runCLI("check", "--config", repo.configPath)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, "== Categories ==") || !strings.Contains(out, "== Duplicates ==") {
		t.Fatalf("expected both sections:\n%s", out)
	}
	if strings.Count(out, "Recorded run") != 2 {
		t.Fatalf("expected two recorded runs:\n%s", out)
	}

	code, out, errOut = runCLI("report", "--config", repo.configPath)
	if code != ExitOK {
		t.Fatalf("report: expected exit ok, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, "(scan)") || !strings.Contains(out, "Repo: main@c0ffee1234") {
		t.Fatalf("expected latest scan run:\n%s", out)
	}

	htmlPath := filepath.Join(t.TempDir(), "report.html")
	code, out, errOut = runCLI("report", "--config", repo.configPath, "--format", "html", "--out", htmlPath)
	if code != ExitOK || !strings.Contains(out, "Wrote "+htmlPath) {
		t.Fatalf("report html: %d %s %s", code, out, errOut)
	}
	data, err := os.ReadFile(htmlPath)
	if err != nil || !strings.Contains(string(data), "<table>") {
		t.Fatalf("expected html report, got %v", err)
	}
}

func TestReportCommandErrors(t *testing.T) {
	repo := newTestRepo(t, nil)
	if code, _, _ := runCLI("report", "--config", repo.configPath, "--format", "csv"); code != ExitUsage {
		t.Fatalf("expected usage exit for bad format, got %d", code)
	}
	code, _, errOut := runCLI("report", "--config", repo.configPath)
	if code != ExitError || !strings.Contains(errOut, "No findings database") {
		t.Fatalf("expected missing database error, got %d: %s", code, errOut)
	}
}
