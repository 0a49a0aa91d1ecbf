package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"quizlint/internal/findings/findingstest"
	"quizlint/internal/testutil"
)

const staleFile = `- question: What is X?
  options: ["1", "2"]
  subCategory:
    main: grammar
    specific: "OldLabel"
`

// TestValidateCommandCorrectsAndRecords runs the correction path end to end.
func TestValidateCommandCorrectsAndRecords(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"thai-1.yml": staleFile})

	code, out, errOut := runCLI("validate", "--config", repo.configPath, "--ui", "plain")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	if !strings.Contains(out, "OldLabel -> NewLabel") || !strings.Contains(out, "Recorded run") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if text := repo.read(t, "thai-1.yml"); !strings.Contains(text, `"NewLabel"`) {
		t.Fatalf("expected file rewrite, got:\n%s", text)
	}

	store := findingstest.OpenPath(t, repo.storePath)
	runs, err := store.ListRuns(testutil.Context(t, 0))
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RepoCommit != "c0ffee1234" || runs[0].ContentDir != "quizzes" {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestValidateCommandUnfixableErrorsExitNonZero(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"thai-1.yml": "- question: q\n  options: [a]\n  subCategory:\n    main: Nowhere\n    specific: Unknown\n",
	})
	code, out, _ := runCLI("validate", "--config", repo.configPath, "--ui", "plain", "--no-store")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(out, "Unfixable errors (1)") || strings.Contains(out, "Recorded run") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestValidateCommandDryRunLeavesFiles(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"thai-1.yml": staleFile})
	code, out, errOut := runCLI("validate", "--config", repo.configPath, "--ui", "plain", "--dry-run", "--no-store")
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, "dry run") {
		t.Fatalf("expected dry run marker:\n%s", out)
	}
	if repo.read(t, "thai-1.yml") != staleFile {
		t.Fatalf("expected file to be untouched")
	}
}

func TestValidateCommandNoRegister(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"thai-1.yml": "- question: q\n  options: [a]\n  subCategory:\n    main: grammar\n    specific: คำกริยา\n",
	})
	code, _, _ := runCLI("validate", "--config", repo.configPath, "--ui", "plain", "--no-register", "--no-store")
	if code != ExitError {
		t.Fatalf("expected unknown label to fail without registration, got %d", code)
	}
	code, out, _ := runCLI("validate", "--config", repo.configPath, "--ui", "plain", "--no-store")
	if code != ExitOK || !strings.Contains(out, "คำกริยา") {
		t.Fatalf("expected registration, got %d:\n%s", code, out)
	}
}

func TestValidateCommandMissingTaxonomy(t *testing.T) {
	repo := newTestRepo(t, nil)
	writeTestFile(t, repo.configPath, "taxonomy:\n  path: missing.yml\n")
	code, _, errOut := runCLI("validate", "--config", repo.configPath, "--ui", "plain")
	if code != ExitError || !strings.Contains(errOut, "Failed to load taxonomy") {
		t.Fatalf("expected taxonomy load failure, got %d: %s", code, errOut)
	}
}

func TestValidateCommandBadFlags(t *testing.T) {
	if code, _, _ := runCLI("validate", "--ui", "fancy"); code != ExitUsage {
		t.Fatalf("expected usage exit for bad ui mode, got %d", code)
	}
	if code, _, _ := runCLI("validate", "extra"); code != ExitUsage {
		t.Fatalf("expected usage exit for positional args, got %d", code)
	}
	if code, _, errOut := runCLI("validate", "--config", filepath.Join(t.TempDir(), "nope.yml")); code != ExitError || !strings.Contains(errOut, "Failed to load config") {
		t.Fatalf("expected config failure, got %d: %s", code, errOut)
	}
}
