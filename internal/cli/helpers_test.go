package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"quizlint/internal/vcs"
)

const testTaxonomy = `version: 1
domains:
  thai:
    kind: grouped
    groups:
      grammar: [NewLabel, คำนาม]
    corrections:
      OldLabel: NewLabel
prefixes:
  - prefix: thai-
    domain: thai
    default_main: grammar
  - prefix: eng-
`

// testRepo is a throwaway repository with a config, taxonomy, and content directory.
type testRepo struct {
	root       string
	configPath string
	contentDir string
	storePath  string
}

func newTestRepo(t *testing.T, files map[string]string) testRepo {
	t.Helper()
	root := t.TempDir()
	repo := testRepo{
		root:       root,
		configPath: filepath.Join(root, ".quizlint", "config.yml"),
		contentDir: filepath.Join(root, "quizzes"),
		storePath:  filepath.Join(root, ".quizlint", "findings.duckdb"),
	}
	writeTestFile(t, repo.configPath, "content:\n  dir: quizzes\nvalidate:\n  workers: 2\n")
	writeTestFile(t, filepath.Join(root, ".quizlint", "taxonomy.yml"), testTaxonomy)
	if err := os.MkdirAll(repo.contentDir, 0o755); err != nil {
		t.Fatalf("mkdir content: %v", err)
	}
	for name, payload := range files {
		writeTestFile(t, filepath.Join(repo.contentDir, name), payload)
	}
	stubDescribeRepo(t, vcs.Metadata{Commit: "c0ffee1234", Branch: "main"})
	return repo
}

func (r testRepo) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.contentDir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func writeTestFile(t *testing.T, path, payload string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func stubDescribeRepo(t *testing.T, meta vcs.Metadata) {
	t.Helper()
	original := describeRepo
	describeRepo = func(context.Context, string, string) (vcs.Metadata, error) {
		return meta, nil
	}
	t.Cleanup(func() { describeRepo = original })
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}
