package vcs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"quizlint/internal/testutil"
)

// TestDescribeReadsMetadata verifies HEAD, branch, and dirty state parsing.
func TestDescribeReadsMetadata(t *testing.T) {
	ctx := testutil.Context(t, 0)
	root := filepath.Join(t.TempDir(), "repo")

	fake := &fakeGitRunner{responses: map[string]string{
		"rev-parse --show-toplevel":   root,
		"rev-parse HEAD":              "commit-3",
		"rev-parse --abbrev-ref HEAD": "main",
		"status --porcelain":          "",
	}}
	client := NewClient(fake)

	meta, err := client.Describe(ctx, filepath.Join(root, "nested"), filepath.Join(root, "quizzes"))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if meta.Root != root || meta.Commit != "commit-3" || meta.Branch != "main" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if meta.Dirty || meta.ContentChanges != 0 {
		t.Fatalf("expected clean repo, got %+v", meta)
	}

	fake.responses["status --porcelain"] = strings.Join([]string{
		" M README.md",
		" M quizzes/thai-01.yml",
		"?? quizzes/nested/new.json",
		"R  old.yml -> quizzes/moved.yml",
		" M quizzes-archive/x.yml",
	}, "\n")
	meta, err = client.Describe(ctx, root, filepath.Join(root, "quizzes"))
	if err != nil {
		t.Fatalf("describe dirty: %v", err)
	}
	if !meta.Dirty {
		t.Fatalf("expected dirty repo")
	}
	if meta.ContentChanges != 3 {
		t.Fatalf("expected 3 content changes, got %d", meta.ContentChanges)
	}
}

func TestDescribeOutsideRepository(t *testing.T) {
	ctx := testutil.Context(t, 0)
	client := NewClient(&fakeGitRunner{responses: map[string]string{}})
	if _, err := client.Describe(ctx, t.TempDir(), ""); !errors.Is(err, ErrNotRepository) {
		t.Fatalf("expected ErrNotRepository, got %v", err)
	}
}

func TestRepoRoot(t *testing.T) {
	ctx := testutil.Context(t, 0)
	client := NewClient(&fakeGitRunner{responses: map[string]string{"rev-parse --show-toplevel": "/work/quizzes-repo"}})
	root, err := client.RepoRoot(ctx, "/work/quizzes-repo/quizzes")
	if err != nil || root != "/work/quizzes-repo" {
		t.Fatalf("expected /work/quizzes-repo, got %q (%v)", root, err)
	}
}

// fakeGitRunner returns canned outputs for git commands in tests.
type fakeGitRunner struct {
	responses map[string]string
}

// Run satisfies gitRunner for test doubles.
func (f *fakeGitRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	if value, ok := f.responses[key]; ok {
		return value, nil
	}
	return "", fmt.Errorf("unexpected git args: %s", key)
}
