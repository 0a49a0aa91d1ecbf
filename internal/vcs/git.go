package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository indicates the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Metadata captures the repository state a findings run was taken against.
type Metadata struct {
	Root           string
	Commit         string
	Branch         string
	Dirty          bool
	ContentChanges int
}

// gitRunner executes git commands for repository metadata.
type gitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// execGitRunner invokes git via the system binary.
type execGitRunner struct{}

// Run executes a git command and returns trimmed stdout.
func (execGitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return "", fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client reads repository metadata through an injectable git runner.
type Client struct {
	runner gitRunner
}

// NewClient constructs a git client with an optional runner override.
func NewClient(runner gitRunner) Client {
	if runner == nil {
		runner = execGitRunner{}
	}
	return Client{runner: runner}
}

var defaultClient = NewClient(nil)

// Describe reads repository metadata for root using the system git binary.
func Describe(ctx context.Context, root, contentDir string) (Metadata, error) {
	return defaultClient.Describe(ctx, root, contentDir)
}

// RepoRoot returns the top of the git work tree containing dir using the system git binary.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	return defaultClient.RepoRoot(ctx, dir)
}

// RepoRoot returns the top of the git work tree containing dir.
func (c Client) RepoRoot(ctx context.Context, dir string) (string, error) {
	top, err := c.runner.Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	return top, nil
}

// Describe resolves the git work tree containing root and reads its HEAD, branch, and dirty
// state. ContentChanges counts uncommitted paths under contentDir.
func (c Client) Describe(ctx context.Context, root, contentDir string) (Metadata, error) {
	top, err := c.RepoRoot(ctx, root)
	if err != nil {
		return Metadata{}, err
	}
	commit, err := c.runner.Run(ctx, top, "rev-parse", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	branch, err := c.runner.Run(ctx, top, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve branch: %w", err)
	}
	status, err := c.runner.Run(ctx, top, "status", "--porcelain")
	if err != nil {
		return Metadata{}, fmt.Errorf("check dirty state: %w", err)
	}
	meta := Metadata{
		Root:   top,
		Commit: commit,
		Branch: branch,
		Dirty:  strings.TrimSpace(status) != "",
	}
	if meta.Dirty && contentDir != "" {
		meta.ContentChanges = countUnder(status, relativeTo(top, contentDir))
	}
	return meta, nil
}

// countUnder counts porcelain status entries whose path lies under prefix.
func countUnder(status, prefix string) int {
	count := 0
	for _, line := range strings.Split(status, "\n") {
		parts := strings.SplitN(strings.TrimLeft(line, " "), " ", 2)
		if len(parts) != 2 {
			continue
		}
		path := strings.TrimSpace(parts[1])
		if arrow := strings.Index(path, " -> "); arrow >= 0 {
			path = path[arrow+4:]
		}
		path = strings.Trim(path, `"`)
		if prefix == "." || path == prefix || strings.HasPrefix(path, prefix+"/") {
			count++
		}
	}
	return count
}

func relativeTo(top, dir string) string {
	if !filepath.IsAbs(dir) {
		return filepath.ToSlash(filepath.Clean(dir))
	}
	rel, err := filepath.Rel(top, dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	return filepath.ToSlash(rel)
}
