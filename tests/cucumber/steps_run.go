//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"quizlint/internal/cli"
)

// iRunCommand runs a quizlint command line against the scenario config.
func (s *featureState) iRunCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "quizlint" {
		return fmt.Errorf("expected a quizlint command, got %q", line)
	}
	args := append([]string{fields[1], "--config", s.configPath}, fields[2:]...)
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// initGitRepo makes dir a git work tree with one commit so runs can record repo metadata.
func (s *featureState) initGitRepo(dir string) error {
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".quizlint/findings.duckdb*\n"), 0o644); err != nil {
		return fmt.Errorf("write .gitignore: %w", err)
	}
	steps := [][]string{
		{"init", "--quiet", "--initial-branch=main"},
		{"add", "--all"},
		{"commit", "--quiet", "--message", "fixture"},
	}
	for _, step := range steps {
		args := append([]string{"-c", "user.name=quizlint", "-c", "user.email=quizlint@example.invalid"}, step...)
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s: %v (%s)", step[0], err, strings.TrimSpace(string(output)))
		}
	}
	return nil
}
