package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizlint/internal/config"
	"quizlint/internal/vcs"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// gitignoreEntries keeps machine-local state out of version control.
var gitignoreEntries = []string{
	config.ConfigDirName + "/findings.duckdb*",
	config.ConfigDirName + "/*.lock",
}

// runInit builds the handler for the init command.
func runInit(cmd *Command) runnerFunc {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dir := flags.String("dir", "", "Repository root (default: git root or working directory)")
		yes := flags.Bool("yes", false, "Accept all prompts")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		root, inRepo, err := initRoot(strings.TrimSpace(*dir))
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		configPath := config.ConfigPath(root)
		if info, err := os.Stat(configPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", configPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", configPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		prompts := newPrompter(initInput, stdout)
		confirm := func(label string) (bool, error) {
			if *yes {
				return true, nil
			}
			return prompts.confirm(label, true)
		}

		ok, err := confirm(fmt.Sprintf("Initialize quizlint in %s?", config.ConfigDir(root)))
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !ok {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}
		addGitignore := false
		if inRepo {
			addGitignore, err = confirm("Add the findings database and lock files to .gitignore?")
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}

		written, err := config.Scaffold(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		for _, path := range written {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}
		if addGitignore {
			added, err := ensureGitignore(root, gitignoreEntries)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if len(added) > 0 {
				fmt.Fprintf(stdout, "Added %s to %s\n", strings.Join(added, ", "), filepath.Join(root, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// initRoot picks the directory to scaffold into and whether it is a git work tree root.
func initRoot(dir string) (string, bool, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false, err
		}
		if root := discoverGitRoot(wd); root != "" {
			return root, true, nil
		}
		return wd, false, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}
	root := discoverGitRoot(abs)
	return abs, root != "" && filepath.Clean(root) == abs, nil
}

// discoverGitRoot returns the git root or empty when not found.
func discoverGitRoot(startDir string) string {
	root, err := vcs.RepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}
