// Package cli implements the quizlint command line.
package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1 // failed run or unfixable findings
	ExitUsage = 2 // bad command line
)

// Command is one quizlint subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

type runnerFunc func(args []string, stdout, stderr io.Writer) int

// command builds a Command whose runner can print the command's own usage.
func command(name, summary string, usage []string, build func(cmd *Command) runnerFunc) *Command {
	cmd := &Command{Name: name, Summary: summary, Usage: usage}
	cmd.Run = build(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .quizlint/config.yml and a starter taxonomy", []string{
		"quizlint init [--dir <repo-root>] [--yes]",
	}, runInit),
	command("validate", "Check and correct question sub-categories against the taxonomy", []string{
		"quizlint validate [--config <path>] [--dry-run] [--no-register] [--no-store] [--ui auto|live|plain] [--verbose]",
	}, runValidate),
	command("scan", "Find duplicate and near-duplicate questions", []string{
		"quizlint scan [--config <path>] [--fail-on-findings] [--no-store] [--verbose]",
	}, runScan),
	command("check", "Run validate, then scan", []string{
		"quizlint check [--config <path>] [--dry-run] [--no-register] [--no-store] [--verbose]",
	}, runCheck),
	command("report", "Render a stored run", []string{
		"quizlint report [--config <path>] [--run <id|commit|latest>] [--format text|html|pdf|xlsx] [--out <path>]",
	}, runReport),
	command("serve", "Serve stored runs over HTTP", []string{
		"quizlint serve [--config <path>] [--addr <host:port>]",
	}, runServe),
}

// Run dispatches args to a subcommand and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	switch {
	case len(args) == 0:
		printUsage(stdout)
		return ExitUsage
	case args[0] == "help" || isHelpFlag(args[0]):
		printUsage(stdout)
		return ExitOK
	}
	idx := slices.IndexFunc(commands, func(cmd *Command) bool { return cmd.Name == args[0] })
	if idx < 0 {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}
	return commands[idx].Run(args[1:], stdout, stderr)
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}

func wantsHelp(args []string) bool {
	return slices.ContainsFunc(args, isHelpFlag)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, "Usage:\n  quizlint <command> [options]\n\nCommands:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name, cmd.Summary)
	}
	_ = tw.Flush()
	fmt.Fprintln(w, "\nRun \"quizlint <command> --help\" for command options.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintln(w, "  "+line)
	}
	fmt.Fprintf(w, "\n%s\n", cmd.Summary)
}
