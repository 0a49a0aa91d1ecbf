package cli

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"quizlint/internal/findings"
	"quizlint/internal/fsutil"
	"quizlint/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) runnerFunc {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		common := bindCommonFlags(flags, false)
		runRef := flags.String("run", "latest", "Run id, id prefix, commit prefix, or latest")
		formatName := flags.String("format", "text", "Output format: text, html, pdf, or xlsx")
		outPath := flags.String("out", "", "Write the report to a file instead of stdout")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		format, err := report.ParseFormat(*formatName)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}

		sess, err := openSession(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = sess.logger.Sync() }()

		ctx, stop := commandContext()
		defer stop()

		store, err := findings.OpenReadOnly(ctx, sess.cfg.Store.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(stderr, "No findings database at %s; run \"quizlint scan\" or \"quizlint validate\" first\n", sess.cfg.Store.Path)
			} else {
				fmt.Fprintf(stderr, "Failed to open findings database: %v\n", err)
			}
			return ExitError
		}
		defer store.Close()

		run, err := report.ResolveRun(ctx, store, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve run: %v\n", err)
			return ExitError
		}

		opts := report.Options{PDFFont: sess.cfg.Report.PDFFont}
		if *outPath == "" {
			if err := report.Render(ctx, stdout, run, format, opts); err != nil {
				fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		var buf bytes.Buffer
		if err := report.Render(ctx, &buf, run, format, opts); err != nil {
			fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
			return ExitError
		}
		if err := fsutil.WriteFileAtomic(*outPath, buf.Bytes()); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *outPath)
		return ExitOK
	}
}
