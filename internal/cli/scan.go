package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"quizlint/internal/content"
	"quizlint/internal/findings"
	"quizlint/internal/report"
	"quizlint/internal/scanner"
)

// runScan builds the handler for the scan command.
func runScan(cmd *Command) runnerFunc {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		common := bindCommonFlags(flags, true)
		failOnFindings := flags.Bool("fail-on-findings", false, "Exit non-zero when duplicates or similar pairs are found")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		sess, err := openSession(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = sess.logger.Sync() }()

		ctx, stop := commandContext()
		defer stop()
		return executeScan(ctx, sess, *failOnFindings, stdout, stderr)
	}
}

// executeScan runs the similarity scanner, prints its report, and records it.
func executeScan(ctx context.Context, sess *session, failOnFindings bool, stdout, stderr io.Writer) int {
	cfg := sess.cfg
	store := content.NewStore(cfg.Content.Dir, cfg.Content.Extensions)
	started := time.Now()
	result, err := scanner.Scan(ctx, store, scanner.Options{
		Thresholds: scanner.Thresholds{
			Text:   cfg.Scan.TextThreshold,
			Option: cfg.Scan.OptionThreshold,
		},
		IncludePrefixes: cfg.Scan.IncludePrefixes,
		StripMarkup:     cfg.Scan.StripMarkup,
		Logger:          sess.logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Scan failed: %v\n", err)
		return ExitError
	}

	if err := report.WriteScan(stdout, result); err != nil {
		fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
		return ExitError
	}
	sess.record(ctx, stdout, started, func(s *findings.Store, meta findings.Meta) (string, error) {
		return s.RecordScan(ctx, meta, result)
	})
	if failOnFindings && len(result.Duplicates)+len(result.NearDuplicates) > 0 {
		return ExitError
	}
	return ExitOK
}
