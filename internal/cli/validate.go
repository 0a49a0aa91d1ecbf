package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"quizlint/internal/content"
	"quizlint/internal/findings"
	"quizlint/internal/registry"
	"quizlint/internal/report"
	"quizlint/internal/ui/live"
	"quizlint/internal/validator"
)

// startLiveUI is a test seam for the Bubble Tea progress table.
var startLiveUI = live.Start

// validateFlags control a validation run.
type validateFlags struct {
	dryRun     *bool
	noRegister *bool
}

func bindValidateFlags(flags *flag.FlagSet) validateFlags {
	return validateFlags{
		dryRun:     flags.Bool("dry-run", false, "Report corrections without writing files or the taxonomy"),
		noRegister: flags.Bool("no-register", false, "Treat unknown labels as errors instead of registering them"),
	}
}

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) runnerFunc {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		common := bindCommonFlags(flags, true)
		opts := bindValidateFlags(flags)
		uiMode := flags.String("ui", "auto", "Progress display: auto, live, or plain")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		mode, err := parseDisplayMode(*uiMode)
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

		out := chooseDisplay(mode, sess.cfg.Env, *common.verbose, stdout)
		if out.notice != "" {
			fmt.Fprintln(stderr, out.notice)
		}

		ctx, stop := commandContext()
		defer stop()
		return executeValidate(ctx, sess, opts, out, stdout, stderr)
	}
}

// executeValidate runs the validator, prints its report, and records it.
func executeValidate(ctx context.Context, sess *session, opts validateFlags, out display, stdout, stderr io.Writer) int {
	cfg := sess.cfg
	reg, err := registry.Load(cfg.Taxonomy.Path)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load taxonomy:\n%v\n", err)
		return ExitError
	}
	store := content.NewStore(cfg.Content.Dir, cfg.Content.Extensions)

	var controller *live.Controller
	var observer validator.Observer
	if out.live {
		controller = startLiveUI(stdout, live.Options{NoColor: out.noColor})
		observer = controller
	}

	started := time.Now()
	result, runErr := validator.New(store, reg, validator.Options{
		Workers:      cfg.Validate.Workers,
		Register:     cfg.Validate.RegisterNew && !*opts.noRegister,
		DryRun:       *opts.dryRun,
		TaxonomyPath: cfg.Taxonomy.Path,
		Locale:       cfg.Taxonomy.Locale,
		Logger:       sess.logger,
		Observer:     observer,
	}).Run(ctx)
	if controller != nil {
		controller.Close()
		if err := controller.Wait(); err != nil {
			sess.logger.Warn("live ui", zap.Error(err))
		}
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "Validation failed: %v\n", runErr)
		return ExitError
	}

	if err := report.WriteValidation(stdout, result); err != nil {
		fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
		return ExitError
	}
	sess.record(ctx, stdout, started, func(s *findings.Store, meta findings.Meta) (string, error) {
		return s.RecordValidation(ctx, meta, result)
	})
	if result.Failed() {
		return ExitError
	}
	return ExitOK
}
