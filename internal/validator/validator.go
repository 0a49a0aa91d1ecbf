package validator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quizlint/internal/content"
	"quizlint/internal/registry"
	"quizlint/internal/taxonomy"
)

// Options configures a validation run.
type Options struct {
	Workers      int
	Register     bool
	DryRun       bool
	TaxonomyPath string
	Locale       string
	Logger       *zap.Logger
	Observer     Observer
}

// Validator checks content labels against a taxonomy registry.
type Validator struct {
	store    *content.Store
	registry *registry.Registry
	opts     Options
	logger   *zap.Logger
}

// New creates a validator over store and reg.
func New(store *content.Store, reg *registry.Registry, opts Options) *Validator {
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Locale == "" {
		opts.Locale = "th"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{store: store, registry: reg, opts: opts, logger: logger}
}

// fileOutcome is what processing one file produced.
type fileOutcome struct {
	file          string
	domain        string
	records       int
	corrections   []Correction
	errors        []Error
	registrations []Registration
	skipped       *Skipped
	edited        []byte
}

// Run validates every content file, then writes corrected files and the taxonomy unless
// DryRun is set. Per-file problems are reported, not returned; the error is reserved for
// failures that stop the run.
func (v *Validator) Run(ctx context.Context) (Report, error) {
	report := Report{DryRun: v.opts.DryRun}
	files, err := v.store.Files()
	if err != nil {
		return report, err
	}
	v.notifyStart(files)

	outcomes := make([]fileOutcome, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(v.opts.Workers)
	for index, name := range files {
		index, name := index, name
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[index] = v.safeProcess(name)
			v.notifyFile(outcomes[index])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return report, err
	}

	for _, outcome := range outcomes {
		v.merge(&report, outcome)
	}
	for _, outcome := range outcomes {
		if outcome.edited == nil {
			continue
		}
		report.FilesModified++
		if v.opts.DryRun {
			continue
		}
		if err := v.store.Write(outcome.file, outcome.edited); err != nil {
			report.Errors = append(report.Errors, Error{File: outcome.file, Reason: err.Error()})
		}
	}
	report.TaxonomyModified = v.registry.Modified()
	if report.TaxonomyModified && !v.opts.DryRun {
		if err := v.registry.Save(v.opts.TaxonomyPath, v.opts.Locale); err != nil {
			return report, err
		}
	}
	v.logger.Debug("validation finished",
		zap.Int("files", report.FilesProcessed),
		zap.Int("corrections", len(report.Corrections)),
		zap.Int("registrations", len(report.Registrations)),
		zap.Int("errors", len(report.Errors)))
	if v.opts.Observer != nil {
		v.opts.Observer.OnRunEnd(report)
	}
	return report, nil
}

func (v *Validator) merge(report *Report, outcome fileOutcome) {
	if outcome.skipped != nil {
		report.Skipped = append(report.Skipped, *outcome.skipped)
		return
	}
	report.FilesProcessed++
	report.Corrections = append(report.Corrections, outcome.corrections...)
	report.Errors = append(report.Errors, outcome.errors...)
	report.Registrations = append(report.Registrations, outcome.registrations...)
}

// safeProcess turns a panic while processing name into an unfixable error for that file.
func (v *Validator) safeProcess(name string) (outcome fileOutcome) {
	defer func() {
		if recovered := recover(); recovered != nil {
			v.logger.Error("panic while validating file", zap.String("file", name), zap.Any("panic", recovered))
			outcome = fileOutcome{
				file:   name,
				errors: []Error{{File: name, Reason: fmt.Sprintf("internal error: %v", recovered)}},
			}
		}
	}()
	return v.process(name)
}

func (v *Validator) process(name string) fileOutcome {
	outcome := fileOutcome{file: name}
	resolution, err := v.registry.Resolve(name)
	if err != nil {
		outcome.errors = append(outcome.errors, Error{File: name, Reason: err.Error()})
		return outcome
	}
	if !resolution.HasTaxonomy() {
		outcome.skipped = &Skipped{File: name, Reason: resolution.SkipReason()}
		return outcome
	}
	outcome.domain = resolution.DomainName
	v.notify(FileEvent{File: name, Domain: outcome.domain, Type: FileValidating})

	doc, err := v.store.Load(name)
	if err != nil {
		v.logger.Warn("cannot load content file", zap.String("file", name), zap.Error(err))
		outcome.errors = append(outcome.errors, Error{File: name, Reason: err.Error()})
		return outcome
	}
	outcome.records = len(doc.Records)
	rewriter := content.NewRewriter(doc)
	for _, record := range doc.Records {
		v.checkRecord(&outcome, resolution, rewriter, record)
	}
	if rewriter.Modified() {
		edited, err := rewriter.Result()
		if err != nil {
			outcome.errors = append(outcome.errors, Error{File: name, Reason: err.Error()})
			return outcome
		}
		outcome.edited = edited
	}
	return outcome
}

func (v *Validator) checkRecord(outcome *fileOutcome, resolution taxonomy.Resolution, rewriter *content.Rewriter, record content.Record) {
	fail := func(reason string) {
		outcome.errors = append(outcome.errors, Error{File: outcome.file, ID: record.Ordinal, Reason: reason})
	}
	switch record.SubCategory.State {
	case content.SubCategoryMissing:
		fail("missing subCategory")
		return
	case content.SubCategoryIncomplete:
		fail("subCategory has no specific label")
		return
	}

	main := record.SubCategory.Main
	if main == "" && resolution.Kind == taxonomy.KindGrouped {
		main = resolution.DefaultMain
	}
	for _, label := range record.SubCategory.Labels {
		value := label.Value
		if value == "" {
			fail("empty specific label")
			continue
		}
		valid, err := v.registry.Contains(resolution.DomainName, main, value)
		if err != nil {
			fail(err.Error())
			continue
		}
		if valid {
			continue
		}

		replacement, ok, err := v.registry.Correction(resolution.DomainName, value)
		if err != nil {
			fail(err.Error())
			continue
		}
		if ok {
			if err := rewriter.Replace(label, replacement); err != nil {
				fail(fmt.Sprintf("cannot correct %q: %v", value, err))
				continue
			}
			outcome.corrections = append(outcome.corrections, Correction{
				File:   outcome.file,
				ID:     record.Ordinal,
				From:   value,
				To:     replacement,
				Change: value + " -> " + replacement,
			})
			continue
		}

		if !v.opts.Register {
			fail(fmt.Sprintf("label %q is not in the %s taxonomy", value, resolution.DomainName))
			continue
		}
		added, err := v.registry.Register(resolution.DomainName, main, value)
		if err != nil {
			if errors.Is(err, registry.ErrNoMain) {
				fail(fmt.Sprintf("label %q is not in the %s taxonomy and no main topic is set", value, resolution.DomainName))
			} else {
				fail(fmt.Sprintf("cannot register %q: %v", value, err))
			}
			continue
		}
		if added {
			outcome.registrations = append(outcome.registrations, Registration{
				Domain: resolution.DomainName,
				Main:   registeredMain(resolution.Kind, main),
				Label:  value,
				File:   outcome.file,
			})
		}
	}
}

func registeredMain(kind taxonomy.Kind, main string) string {
	if kind == taxonomy.KindFlat {
		return ""
	}
	return main
}

func (v *Validator) notifyStart(files []string) {
	if v.opts.Observer == nil {
		return
	}
	v.opts.Observer.OnRunStart(files)
	for _, name := range files {
		v.notify(FileEvent{File: name, Type: FileQueued})
	}
}

func (v *Validator) notifyFile(outcome fileOutcome) {
	event := FileEvent{
		File:          outcome.file,
		Domain:        outcome.domain,
		Records:       outcome.records,
		Corrections:   len(outcome.corrections),
		Registrations: len(outcome.registrations),
		Errors:        len(outcome.errors),
	}
	switch {
	case outcome.skipped != nil:
		event.Type = FileSkipped
		event.Reason = outcome.skipped.Reason
	case len(outcome.errors) > 0:
		event.Type = FileFailed
		event.Reason = outcome.errors[0].Reason
	case event.Corrections > 0 || event.Registrations > 0:
		event.Type = FileFixed
	default:
		event.Type = FileClean
	}
	v.notify(event)
}

func (v *Validator) notify(event FileEvent) {
	if v.opts.Observer == nil {
		return
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now()
	}
	v.opts.Observer.OnFileEvent(event)
}
