package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"quizlint/internal/findings"
	"quizlint/internal/scanner"
	"quizlint/internal/validator"
)

// RenderText writes a human-readable report of run.
func RenderText(w io.Writer, run findings.Run) error {
	fmt.Fprintf(w, "Run %s (%s)\n", run.ID, run.Kind)
	fmt.Fprintf(w, "Started: %s\n", formatTime(run.StartedAt))
	fmt.Fprintf(w, "Content: %s\n", orDash(run.ContentDir))
	fmt.Fprintf(w, "Repo: %s\n", formatCommit(run.Summary))
	fmt.Fprintf(w, "Status: %s\n\n", formatStatus(run.Summary))
	switch {
	case run.Scan != nil:
		return WriteScan(w, *run.Scan)
	case run.Validation != nil:
		return WriteValidation(w, *run.Validation)
	}
	return nil
}

// WriteScan writes the scanner findings followed by the summary.
func WriteScan(w io.Writer, result scanner.Result) error {
	for _, loadErr := range result.LoadErrors {
		fmt.Fprintf(w, "Skipped %s: %s\n", loadErr.File, loadErr.Message)
	}
	if len(result.LoadErrors) > 0 {
		fmt.Fprintln(w)
	}
	if len(result.Duplicates) > 0 {
		fmt.Fprintf(w, "Exact duplicates (%d):\n", len(result.Duplicates))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, dup := range result.Duplicates {
			fmt.Fprintf(tw, "  %s\t== %s\t%s\n", formatLocation(dup.Duplicate), formatLocation(dup.FirstSeen), truncate(dup.Key, 60))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if len(result.NearDuplicates) > 0 {
		fmt.Fprintf(w, "Similar questions (%d):\n", len(result.NearDuplicates))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, pair := range result.NearDuplicates {
			fmt.Fprintf(tw, "  %s\t~ %s\ttext %s\toptions %s\n",
				formatLocation(pair.A), formatLocation(pair.B),
				formatPercent(pair.TextSimilarity), formatPercent(pair.OptionSimilarity))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	summary := result.Summary
	_, err := fmt.Fprintf(w, "Files scanned: %d\nQuestions compared: %d (skipped %d)\nDuplicates found: %d\nSimilar pairs found: %d\n",
		summary.FilesScanned, summary.RecordsScanned, summary.RecordsSkipped,
		summary.DuplicatesFound, summary.SimilarPairsFound)
	return err
}

// WriteValidation writes the validator findings followed by the summary.
func WriteValidation(w io.Writer, report validator.Report) error {
	if len(report.Corrections) > 0 {
		fmt.Fprintf(w, "Corrections (%d):\n", len(report.Corrections))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, correction := range report.Corrections {
			fmt.Fprintf(tw, "  %s\t#%s\t%s\n", correction.File, correction.ID, correction.Change)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if len(report.Registrations) > 0 {
		fmt.Fprintf(w, "New labels (%d):\n", len(report.Registrations))
		for _, registration := range report.Registrations {
			fmt.Fprintf(w, "  %s\n", registrationPath(registration))
		}
		fmt.Fprintln(w)
	}
	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped files (%d):\n", len(report.Skipped))
		for _, skipped := range report.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", skipped.File, skipped.Reason)
		}
		fmt.Fprintln(w)
	}
	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "Unfixable errors (%d):\n", len(report.Errors))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, failure := range report.Errors {
			fmt.Fprintf(tw, "  %s\t#%s\t%s\n", failure.File, orDash(failure.ID), failure.Reason)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	mode := ""
	if report.DryRun {
		mode = " (dry run, nothing written)"
	}
	_, err := fmt.Fprintf(w, "Files processed: %d%s\nFiles modified: %d\nTaxonomy modified: %t\nCorrections: %d\nNew labels: %d\nErrors: %d\n",
		report.FilesProcessed, mode, report.FilesModified, report.TaxonomyModified,
		len(report.Corrections), len(report.Registrations), len(report.Errors))
	return err
}

func registrationPath(registration validator.Registration) string {
	parts := []string{registration.Domain}
	if registration.Main != "" {
		parts = append(parts, registration.Main)
	}
	parts = append(parts, registration.Label)
	return strings.Join(parts, " / ") + " (from " + registration.File + ")"
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
