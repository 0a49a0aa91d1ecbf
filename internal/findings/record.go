package findings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quizlint/internal/scanner"
	"quizlint/internal/validator"
)

// RecordScan stores a scan result as a new run and returns its id.
func (s *Store) RecordScan(ctx context.Context, meta Meta, result scanner.Result) (string, error) {
	id := uuid.NewString()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		summary := result.Summary
		if err := insertRun(ctx, tx, id, KindScan, meta, runCounts{
			filesScanned:   summary.FilesScanned,
			recordsScanned: summary.RecordsScanned,
			recordsSkipped: summary.RecordsSkipped,
			findingCount:   len(result.Duplicates) + len(result.NearDuplicates),
			failed:         len(result.LoadErrors) > 0,
		}); err != nil {
			return err
		}
		for i, dup := range result.Duplicates {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO duplicates (run_id, seq, dedup_key, first_file, first_ordinal, duplicate_file, duplicate_ordinal)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, i, dup.Key, dup.FirstSeen.File, dup.FirstSeen.Ordinal, dup.Duplicate.File, dup.Duplicate.Ordinal,
			); err != nil {
				return fmt.Errorf("insert duplicate: %w", err)
			}
		}
		for i, pair := range result.NearDuplicates {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO near_duplicates (run_id, seq, a_file, a_ordinal, b_file, b_ordinal, text_similarity, option_similarity)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				id, i, pair.A.File, pair.A.Ordinal, pair.B.File, pair.B.Ordinal, pair.TextSimilarity, pair.OptionSimilarity,
			); err != nil {
				return fmt.Errorf("insert near duplicate: %w", err)
			}
		}
		for i, loadErr := range result.LoadErrors {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO load_errors (run_id, seq, file, message) VALUES (?, ?, ?, ?)`,
				id, i, loadErr.File, loadErr.Message,
			); err != nil {
				return fmt.Errorf("insert load error: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RecordValidation stores a validation report as a new run and returns its id.
func (s *Store) RecordValidation(ctx context.Context, meta Meta, report validator.Report) (string, error) {
	id := uuid.NewString()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertRun(ctx, tx, id, KindValidate, meta, runCounts{
			filesProcessed:   report.FilesProcessed,
			filesModified:    report.FilesModified,
			taxonomyModified: report.TaxonomyModified,
			dryRun:           report.DryRun,
			findingCount:     len(report.Corrections) + len(report.Errors) + len(report.Registrations),
			failed:           report.Failed(),
		}); err != nil {
			return err
		}
		for i, correction := range report.Corrections {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO corrections (run_id, seq, file, record_id, from_label, to_label) VALUES (?, ?, ?, ?, ?, ?)`,
				id, i, correction.File, correction.ID, correction.From, correction.To,
			); err != nil {
				return fmt.Errorf("insert correction: %w", err)
			}
		}
		for i, failure := range report.Errors {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO validation_errors (run_id, seq, file, record_id, reason) VALUES (?, ?, ?, ?, ?)`,
				id, i, failure.File, failure.ID, failure.Reason,
			); err != nil {
				return fmt.Errorf("insert validation error: %w", err)
			}
		}
		for i, registration := range report.Registrations {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO registrations (run_id, seq, domain_name, main_topic, label, file) VALUES (?, ?, ?, ?, ?, ?)`,
				id, i, registration.Domain, registration.Main, registration.Label, registration.File,
			); err != nil {
				return fmt.Errorf("insert registration: %w", err)
			}
		}
		for i, skipped := range report.Skipped {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO skipped_files (run_id, seq, file, reason) VALUES (?, ?, ?, ?)`,
				id, i, skipped.File, skipped.Reason,
			); err != nil {
				return fmt.Errorf("insert skipped file: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

type runCounts struct {
	filesScanned     int
	recordsScanned   int
	recordsSkipped   int
	filesProcessed   int
	filesModified    int
	taxonomyModified bool
	dryRun           bool
	findingCount     int
	failed           bool
}

func insertRun(ctx context.Context, tx *sql.Tx, id string, kind Kind, meta Meta, counts runCounts) error {
	started, finished := meta.StartedAt, meta.FinishedAt
	if started.IsZero() {
		started = time.Now()
	}
	if finished.IsZero() {
		finished = started
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, kind, started_at, finished_at, content_dir, repo_commit, repo_branch, repo_dirty,
		   dry_run, files_scanned, records_scanned, records_skipped, files_processed, files_modified,
		   taxonomy_modified, finding_count, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(kind), started.UTC(), finished.UTC(), meta.ContentDir,
		nullableString(meta.Repo.Commit), nullableString(meta.Repo.Branch), meta.Repo.Dirty,
		counts.dryRun, counts.filesScanned, counts.recordsScanned, counts.recordsSkipped,
		counts.filesProcessed, counts.filesModified, counts.taxonomyModified, counts.findingCount, counts.failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin findings tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit findings tx: %w", err)
	}
	return nil
}

// nullableString converts an empty string into a SQL NULL.
func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
