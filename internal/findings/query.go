package findings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizlint/internal/scanner"
	"quizlint/internal/validator"
)

const summaryColumns = `CAST(run_id AS VARCHAR), kind, started_at, finished_at, content_dir, repo_commit, repo_branch,
	repo_dirty, dry_run, finding_count, failed`

// ListRuns returns every stored run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+summaryColumns+` FROM runs ORDER BY started_at DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var runs []Summary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, summary)
	}
	return runs, rows.Err()
}

// LatestRun loads the most recent run, optionally restricted to kind.
func (s *Store) LatestRun(ctx context.Context, kind Kind) (Run, error) {
	query := `SELECT CAST(run_id AS VARCHAR) FROM runs`
	var args []interface{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY started_at DESC LIMIT 1`
	var id string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return s.LoadRun(ctx, id)
}

// LoadRun loads one run with all of its findings.
func (s *Store) LoadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+summaryColumns+` FROM runs WHERE CAST(run_id AS VARCHAR) = ?`, id)
	summary, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return Run{}, err
	}
	run := Run{Summary: summary}
	switch summary.Kind {
	case KindScan:
		result, err := s.loadScan(ctx, id)
		if err != nil {
			return Run{}, err
		}
		run.Scan = &result
	case KindValidate:
		report, err := s.loadValidation(ctx, id)
		if err != nil {
			return Run{}, err
		}
		run.Validation = &report
	}
	return run, nil
}

func (s *Store) loadScan(ctx context.Context, id string) (scanner.Result, error) {
	var result scanner.Result
	err := s.db.QueryRowContext(ctx,
		`SELECT files_scanned, records_scanned, records_skipped FROM runs WHERE CAST(run_id AS VARCHAR) = ?`, id,
	).Scan(&result.Summary.FilesScanned, &result.Summary.RecordsScanned, &result.Summary.RecordsSkipped)
	if err != nil {
		return result, fmt.Errorf("load scan summary: %w", err)
	}
	err = s.each(ctx, `SELECT dedup_key, first_file, first_ordinal, duplicate_file, duplicate_ordinal
		FROM duplicates WHERE CAST(run_id AS VARCHAR) = ? ORDER BY seq`, id, func(rows *sql.Rows) error {
		var dup scanner.Duplicate
		if err := rows.Scan(&dup.Key, &dup.FirstSeen.File, &dup.FirstSeen.Ordinal, &dup.Duplicate.File, &dup.Duplicate.Ordinal); err != nil {
			return err
		}
		result.Duplicates = append(result.Duplicates, dup)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("load duplicates: %w", err)
	}
	err = s.each(ctx, `SELECT a_file, a_ordinal, b_file, b_ordinal, text_similarity, option_similarity
		FROM near_duplicates WHERE CAST(run_id AS VARCHAR) = ? ORDER BY seq`, id, func(rows *sql.Rows) error {
		var pair scanner.NearDuplicate
		if err := rows.Scan(&pair.A.File, &pair.A.Ordinal, &pair.B.File, &pair.B.Ordinal, &pair.TextSimilarity, &pair.OptionSimilarity); err != nil {
			return err
		}
		result.NearDuplicates = append(result.NearDuplicates, pair)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("load near duplicates: %w", err)
	}
	err = s.each(ctx, `SELECT file, message FROM load_errors WHERE CAST(run_id AS VARCHAR) = ? ORDER BY seq`, id, func(rows *sql.Rows) error {
		var loadErr scanner.LoadError
		if err := rows.Scan(&loadErr.File, &loadErr.Message); err != nil {
			return err
		}
		result.LoadErrors = append(result.LoadErrors, loadErr)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("load load errors: %w", err)
	}
	result.Summary.DuplicatesFound = len(result.Duplicates)
	result.Summary.SimilarPairsFound = len(result.NearDuplicates)
	return result, nil
}

func (s *Store) loadValidation(ctx context.Context, id string) (validator.Report, error) {
	var report validator.Report
	err := s.db.QueryRowContext(ctx,
		`SELECT files_processed, files_modified, taxonomy_modified, dry_run FROM runs WHERE CAST(run_id AS VARCHAR) = ?`, id,
	).Scan(&report.FilesProcessed, &report.FilesModified, &report.TaxonomyModified, &report.DryRun)
	if err != nil {
		return report, fmt.Errorf("load validation summary: %w", err)
	}
	err = s.each(ctx, `SELECT file, record_id, from_label, to_label FROM corrections WHERE CAST(run_id AS VARCHAR) = ? ORDER BY seq`, id, func(rows *sql.Rows) error {
		var correction validator.Correction
		if err := rows.Scan(&correction.File, &correction.ID, &correction.From, &correction.To); err != nil {
			return err
		}
		correction.Change = correction.From + " -> " + correction.To
		report.Corrections = append(report.Corrections, correction)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("load corrections: %w", err)
	}
	err = s.each(ctx, `SELECT file, record_id, reason FROM validation_errors WHERE CAST(run_id AS VARCHAR) = ? ORDER BY seq`, id, func(rows *sql.Rows) error {
		var failure validator.Error
		if err := rows.Scan(&failure.File, &failure.ID, &failure.Reason); err != nil {
			return err
		}
		report.Errors = append(report.Errors, failure)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("load validation errors: %w", err)
	}
	err = s.each(ctx, `SELECT domain_name, main_topic, label, file FROM registrations WHERE CAST(run_id AS VARCHAR) = ? ORDER BY seq`, id, func(rows *sql.Rows) error {
		var registration validator.Registration
		if err := rows.Scan(&registration.Domain, &registration.Main, &registration.Label, &registration.File); err != nil {
			return err
		}
		report.Registrations = append(report.Registrations, registration)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("load registrations: %w", err)
	}
	err = s.each(ctx, `SELECT file, reason FROM skipped_files WHERE CAST(run_id AS VARCHAR) = ? ORDER BY seq`, id, func(rows *sql.Rows) error {
		var skipped validator.Skipped
		if err := rows.Scan(&skipped.File, &skipped.Reason); err != nil {
			return err
		}
		report.Skipped = append(report.Skipped, skipped)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("load skipped files: %w", err)
	}
	return report, nil
}

func (s *Store) each(ctx context.Context, query, id string, fn func(rows *sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummary(row rowScanner) (Summary, error) {
	var (
		summary        Summary
		kind           string
		commit, branch sql.NullString
	)
	if err := row.Scan(&summary.ID, &kind, &summary.StartedAt, &summary.FinishedAt, &summary.ContentDir,
		&commit, &branch, &summary.RepoDirty, &summary.DryRun, &summary.FindingCount, &summary.Failed); err != nil {
		return Summary{}, err
	}
	summary.Kind = Kind(kind)
	summary.RepoCommit = commit.String
	summary.RepoBranch = branch.String
	return summary, nil
}
