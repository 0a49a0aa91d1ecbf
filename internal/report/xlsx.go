package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"quizlint/internal/findings"
)

const summarySheet = "Summary"

// RenderXLSX returns run as a workbook with a summary sheet and one sheet per finding kind.
func RenderXLSX(run findings.Run) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Run", run.ID},
		{"Kind", string(run.Kind)},
		{"Started", formatTime(run.StartedAt)},
		{"Finished", formatTime(run.FinishedAt)},
		{"Content", orDash(run.ContentDir)},
		{"Repo", formatCommit(run.Summary)},
		{"Status", formatStatus(run.Summary)},
		{"Findings", run.FindingCount},
	}

	var sheets []xlsxSheet
	switch {
	case run.Scan != nil:
		result := run.Scan
		summary := result.Summary
		summaryRows = append(summaryRows,
			[]interface{}{"Files scanned", summary.FilesScanned},
			[]interface{}{"Questions compared", summary.RecordsScanned},
			[]interface{}{"Questions skipped", summary.RecordsSkipped},
			[]interface{}{"Duplicates found", summary.DuplicatesFound},
			[]interface{}{"Similar pairs found", summary.SimilarPairsFound},
		)
		duplicates := xlsxSheet{name: "Duplicates", headers: []interface{}{"Duplicate file", "Duplicate #", "First seen file", "First seen #", "Key"}}
		for _, dup := range result.Duplicates {
			duplicates.rows = append(duplicates.rows, []interface{}{dup.Duplicate.File, dup.Duplicate.Ordinal, dup.FirstSeen.File, dup.FirstSeen.Ordinal, dup.Key})
		}
		similar := xlsxSheet{name: "Similar", headers: []interface{}{"A file", "A #", "B file", "B #", "Text similarity", "Option similarity"}}
		for _, pair := range result.NearDuplicates {
			similar.rows = append(similar.rows, []interface{}{pair.A.File, pair.A.Ordinal, pair.B.File, pair.B.Ordinal, pair.TextSimilarity, pair.OptionSimilarity})
		}
		loadErrors := xlsxSheet{name: "Load errors", headers: []interface{}{"File", "Error"}}
		for _, loadErr := range result.LoadErrors {
			loadErrors.rows = append(loadErrors.rows, []interface{}{loadErr.File, loadErr.Message})
		}
		sheets = []xlsxSheet{duplicates, similar, loadErrors}
	case run.Validation != nil:
		report := run.Validation
		summaryRows = append(summaryRows,
			[]interface{}{"Files processed", report.FilesProcessed},
			[]interface{}{"Files modified", report.FilesModified},
			[]interface{}{"Taxonomy modified", report.TaxonomyModified},
			[]interface{}{"Dry run", report.DryRun},
		)
		corrections := xlsxSheet{name: "Corrections", headers: []interface{}{"File", "ID", "From", "To", "Change"}}
		for _, correction := range report.Corrections {
			corrections.rows = append(corrections.rows, []interface{}{correction.File, correction.ID, correction.From, correction.To, correction.Change})
		}
		failures := xlsxSheet{name: "Errors", headers: []interface{}{"File", "ID", "Reason"}}
		for _, failure := range report.Errors {
			failures.rows = append(failures.rows, []interface{}{failure.File, failure.ID, failure.Reason})
		}
		registrations := xlsxSheet{name: "New labels", headers: []interface{}{"Domain", "Main", "Label", "File"}}
		for _, registration := range report.Registrations {
			registrations.rows = append(registrations.rows, []interface{}{registration.Domain, registration.Main, registration.Label, registration.File})
		}
		skipped := xlsxSheet{name: "Skipped", headers: []interface{}{"File", "Reason"}}
		for _, entry := range report.Skipped {
			skipped.rows = append(skipped.rows, []interface{}{entry.File, entry.Reason})
		}
		sheets = []xlsxSheet{corrections, failures, registrations, skipped}
	}

	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}
	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}
		rows := append([][]interface{}{sheet.headers}, sheet.rows...)
		if err := writeRows(f, sheet.name, rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

type xlsxSheet struct {
	name    string
	headers []interface{}
	rows    [][]interface{}
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
