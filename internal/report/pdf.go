package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"quizlint/internal/findings"
)

const pdfFontFamily = "content"

// pdfTable is one titled table of the PDF report.
type pdfTable struct {
	title   string
	headers []string
	widths  []float64
	rows    [][]string
}

// RenderPDF returns run as a landscape A4 PDF document.
func RenderPDF(run findings.Run, opts Options) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	family := "Helvetica"
	translate := func(value string) string { return value }
	if opts.PDFFont != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", opts.PDFFont)
		pdf.AddUTF8Font(pdfFontFamily, "B", opts.PDFFont)
		family = pdfFontFamily
	} else {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetTitle(fmt.Sprintf("quizlint %s run %s", run.Kind, run.ID), true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, translate(fmt.Sprintf("quizlint %s report", run.Kind)), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)
	for _, line := range []string{
		"Run: " + run.ID,
		"Started: " + formatTime(run.StartedAt),
		"Content: " + orDash(run.ContentDir),
		"Repo: " + formatCommit(run.Summary),
		"Status: " + formatStatus(run.Summary),
	} {
		pdf.CellFormat(0, 6, translate(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, table := range pdfTables(run) {
		pdf.SetFont(family, "B", 12)
		pdf.CellFormat(0, 8, translate(fmt.Sprintf("%s (%d)", table.title, len(table.rows))), "", 1, "L", false, 0, "")
		if len(table.rows) == 0 {
			pdf.SetFont(family, "", 10)
			pdf.CellFormat(0, 6, "None.", "", 1, "L", false, 0, "")
			pdf.Ln(2)
			continue
		}
		pdf.SetFont(family, "B", 9)
		pdf.SetFillColor(240, 244, 248)
		for i, header := range table.headers {
			ln := 0
			if i == len(table.headers)-1 {
				ln = 1
			}
			pdf.CellFormat(table.widths[i], 7, translate(header), "1", ln, "L", true, 0, "")
		}
		pdf.SetFont(family, "", 9)
		for _, row := range table.rows {
			for i, value := range row {
				ln := 0
				if i == len(row)-1 {
					ln = 1
				}
				text := fitText(pdf, translate(value), table.widths[i]-2)
				pdf.CellFormat(table.widths[i], 6, text, "1", ln, "L", false, 0, "")
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfTables(run findings.Run) []pdfTable {
	switch {
	case run.Scan != nil:
		result := run.Scan
		summary := result.Summary
		tables := []pdfTable{
			{
				title:   "Summary",
				headers: []string{"Files scanned", "Questions compared", "Skipped", "Duplicates", "Similar pairs"},
				widths:  []float64{55, 55, 55, 56, 56},
				rows: [][]string{{
					strconv.Itoa(summary.FilesScanned), strconv.Itoa(summary.RecordsScanned), strconv.Itoa(summary.RecordsSkipped),
					strconv.Itoa(summary.DuplicatesFound), strconv.Itoa(summary.SimilarPairsFound),
				}},
			},
			{title: "Exact duplicates", headers: []string{"Duplicate", "First seen", "Key"}, widths: []float64{80, 80, 117}},
			{title: "Similar questions", headers: []string{"A", "B", "Text", "Options"}, widths: []float64{100, 100, 38, 39}},
		}
		for _, dup := range result.Duplicates {
			tables[1].rows = append(tables[1].rows, []string{formatLocation(dup.Duplicate), formatLocation(dup.FirstSeen), dup.Key})
		}
		for _, pair := range result.NearDuplicates {
			tables[2].rows = append(tables[2].rows, []string{
				formatLocation(pair.A), formatLocation(pair.B), formatPercent(pair.TextSimilarity), formatPercent(pair.OptionSimilarity),
			})
		}
		if len(result.LoadErrors) > 0 {
			loadErrors := pdfTable{title: "Unreadable files", headers: []string{"File", "Error"}, widths: []float64{100, 177}}
			for _, loadErr := range result.LoadErrors {
				loadErrors.rows = append(loadErrors.rows, []string{loadErr.File, loadErr.Message})
			}
			tables = append(tables, loadErrors)
		}
		return tables
	case run.Validation != nil:
		report := run.Validation
		tables := []pdfTable{
			{
				title:   "Summary",
				headers: []string{"Files processed", "Files modified", "Taxonomy modified", "Dry run"},
				widths:  []float64{69, 69, 69, 70},
				rows: [][]string{{
					strconv.Itoa(report.FilesProcessed), strconv.Itoa(report.FilesModified),
					strconv.FormatBool(report.TaxonomyModified), strconv.FormatBool(report.DryRun),
				}},
			},
			{title: "Corrections", headers: []string{"File", "ID", "Change"}, widths: []float64{90, 30, 157}},
			{title: "Unfixable errors", headers: []string{"File", "ID", "Reason"}, widths: []float64{90, 30, 157}},
			{title: "New labels", headers: []string{"Domain", "Main", "Label", "File"}, widths: []float64{50, 60, 77, 90}},
			{title: "Skipped files", headers: []string{"File", "Reason"}, widths: []float64{100, 177}},
		}
		for _, correction := range report.Corrections {
			tables[1].rows = append(tables[1].rows, []string{correction.File, correction.ID, correction.Change})
		}
		for _, failure := range report.Errors {
			tables[2].rows = append(tables[2].rows, []string{failure.File, orDash(failure.ID), failure.Reason})
		}
		for _, registration := range report.Registrations {
			tables[3].rows = append(tables[3].rows, []string{registration.Domain, orDash(registration.Main), registration.Label, registration.File})
		}
		for _, skipped := range report.Skipped {
			tables[4].rows = append(tables[4].rows, []string{skipped.File, skipped.Reason})
		}
		return tables
	}
	return nil
}

// fitText shortens value with an ellipsis until it fits width.
func fitText(pdf *fpdf.Fpdf, value string, width float64) string {
	if pdf.GetStringWidth(value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
