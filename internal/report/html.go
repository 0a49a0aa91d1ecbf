package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"quizlint/internal/findings"
	"quizlint/internal/scanner"
	"quizlint/internal/validator"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2933}
table{border-collapse:collapse;margin:0.5rem 0 1.5rem}
th,td{border:1px solid #cbd2d9;padding:0.3rem 0.6rem;text-align:left}
th{background:#f0f4f8}
.failed{color:#b42318}.ok{color:#067647}`

// RenderHTML writes a standalone HTML page for run.
func RenderHTML(ctx context.Context, w io.Writer, run findings.Run) error {
	return RunPage(run).Render(ctx, w)
}

// RunPage is the HTML page for one run.
func RunPage(run findings.Run) templ.Component {
	title := fmt.Sprintf("quizlint %s run %s", run.Kind, run.ID)
	return page(title, templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &stickyWriter{w: out}
		writeRunHeader(w, run.Summary)
		switch {
		case run.Scan != nil:
			writeScanTables(w, *run.Scan)
		case run.Validation != nil:
			writeValidationTables(w, *run.Validation)
		}
		return w.err
	}))
}

// IndexPage lists stored runs with links to their pages.
func IndexPage(runs []findings.Summary) templ.Component {
	return page("quizlint runs", templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &stickyWriter{w: out}
		if len(runs) == 0 {
			_, err := io.WriteString(w, "<p>No runs recorded yet.</p>")
			return err
		}
		table(w, []string{"Run", "Kind", "Started", "Repo", "Findings", "Status"}, len(runs), func(i int) []cell {
			run := runs[i]
			return []cell{
				{html: fmt.Sprintf(`<a href="/runs/%s">%s</a>`, templ.EscapeString(run.ID), templ.EscapeString(shortID(run.ID)))},
				{text: string(run.Kind)},
				{text: formatTime(run.StartedAt)},
				{text: formatCommit(run)},
				{text: strconv.Itoa(run.FindingCount)},
				{text: formatStatus(run), class: formatStatus(run)},
			}
		})
		return w.err
	}))
}

// stickyWriter keeps the first write error and refuses later writes, so the table
// helpers can write freely and the component reports the failure once.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="th">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><style>%s</style></head>
<body>
<h1>%s</h1>
`, templ.EscapeString(title), pageStyle, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func writeRunHeader(w io.Writer, summary findings.Summary) {
	fmt.Fprintf(w, `<dl id="run" data-run-id="%s">`, templ.EscapeString(summary.ID))
	for _, item := range [][2]string{
		{"Started", formatTime(summary.StartedAt)},
		{"Finished", formatTime(summary.FinishedAt)},
		{"Content", orDash(summary.ContentDir)},
		{"Repo", formatCommit(summary)},
	} {
		fmt.Fprintf(w, "<dt>%s</dt><dd>%s</dd>", item[0], templ.EscapeString(item[1]))
	}
	status := formatStatus(summary)
	fmt.Fprintf(w, `<dt>Status</dt><dd class="%s">%s</dd></dl>`+"\n", status, status)
}

func writeScanTables(w io.Writer, result scanner.Result) {
	summary := result.Summary
	fmt.Fprintf(w, `<p id="summary">Files scanned: %d. Questions compared: %d (skipped %d). Duplicates: %d. Similar pairs: %d.</p>`+"\n",
		summary.FilesScanned, summary.RecordsScanned, summary.RecordsSkipped, summary.DuplicatesFound, summary.SimilarPairsFound)

	fmt.Fprintf(w, "<h2>Exact duplicates (%d)</h2>\n", len(result.Duplicates))
	table(w, []string{"Duplicate", "First seen", "Key"}, len(result.Duplicates), func(i int) []cell {
		dup := result.Duplicates[i]
		return []cell{{text: formatLocation(dup.Duplicate)}, {text: formatLocation(dup.FirstSeen)}, {text: dup.Key}}
	})
	fmt.Fprintf(w, "<h2>Similar questions (%d)</h2>\n", len(result.NearDuplicates))
	table(w, []string{"A", "B", "Text", "Options"}, len(result.NearDuplicates), func(i int) []cell {
		pair := result.NearDuplicates[i]
		return []cell{
			{text: formatLocation(pair.A)},
			{text: formatLocation(pair.B)},
			{text: formatPercent(pair.TextSimilarity)},
			{text: formatPercent(pair.OptionSimilarity)},
		}
	})
	if len(result.LoadErrors) > 0 {
		fmt.Fprintf(w, "<h2>Unreadable files (%d)</h2>\n", len(result.LoadErrors))
		table(w, []string{"File", "Error"}, len(result.LoadErrors), func(i int) []cell {
			return []cell{{text: result.LoadErrors[i].File}, {text: result.LoadErrors[i].Message}}
		})
	}
}

func writeValidationTables(w io.Writer, report validator.Report) {
	fmt.Fprintf(w, `<p id="summary">Files processed: %d. Files modified: %d. Taxonomy modified: %t.</p>`+"\n",
		report.FilesProcessed, report.FilesModified, report.TaxonomyModified)

	fmt.Fprintf(w, "<h2>Corrections (%d)</h2>\n", len(report.Corrections))
	table(w, []string{"File", "ID", "Change"}, len(report.Corrections), func(i int) []cell {
		correction := report.Corrections[i]
		return []cell{{text: correction.File}, {text: correction.ID}, {text: correction.Change}}
	})
	fmt.Fprintf(w, "<h2>Unfixable errors (%d)</h2>\n", len(report.Errors))
	table(w, []string{"File", "ID", "Reason"}, len(report.Errors), func(i int) []cell {
		failure := report.Errors[i]
		return []cell{{text: failure.File}, {text: orDash(failure.ID)}, {text: failure.Reason, class: "failed"}}
	})
	fmt.Fprintf(w, "<h2>New labels (%d)</h2>\n", len(report.Registrations))
	table(w, []string{"Domain", "Main", "Label", "File"}, len(report.Registrations), func(i int) []cell {
		registration := report.Registrations[i]
		return []cell{{text: registration.Domain}, {text: orDash(registration.Main)}, {text: registration.Label}, {text: registration.File}}
	})
	fmt.Fprintf(w, "<h2>Skipped files (%d)</h2>\n", len(report.Skipped))
	table(w, []string{"File", "Reason"}, len(report.Skipped), func(i int) []cell {
		return []cell{{text: report.Skipped[i].File}, {text: report.Skipped[i].Reason}}
	})
}

// cell is one table cell; html is written as-is and takes precedence over escaped text.
type cell struct {
	text  string
	html  string
	class string
}

func table(w io.Writer, headers []string, rows int, row func(i int) []cell) {
	if rows == 0 {
		io.WriteString(w, "<p>None.</p>\n")
		return
	}
	io.WriteString(w, "<table>\n<thead><tr>")
	for _, header := range headers {
		fmt.Fprintf(w, "<th>%s</th>", templ.EscapeString(header))
	}
	io.WriteString(w, "</tr></thead>\n<tbody>\n")
	for i := 0; i < rows; i++ {
		io.WriteString(w, "<tr>")
		for _, c := range row(i) {
			content := c.html
			if content == "" {
				content = templ.EscapeString(c.text)
			}
			if c.class != "" {
				fmt.Fprintf(w, `<td class="%s">%s</td>`, templ.EscapeString(c.class), content)
			} else {
				fmt.Fprintf(w, "<td>%s</td>", content)
			}
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</tbody>\n</table>\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
