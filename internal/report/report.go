// Package report renders stored findings runs as text, HTML, PDF, or XLSX.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"quizlint/internal/findings"
)

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Options tunes rendering.
type Options struct {
	// PDFFont is a TrueType font file with glyphs for the content language. Without it the
	// PDF uses a core font and non-Latin text is replaced.
	PDFFont string
}

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected text, html, pdf, or xlsx)", value)
	}
}

// Render writes run to w in format.
func Render(ctx context.Context, w io.Writer, run findings.Run, format Format, opts Options) error {
	switch format {
	case FormatText:
		return RenderText(w, run)
	case FormatHTML:
		return RenderHTML(ctx, w, run)
	case FormatPDF:
		data, err := RenderPDF(run, opts)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatXLSX:
		data, err := RenderXLSX(run)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
