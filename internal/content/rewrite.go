package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrLiteralNotFound indicates the raw text no longer contains the label being corrected.
var ErrLiteralNotFound = errors.New("label literal not found in raw text")

// Edit replaces Length bytes at Offset with Replacement.
type Edit struct {
	Offset      int
	Length      int
	Replacement string
}

// Rewriter accumulates label replacements against a document's raw text.
// Edits are computed against the original bytes and applied together by Result.
type Rewriter struct {
	raw   []byte
	json  bool
	edits []Edit
}

// NewRewriter starts a rewrite session for doc.
func NewRewriter(doc *Document) *Rewriter {
	return &Rewriter{raw: doc.Raw, json: doc.JSON}
}

// Modified reports whether any replacement was recorded.
func (r *Rewriter) Modified() bool {
	return len(r.edits) > 0
}

// Replace rewrites the literal occurrence of label with replacement, keeping the quoting
// style found in the file. The parsed position is tried first; if the text there no longer
// matches, the first unclaimed quoted occurrence of the label is used.
func (r *Rewriter) Replace(label Label, replacement string) error {
	if offset, ok := offsetOf(r.raw, label.Line, label.Column); ok {
		literal := literalFor(label.Raw, label.Style)
		if literal != "" && bytes.HasPrefix(r.raw[offset:], []byte(literal)) && !r.claimed(offset, len(literal)) {
			r.edits = append(r.edits, Edit{
				Offset:      offset,
				Length:      len(literal),
				Replacement: r.quote(label.Style, replacement),
			})
			return nil
		}
	}
	for _, style := range []yaml.Style{yaml.DoubleQuotedStyle, yaml.SingleQuotedStyle} {
		literal := literalFor(label.Value, style)
		if offset, ok := r.findUnclaimed(literal); ok {
			r.edits = append(r.edits, Edit{
				Offset:      offset,
				Length:      len(literal),
				Replacement: r.quote(style, replacement),
			})
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrLiteralNotFound, label.Value)
}

// Result returns the raw text with all recorded edits applied.
func (r *Rewriter) Result() ([]byte, error) {
	return ApplyEdits(r.raw, r.edits)
}

// ApplyEdits applies non-overlapping edits to raw and returns the new bytes.
func ApplyEdits(raw []byte, edits []Edit) ([]byte, error) {
	sorted := append([]Edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	var out bytes.Buffer
	out.Grow(len(raw))
	cursor := 0
	for _, edit := range sorted {
		if edit.Offset < cursor || edit.Offset+edit.Length > len(raw) {
			return nil, fmt.Errorf("edit at offset %d overlaps or exceeds document", edit.Offset)
		}
		out.Write(raw[cursor:edit.Offset])
		out.WriteString(edit.Replacement)
		cursor = edit.Offset + edit.Length
	}
	out.Write(raw[cursor:])
	return out.Bytes(), nil
}

func (r *Rewriter) claimed(offset, length int) bool {
	for _, edit := range r.edits {
		if offset < edit.Offset+edit.Length && edit.Offset < offset+length {
			return true
		}
	}
	return false
}

func (r *Rewriter) findUnclaimed(literal string) (int, bool) {
	needle := []byte(literal)
	start := 0
	for start <= len(r.raw) {
		index := bytes.Index(r.raw[start:], needle)
		if index < 0 {
			return 0, false
		}
		offset := start + index
		if !r.claimed(offset, len(needle)) {
			return offset, true
		}
		start = offset + 1
	}
	return 0, false
}

// offsetOf converts a 1-based line and character column into a byte offset.
func offsetOf(raw []byte, line, column int) (int, bool) {
	if line < 1 || column < 1 {
		return 0, false
	}
	offset := 0
	for current := 1; current < line; current++ {
		next := bytes.IndexByte(raw[offset:], '\n')
		if next < 0 {
			return 0, false
		}
		offset += next + 1
	}
	for i := 1; i < column; i++ {
		if offset >= len(raw) || raw[offset] == '\n' {
			return 0, false
		}
		_, size := utf8.DecodeRune(raw[offset:])
		offset += size
	}
	return offset, true
}

func literalFor(value string, style yaml.Style) string {
	switch {
	case style&yaml.DoubleQuotedStyle != 0:
		return `"` + value + `"`
	case style&yaml.SingleQuotedStyle != 0:
		return "'" + value + "'"
	case style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0:
		return ""
	default:
		return value
	}
}

// quote renders value in the given style. JSON documents only take JSON string escapes.
func (r *Rewriter) quote(style yaml.Style, value string) string {
	if r.json {
		return jsonString(value)
	}
	return quoteLike(style, value)
}

func jsonString(value string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return strconv.Quote(value)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func quoteLike(style yaml.Style, value string) string {
	switch {
	case style&yaml.DoubleQuotedStyle != 0:
		return strconv.Quote(value)
	case style&yaml.SingleQuotedStyle != 0:
		return "'" + strings.ReplaceAll(value, "'", "''") + "'"
	case plainSafe(value):
		return value
	default:
		return strconv.Quote(value)
	}
}

// plainSafe reports whether value can be written as an unquoted YAML scalar without changing
// its meaning.
func plainSafe(value string) bool {
	if value == "" || strings.TrimSpace(value) != value {
		return false
	}
	if strings.ContainsAny(value, ":#{}[],&*!|>'\"%@`\n") || strings.HasPrefix(value, "-") || strings.HasPrefix(value, "?") {
		return false
	}
	var probe interface{}
	if err := yaml.Unmarshal([]byte(value), &probe); err != nil {
		return false
	}
	decoded, ok := probe.(string)
	return ok && decoded == value
}
