package content

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SubCategoryState classifies the shape of a record's subCategory field.
type SubCategoryState int

const (
	// SubCategoryMissing means the record carries no subCategory field.
	SubCategoryMissing SubCategoryState = iota
	// SubCategoryIncomplete means subCategory is not a mapping or has no specific field.
	SubCategoryIncomplete
	// SubCategoryPresent means at least the specific field was found.
	SubCategoryPresent
)

// Label is one specific label together with where it sits in the raw file.
type Label struct {
	Value  string
	Raw    string
	Line   int
	Column int
	Style  yaml.Style
}

// SubCategory is the classification tag of a record.
type SubCategory struct {
	State  SubCategoryState
	Main   string
	Labels []Label
}

// Scenario is the shared prompt a grouped record belongs to.
type Scenario struct {
	Title       string
	Description string
}

// Record is a single flattened question.
type Record struct {
	SourceFile  string
	Ordinal     string
	Text        string
	HasText     bool
	Options     []string
	OptionsOK   bool
	SubCategory SubCategory
	Scenario    *Scenario
}

// Comparable reports whether the record has the text and options needed for comparison.
func (r Record) Comparable() bool {
	return r.HasText && r.OptionsOK
}

// DedupKey returns text + "|" + sorted options joined by "|".
func (r Record) DedupKey() string {
	return DedupKey(r.Text, r.Options)
}

// DedupKey builds the order-independent exact-duplicate key.
func DedupKey(text string, options []string) string {
	sorted := append([]string(nil), options...)
	sort.Strings(sorted)
	return text + "|" + strings.Join(sorted, "|")
}

// Document is a parsed content file with its raw bytes retained.
type Document struct {
	Path    string
	Name    string
	Raw     []byte
	JSON    bool // Raw is JSON; rewrites must stay valid JSON
	Records []Record
}
