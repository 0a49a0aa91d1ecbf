package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestParseDocumentYAML verifies plain and scenario items flatten into records.
func TestParseDocumentYAML(t *testing.T) {
	payload := `- number: 7
  question: "  What is X? "
  choices: ["1", " 2 "]
  subCategory:
    main: M
    specific: OldLabel
- type: scenario
  title: Farm
  description: A farmer has cows.
  questions:
    - text: How many cows?
      options:
        - label: A
          text: three
        - label: B
          text: four
      subCategory:
        main: M
        specific: [Counting, Animals]
`
	doc, err := ParseDocument("thai-01.yml", []byte(payload), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(doc.Records))
	}

	first := doc.Records[0]
	if first.Ordinal != "7" {
		t.Fatalf("expected ordinal 7, got %q", first.Ordinal)
	}
	if first.Text != "What is X?" {
		t.Fatalf("expected trimmed text, got %q", first.Text)
	}
	if len(first.Options) != 2 || first.Options[1] != "2" {
		t.Fatalf("unexpected options: %+v", first.Options)
	}
	if first.SubCategory.State != SubCategoryPresent || first.SubCategory.Main != "M" {
		t.Fatalf("unexpected subcategory: %+v", first.SubCategory)
	}
	if len(first.SubCategory.Labels) != 1 || first.SubCategory.Labels[0].Value != "OldLabel" {
		t.Fatalf("unexpected labels: %+v", first.SubCategory.Labels)
	}
	if first.SubCategory.Labels[0].Line != 6 {
		t.Fatalf("expected label on line 6, got %d", first.SubCategory.Labels[0].Line)
	}

	second := doc.Records[1]
	if second.Ordinal != "2" {
		t.Fatalf("expected positional ordinal 2, got %q", second.Ordinal)
	}
	if second.Scenario == nil || second.Scenario.Title != "Farm" {
		t.Fatalf("expected scenario back-reference, got %+v", second.Scenario)
	}
	if len(second.Options) != 2 || second.Options[0] != "three" {
		t.Fatalf("expected structured options to normalize to text, got %+v", second.Options)
	}
	if len(second.SubCategory.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %+v", second.SubCategory.Labels)
	}
}

// TestParseDocumentJSON verifies JSON content with tabs parses with positions.
func TestParseDocumentJSON(t *testing.T) {
	payload := "{\n\t\"questions\": [\n\t\t{\"question\": \"คำถาม\", \"options\": [\"ก\", \"ข\"], \"subCategory\": {\"main\": \"ไวยากรณ์\", \"specific\": \"คำนาม\"}}\n\t]\n}\n"
	doc, err := ParseDocument("thai.json", []byte(payload), true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(doc.Records))
	}
	label := doc.Records[0].SubCategory.Labels[0]
	if label.Value != "คำนาม" || label.Line != 3 {
		t.Fatalf("unexpected label: %+v", label)
	}
	if string(doc.Raw) != payload {
		t.Fatalf("expected raw bytes to be retained unchanged")
	}
}

// TestParseDocumentMalformedRecords verifies malformed fields are flagged, not fatal.
func TestParseDocumentMalformedRecords(t *testing.T) {
	payload := `- question: ok
  options: not-a-list
- options: [a]
- question: fine
  options: [a]
  subCategory: grammar
- question: fine
  options: [a]
  subCategory:
    main: M
`
	doc, err := ParseDocument("x.yml", []byte(payload), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Records[0].OptionsOK || doc.Records[0].Comparable() {
		t.Fatalf("expected scalar options to be rejected")
	}
	if doc.Records[1].HasText {
		t.Fatalf("expected missing prompt to be flagged")
	}
	if doc.Records[1].SubCategory.State != SubCategoryMissing {
		t.Fatalf("expected missing subcategory, got %v", doc.Records[1].SubCategory.State)
	}
	if doc.Records[2].SubCategory.State != SubCategoryIncomplete {
		t.Fatalf("expected scalar subcategory to be incomplete")
	}
	if doc.Records[3].SubCategory.State != SubCategoryIncomplete {
		t.Fatalf("expected subcategory without specific to be incomplete")
	}
}

// TestParseDocumentRejectsUnsupportedRoot verifies layout errors surface.
func TestParseDocumentRejectsUnsupportedRoot(t *testing.T) {
	_, err := ParseDocument("x.yml", []byte("title: nothing here\n"), false)
	if !errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("expected layout error, got %v", err)
	}
	_, err = ParseDocument("x.yml", []byte(""), false)
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected empty document error, got %v", err)
	}
	_, err = ParseDocument("x.yml", []byte("- [unclosed\n"), false)
	if err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestDedupKeySymmetry(t *testing.T) {
	a := DedupKey("What is X?", []string{"1", "2", "3"})
	b := DedupKey("What is X?", []string{"3", "1", "2"})
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if a != "What is X?|1|2|3" {
		t.Fatalf("unexpected key %q", a)
	}
	options := []string{"b", "a"}
	_ = DedupKey("q", options)
	if options[0] != "b" {
		t.Fatalf("expected DedupKey not to reorder its input")
	}
}

func TestStoreFilesAndCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yml"), "- question: b\n  options: [x]\n")
	writeFile(t, filepath.Join(dir, "a.json"), `[{"question": "a", "options": ["x"]}]`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "nested", "c.yaml"), "- question: c\n  options: [x]\n")
	writeFile(t, filepath.Join(dir, ".hidden", "d.yml"), "- question: d\n  options: [x]\n")

	store := NewStore(dir, []string{"yml", ".yaml", ".JSON"})
	files, err := store.Files()
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	want := []string{"a.json", "b.yml", "nested/c.yaml"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}

	first, err := store.Load("b.yml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	again, err := store.Load("b.yml")
	if err != nil {
		t.Fatalf("load again: %v", err)
	}
	if first != again {
		t.Fatalf("expected cached document")
	}
	if err := store.Write("b.yml", []byte("- question: changed\n  options: [x]\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	reloaded, err := store.Load("b.yml")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Records[0].Text != "changed" {
		t.Fatalf("expected write to invalidate cache, got %q", reloaded.Records[0].Text)
	}
}

func TestStripMarkup(t *testing.T) {
	if got := StripMarkup("  What is <b>X</b>?<br> "); got != "What is X?" {
		t.Fatalf("unexpected stripped text %q", got)
	}
	if got := StripMarkup("plain   text"); got != "plain text" {
		t.Fatalf("unexpected plain text %q", got)
	}
}

func writeFile(t *testing.T, path, payload string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
