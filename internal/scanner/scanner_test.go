package scanner

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"quizlint/internal/content"
)

func TestScanExactDuplicateWithReorderedOptions(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "a.yml", "- question: What is X?\n  options: [\"1\", \"2\", \"3\"]\n")
	writeContent(t, dir, "b.yml", "- number: 4\n  question: \" What is X? \"\n  choices: [\"3\", \"1\", \"2\"]\n")

	result := scan(t, dir, Options{Thresholds: DefaultThresholds()})
	if len(result.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %+v", result.Duplicates)
	}
	dup := result.Duplicates[0]
	if dup.FirstSeen != (Location{File: "a.yml", Ordinal: "1"}) || dup.Duplicate != (Location{File: "b.yml", Ordinal: "4"}) {
		t.Fatalf("unexpected duplicate %+v", dup)
	}
	if len(result.NearDuplicates) != 0 {
		t.Fatalf("expected duplicate to be excluded from the similarity pass, got %+v", result.NearDuplicates)
	}
	if result.Summary.DuplicatesFound != 1 || result.Summary.FilesScanned != 2 {
		t.Fatalf("unexpected summary %+v", result.Summary)
	}
}

func TestScanThaiDuplicateWithoutSubCategory(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "thai-a.json", `[{"question": "คำถามทดสอบ", "options": ["ก", "ข"]}]`)
	writeContent(t, dir, "thai-b.json", `[{"question": "คำถามทดสอบ", "options": ["ข", "ก"]}]`)

	result := scan(t, dir, Options{Thresholds: DefaultThresholds()})
	if len(result.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %+v", result.Duplicates)
	}
	if result.Duplicates[0].FirstSeen.File != "thai-a.json" || result.Duplicates[0].Duplicate.File != "thai-b.json" {
		t.Fatalf("unexpected duplicate %+v", result.Duplicates[0])
	}
	if len(result.NearDuplicates) != 0 {
		t.Fatalf("expected no near duplicates, got %+v", result.NearDuplicates)
	}
}

func TestScanThresholdBoundaryIsInclusive(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "pairs.yml", `- question: abcdefghijklmnopqrst
  options: [a, b, c]
- question: abcdefghijklmnopqXYZ
  options: [a, b, c, d]
`)
	result := scan(t, dir, Options{Thresholds: DefaultThresholds()})
	if len(result.NearDuplicates) != 1 {
		t.Fatalf("expected boundary pair to be reported, got %+v", result.NearDuplicates)
	}
	pair := result.NearDuplicates[0]
	if math.Abs(pair.TextSimilarity-0.85) > 1e-9 || math.Abs(pair.OptionSimilarity-0.75) > 1e-9 {
		t.Fatalf("unexpected scores %+v", pair)
	}
}

func TestScanBelowThresholdIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "text.yml", `- question: abcdefghijklmnopqrst
  options: [a, b, c]
- question: abcdefghijklmnopWXYZ
  options: [a, b, c]
`)
	writeContent(t, dir, "options.yml", `- question: zyxwvutsrqponmlkjihg
  options: [a, b, c]
- question: zyxwvutsrqponmlkjXYZ
  options: [a, b, d, e]
`)
	result := scan(t, dir, Options{Thresholds: DefaultThresholds()})
	if len(result.NearDuplicates) != 0 {
		t.Fatalf("expected no near duplicates, got %+v", result.NearDuplicates)
	}
}

func TestScanSkipsMalformedRecordsAndBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "good.yml", "- question: q\n  options: [a]\n- options: [a]\n- question: r\n  options: a\n")
	writeContent(t, dir, "broken.yml", "- [unclosed\n")

	result := scan(t, dir, Options{Thresholds: DefaultThresholds()})
	if len(result.LoadErrors) != 1 || result.LoadErrors[0].File != "broken.yml" {
		t.Fatalf("expected broken file to be reported, got %+v", result.LoadErrors)
	}
	if result.Summary.FilesScanned != 1 || result.Summary.RecordsScanned != 1 || result.Summary.RecordsSkipped != 2 {
		t.Fatalf("unexpected summary %+v", result.Summary)
	}
}

func TestScanIncludePrefixes(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "thai-1.yml", "- question: q\n  options: [a]\n")
	writeContent(t, dir, "eng-1.yml", "- question: q\n  options: [a]\n")

	result := scan(t, dir, Options{Thresholds: DefaultThresholds(), IncludePrefixes: []string{"thai-"}})
	if result.Summary.FilesScanned != 1 || len(result.Duplicates) != 0 {
		t.Fatalf("expected only thai files to be scanned, got %+v", result)
	}
}

func TestScanStripMarkup(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "a.yml", "- question: \"What is <b>X</b>?\"\n  options: [\"<i>1</i>\", \"2\"]\n")
	writeContent(t, dir, "b.yml", "- question: What is X?\n  options: [\"2\", \"1\"]\n")

	plain := scan(t, dir, Options{Thresholds: DefaultThresholds()})
	if len(plain.Duplicates) != 0 {
		t.Fatalf("expected markup to matter without stripping, got %+v", plain.Duplicates)
	}
	stripped := scan(t, dir, Options{Thresholds: DefaultThresholds(), StripMarkup: true})
	if len(stripped.Duplicates) != 1 {
		t.Fatalf("expected duplicate once markup is stripped, got %+v", stripped.Duplicates)
	}
}

func TestScanHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "a.yml", "- question: q\n  options: [a]\n- question: r\n  options: [b]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, content.NewStore(dir, []string{".yml"}), Options{Thresholds: DefaultThresholds()}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func scan(t *testing.T, dir string, opts Options) Result {
	t.Helper()
	store := content.NewStore(dir, []string{".yml", ".yaml", ".json"})
	result, err := Scan(context.Background(), store, opts)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return result
}

func writeContent(t *testing.T, dir, name, payload string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
