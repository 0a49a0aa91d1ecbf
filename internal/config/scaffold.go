package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `# quizlint configuration
env: local

content:
  dir: quizzes
  extensions: [".yml", ".yaml", ".json"]

taxonomy:
  path: .quizlint/taxonomy.yml
  locale: th

scan:
  text_threshold: 0.85
  option_threshold: 0.75
  include_prefixes: []
  strip_markup: false

validate:
  register_new: true

store:
  enabled: true
  path: .quizlint/findings.duckdb

server:
  addr: 127.0.0.1:8089

report:
  # TrueType font with Thai glyphs for PDF output, e.g. /usr/share/fonts/truetype/tlwg/Garuda.ttf
  pdf_font: ""
`

const defaultTaxonomy = `version: 1
domains:
  thai:
    kind: grouped
    groups:
      grammar:
        - คำนาม
        - คำกริยา
    corrections: {}
  social:
    kind: flat
    topics:
      - topic: History
        description: Thai and world history
prefixes:
  - prefix: thai-
    domain: thai
    default_main: grammar
  - prefix: social-
    domain: social
`

// Scaffold writes a starter config and taxonomy under root/.quizlint. Existing files are
// never overwritten.
func Scaffold(root string) ([]string, error) {
	if root == "" {
		return nil, fmt.Errorf("repo root is required")
	}
	files := []struct {
		path    string
		payload string
	}{
		{path: ConfigPath(root), payload: defaultConfig},
		{path: filepath.Join(ConfigDir(root), TaxonomyFileName), payload: defaultTaxonomy},
	}
	for _, file := range files {
		if info, err := os.Stat(file.path); err == nil {
			if info.IsDir() {
				return nil, fmt.Errorf("path %q is a directory", file.path)
			}
			return nil, fmt.Errorf("file already exists at %q", file.path)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", file.path, err)
		}
	}
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	written := make([]string, 0, len(files))
	for _, file := range files {
		if err := os.WriteFile(file.path, []byte(file.payload), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", file.path, err)
		}
		written = append(written, file.path)
	}
	return written, nil
}
