//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"

	"quizlint/internal/config"
)

const featureConfigYAML = `content:
  dir: quizzes
validate:
  workers: 4
`

// newRepository sets up a temp git repo with a config and an empty content directory.
func (s *featureState) newRepository() error {
	dir, err := os.MkdirTemp("", "quizlint-feature-*")
	if err != nil {
		return fmt.Errorf("create temp repo: %w", err)
	}
	s.repoDir = dir
	s.configPath = config.ConfigPath(dir)
	if err := s.writeFile(s.configPath, featureConfigYAML); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "quizzes"), 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}
	return s.initGitRepo(dir)
}

// theTaxonomy writes the master taxonomy for the scenario.
func (s *featureState) theTaxonomy(doc *godog.DocString) error {
	return s.writeFile(s.taxonomyPath(), doc.Content)
}

// aContentFile writes a content file under the content directory.
func (s *featureState) aContentFile(name string, doc *godog.DocString) error {
	return s.writeFile(s.contentPath(name), doc.Content)
}

func (s *featureState) taxonomyPath() string {
	return filepath.Join(config.ConfigDir(s.repoDir), config.TaxonomyFileName)
}

func (s *featureState) contentPath(name string) string {
	return filepath.Join(s.repoDir, "quizzes", name)
}

func (s *featureState) writeFile(path, payload string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(payload+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
