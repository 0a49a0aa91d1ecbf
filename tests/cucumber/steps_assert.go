//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"strings"

	"quizlint/internal/taxonomy"
)

// theExitCodeIs asserts the CLI exit code.
func (s *featureState) theExitCodeIs(expected int) error {
	if s.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout:\n%s\nstderr:\n%s",
			expected, s.exitCode, s.stdout.String(), s.stderr.String())
	}
	return nil
}

// theOutputContains asserts stdout contains the snippet.
func (s *featureState) theOutputContains(snippet string) error {
	if !strings.Contains(s.stdout.String(), snippet) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", snippet, s.stdout.String())
	}
	return nil
}

func (s *featureState) theFileContains(name, snippet string) error {
	text, err := os.ReadFile(s.contentPath(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if !strings.Contains(string(text), snippet) {
		return fmt.Errorf("expected %s to contain %q, got:\n%s", name, snippet, text)
	}
	return nil
}

func (s *featureState) theFileDoesNotContain(name, snippet string) error {
	text, err := os.ReadFile(s.contentPath(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if strings.Contains(string(text), snippet) {
		return fmt.Errorf("expected %s not to contain %q, got:\n%s", name, snippet, text)
	}
	return nil
}

// theTaxonomyListsOnce reloads the taxonomy and counts the label under a domain group.
func (s *featureState) theTaxonomyListsOnce(label, domain, group string) error {
	tax, err := taxonomy.Load(s.taxonomyPath())
	if err != nil {
		return err
	}
	entry, ok := tax.Domains[domain]
	if !ok {
		return fmt.Errorf("domain %q missing from taxonomy", domain)
	}
	count := 0
	for _, existing := range entry.Groups[group] {
		if existing == label {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("expected %q once under %s/%s, found %d", label, domain, group, count)
	}
	return nil
}
