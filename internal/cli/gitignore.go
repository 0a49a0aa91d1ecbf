package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"quizlint/internal/fsutil"
)

// ensureGitignore appends each pattern missing from root/.gitignore and returns the ones it
// added. Patterns are repo-relative; anything escaping the root is rejected.
func ensureGitignore(root string, patterns []string) ([]string, error) {
	file := filepath.Join(root, ".gitignore")
	data, err := os.ReadFile(file)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}
	present := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var added []string
	for _, pattern := range patterns {
		entry := path.Clean(filepath.ToSlash(strings.TrimSpace(pattern)))
		if entry == "." || path.IsAbs(entry) || entry == ".." || strings.HasPrefix(entry, "../") {
			return nil, fmt.Errorf("gitignore pattern %q is outside the repository", pattern)
		}
		if !present[entry] {
			present[entry] = true
			added = append(added, entry)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += strings.Join(added, "\n") + "\n"
	if err := fsutil.WriteFileAtomic(file, []byte(content)); err != nil {
		return nil, fmt.Errorf("write .gitignore: %w", err)
	}
	return added, nil
}
