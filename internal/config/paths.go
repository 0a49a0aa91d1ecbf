package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File and directory names under a repository root.
const (
	ConfigDirName    = ".quizlint"
	ConfigFileName   = "config.yml"
	TaxonomyFileName = "taxonomy.yml"
	EnvFileName      = ".env"
	EnvPrefix        = "QUIZLINT"
)

// ErrConfigNotFound is returned by FindConfigPath when no ancestor holds a config file.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigDir is root/.quizlint.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath is root/.quizlint/config.yml.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RepoRootFromConfigPath is the directory containing .quizlint, or the config file's own
// directory for a config stored elsewhere.
func RepoRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) != ConfigDirName {
		return dir
	}
	return filepath.Dir(dir)
}

// FindConfigPath returns the config file of startDir or its nearest ancestor that has one.
func FindConfigPath(startDir string) (string, error) {
	start, err := absDir(startDir)
	if err != nil {
		return "", err
	}
	for dir := start; ; {
		candidate := ConfigPath(dir)
		switch info, err := os.Stat(candidate); {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("config path %q is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, start)
		}
		dir = parent
	}
}

// absDir makes dir absolute; an empty dir is the working directory.
func absDir(dir string) (string, error) {
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", dir, err)
	}
	return abs, nil
}

// resolvePath joins a relative path onto root and leaves absolute and empty paths alone.
func resolvePath(root, path string) string {
	if path = strings.TrimSpace(path); path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
