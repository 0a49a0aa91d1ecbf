package content

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"quizlint/internal/fsutil"
)

// Store is a per-run cache of parsed content documents rooted at a content directory.
// Callers own its lifetime; Invalidate and Reload drop cached documents explicitly.
type Store struct {
	root       string
	extensions []string

	mu   sync.Mutex
	docs map[string]*Document
}

// NewStore creates a store over root that picks up files with the given extensions.
func NewStore(root string, extensions []string) *Store {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &Store{root: root, extensions: normalized, docs: map[string]*Document{}}
}

// Root returns the content directory.
func (s *Store) Root() string {
	return s.root
}

// Files lists content files as slash-separated names relative to the root, sorted.
func (s *Store) Files() ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != s.root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.accepts(entry.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list content files: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the parsed document for name, reading it on first use.
func (s *Store) Load(name string) (*Document, error) {
	s.mu.Lock()
	doc, ok := s.docs[name]
	s.mu.Unlock()
	if ok {
		return doc, nil
	}
	doc, err := LoadDocument(s.path(name), name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.docs[name] = doc
	s.mu.Unlock()
	return doc, nil
}

// Write replaces the file behind name with data and drops the cached document.
func (s *Store) Write(name string, data []byte) error {
	if err := fsutil.WriteFileAtomic(s.path(name), data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	s.Invalidate(name)
	return nil
}

// Invalidate drops the cached document for name.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	delete(s.docs, name)
	s.mu.Unlock()
}

// Reload drops every cached document.
func (s *Store) Reload() {
	s.mu.Lock()
	s.docs = map[string]*Document{}
	s.mu.Unlock()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

func (s *Store) accepts(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range s.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
