package registry

import (
	"fmt"

	"quizlint/internal/fsutil"
	"quizlint/internal/taxonomy"
)

// Load reads the taxonomy at path into a new registry.
func Load(path string) (*Registry, error) {
	if path == "" {
		return nil, fmt.Errorf("taxonomy path is required")
	}
	tax, err := taxonomy.Load(path)
	if err != nil {
		return nil, err
	}
	return New(tax), nil
}

// Save writes the taxonomy to path, collated for locale, with an atomic rename under an
// advisory lock.
func (r *Registry) Save(path, locale string) error {
	if path == "" {
		return fmt.Errorf("taxonomy path is required")
	}
	payload, err := taxonomy.Marshal(r.Snapshot(), locale)
	if err != nil {
		return err
	}
	unlock, err := fsutil.Lock(path)
	if err != nil {
		return fmt.Errorf("lock taxonomy: %w", err)
	}
	defer unlock()
	if err := fsutil.WriteFileAtomic(path, payload); err != nil {
		return fmt.Errorf("save taxonomy: %w", err)
	}
	return nil
}
