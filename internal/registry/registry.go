package registry

import (
	"errors"
	"fmt"
	"sync"

	"quizlint/internal/taxonomy"
)

// ErrNoMain indicates a grouped-domain label with no resolvable main topic.
var ErrNoMain = errors.New("no main topic to register under")

// ErrUnknownMain indicates a main topic that is not a group of the domain.
var ErrUnknownMain = errors.New("main topic is not a group of the domain")

// Addition is a label added to the taxonomy during a run.
type Addition struct {
	Domain string
	Main   string
	Label  string
}

// Registry guards the in-memory taxonomy while files are validated concurrently.
type Registry struct {
	mu        sync.RWMutex
	tax       *taxonomy.Taxonomy
	additions []Addition
}

// New wraps tax. The registry owns tax from then on.
func New(tax *taxonomy.Taxonomy) *Registry {
	return &Registry{tax: tax}
}

// Resolve maps a content file to its domain.
func (r *Registry) Resolve(name string) (taxonomy.Resolution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tax.Resolve(name)
}

// Contains reports whether label is valid in domain under main.
func (r *Registry) Contains(domain, main, label string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, err := r.domain(domain)
	if err != nil {
		return false, err
	}
	return d.Contains(main, label), nil
}

// Correction returns the configured replacement for a stale label in domain.
func (r *Registry) Correction(domain, label string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, err := r.domain(domain)
	if err != nil {
		return "", false, err
	}
	replacement, ok := d.Correction(label)
	return replacement, ok, nil
}

// Register adds label to domain, under main for grouped domains. It reports whether this
// call added the label; a label already present yields false without error.
func (r *Registry) Register(domain, main, label string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.domain(domain)
	if err != nil {
		return false, err
	}
	if d.Kind == taxonomy.KindGrouped {
		if main == "" {
			return false, ErrNoMain
		}
		if !d.HasGroup(main) {
			return false, fmt.Errorf("%w: %q", ErrUnknownMain, main)
		}
	} else {
		main = ""
	}
	if !d.Add(main, label) {
		return false, nil
	}
	r.additions = append(r.additions, Addition{Domain: domain, Main: main, Label: label})
	return true, nil
}

// Additions returns labels registered so far in registration order.
func (r *Registry) Additions() []Addition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Addition(nil), r.additions...)
}

// Modified reports whether any label was registered.
func (r *Registry) Modified() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.additions) > 0
}

// Snapshot returns a deep copy of the current taxonomy.
func (r *Registry) Snapshot() *taxonomy.Taxonomy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tax.Clone()
}

func (r *Registry) domain(name string) (*taxonomy.Domain, error) {
	d, ok := r.tax.Domains[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", taxonomy.ErrUnknownDomain, name)
	}
	return d, nil
}
