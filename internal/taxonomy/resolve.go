package taxonomy

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrUnknownDomain indicates a domain name that the taxonomy does not declare.
var ErrUnknownDomain = errors.New("unknown taxonomy domain")

// Resolution is the domain information resolved for one content file.
type Resolution struct {
	Prefix      string
	DomainName  string
	Kind        Kind
	DefaultMain string
}

// HasTaxonomy reports whether the resolved domain carries labels to validate against.
func (r Resolution) HasTaxonomy() bool {
	return r.Kind != ""
}

// SkipReason explains why a file without taxonomy is skipped.
func (r Resolution) SkipReason() string {
	switch {
	case r.HasTaxonomy():
		return ""
	case r.Prefix == "":
		return "no prefix matches file name"
	default:
		return fmt.Sprintf("prefix %q declares no taxonomy domain", r.Prefix)
	}
}

// Resolve maps a content file to its domain by the longest prefix matching its base name.
func (t *Taxonomy) Resolve(name string) (Resolution, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	var best *Prefix
	for i := range t.Prefixes {
		candidate := &t.Prefixes[i]
		if !strings.HasPrefix(base, candidate.Prefix) {
			continue
		}
		if best == nil || len(candidate.Prefix) > len(best.Prefix) {
			best = candidate
		}
	}
	if best == nil {
		return Resolution{}, nil
	}
	resolution := Resolution{
		Prefix:      best.Prefix,
		DomainName:  best.Domain,
		DefaultMain: best.DefaultMain,
	}
	if best.Domain == "" {
		return resolution, nil
	}
	domain, ok := t.Domains[best.Domain]
	if !ok {
		return resolution, fmt.Errorf("%w: %q", ErrUnknownDomain, best.Domain)
	}
	resolution.Kind = domain.Kind
	return resolution, nil
}
