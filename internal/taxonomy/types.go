package taxonomy

import "strings"

// Kind names the structure a domain's labels use.
type Kind string

const (
	// KindGrouped maps main topics to ordered label lists.
	KindGrouped Kind = "grouped"
	// KindFlat is a set of topics, each with an optional description.
	KindFlat Kind = "flat"
)

// Topic is one entry of a flat domain.
type Topic struct {
	Topic       string `yaml:"topic"`
	Description string `yaml:"description,omitempty"`
}

// Domain is the label taxonomy of one content domain.
type Domain struct {
	Kind        Kind                `yaml:"kind"`
	Groups      map[string][]string `yaml:"groups,omitempty"`
	Topics      []Topic             `yaml:"topics,omitempty"`
	Corrections map[string]string   `yaml:"corrections,omitempty"`
}

// Prefix maps content files whose base name starts with Prefix to a domain.
// An empty Domain marks files that carry no taxonomy.
type Prefix struct {
	Prefix      string `yaml:"prefix"`
	Domain      string `yaml:"domain,omitempty"`
	DefaultMain string `yaml:"default_main,omitempty"`
}

// Taxonomy is the master label file.
type Taxonomy struct {
	Version  int                `yaml:"version"`
	Domains  map[string]*Domain `yaml:"domains"`
	Prefixes []Prefix           `yaml:"prefixes"`
}

// Contains reports whether label is valid under main. For grouped domains an empty main
// accepts a label found in any group.
func (d *Domain) Contains(main, label string) bool {
	switch d.Kind {
	case KindFlat:
		for _, topic := range d.Topics {
			if strings.TrimSpace(topic.Topic) == label {
				return true
			}
		}
		return false
	default:
		if main == "" {
			return d.AnyGroupContains(label)
		}
		return containsString(d.Groups[main], label)
	}
}

// AnyGroupContains reports whether any group of a grouped domain lists label.
func (d *Domain) AnyGroupContains(label string) bool {
	for _, labels := range d.Groups {
		if containsString(labels, label) {
			return true
		}
	}
	return false
}

// HasGroup reports whether main is a group of the domain.
func (d *Domain) HasGroup(main string) bool {
	_, ok := d.Groups[main]
	return ok
}

// Correction returns the replacement for a stale label.
func (d *Domain) Correction(label string) (string, bool) {
	replacement, ok := d.Corrections[label]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(replacement), true
}

// Add inserts label under main (ignored for flat domains) and reports whether it was new.
func (d *Domain) Add(main, label string) bool {
	if d.Contains(main, label) {
		return false
	}
	if d.Kind == KindFlat {
		d.Topics = append(d.Topics, Topic{Topic: label})
		return true
	}
	if d.Groups == nil {
		d.Groups = map[string][]string{}
	}
	d.Groups[main] = append(d.Groups[main], label)
	return true
}

// Clone returns a deep copy of the domain.
func (d *Domain) Clone() *Domain {
	clone := &Domain{Kind: d.Kind}
	if d.Groups != nil {
		clone.Groups = make(map[string][]string, len(d.Groups))
		for main, labels := range d.Groups {
			clone.Groups[main] = append([]string(nil), labels...)
		}
	}
	clone.Topics = append([]Topic(nil), d.Topics...)
	if d.Corrections != nil {
		clone.Corrections = make(map[string]string, len(d.Corrections))
		for stale, replacement := range d.Corrections {
			clone.Corrections[stale] = replacement
		}
	}
	return clone
}

// Clone returns a deep copy of the taxonomy.
func (t *Taxonomy) Clone() *Taxonomy {
	clone := &Taxonomy{
		Version:  t.Version,
		Domains:  make(map[string]*Domain, len(t.Domains)),
		Prefixes: append([]Prefix(nil), t.Prefixes...),
	}
	for name, domain := range t.Domains {
		clone.Domains[name] = domain.Clone()
	}
	return clone
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == target {
			return true
		}
	}
	return false
}
