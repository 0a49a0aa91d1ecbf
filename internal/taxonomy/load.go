package taxonomy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the taxonomy file at path.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	tax, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
	}
	return tax, nil
}

// Parse decodes taxonomy YAML, rejecting unknown fields, and validates the result.
func Parse(data []byte) (*Taxonomy, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var tax Taxonomy
	if err := decoder.Decode(&tax); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Issues: []Issue{{Field: "taxonomy", Message: "file is empty"}}}
		}
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	normalize(&tax)
	if err := Validate(&tax); err != nil {
		return nil, err
	}
	return &tax, nil
}

func normalize(tax *Taxonomy) {
	if tax.Domains == nil {
		tax.Domains = map[string]*Domain{}
	}
	for name, domain := range tax.Domains {
		if domain == nil {
			domain = &Domain{}
			tax.Domains[name] = domain
		}
		domain.Kind = Kind(strings.ToLower(strings.TrimSpace(string(domain.Kind))))
		if domain.Kind == "" {
			domain.Kind = KindGrouped
		}
		for main, labels := range domain.Groups {
			for i, label := range labels {
				labels[i] = strings.TrimSpace(label)
			}
			domain.Groups[main] = labels
		}
		for i := range domain.Topics {
			domain.Topics[i].Topic = strings.TrimSpace(domain.Topics[i].Topic)
		}
	}
	for i := range tax.Prefixes {
		tax.Prefixes[i].Domain = strings.TrimSpace(tax.Prefixes[i].Domain)
		tax.Prefixes[i].DefaultMain = strings.TrimSpace(tax.Prefixes[i].DefaultMain)
	}
}
