package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// Issue captures a problem with one taxonomy field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates taxonomy issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "taxonomy validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks domain kinds, prefix references and default mains.
func Validate(tax *Taxonomy) error {
	collector := &issueCollector{}
	names := make([]string, 0, len(tax.Domains))
	for name := range tax.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		validateDomain(name, tax.Domains[name], collector.add)
	}

	seen := map[string]int{}
	for i, prefix := range tax.Prefixes {
		field := fmt.Sprintf("prefixes[%d]", i)
		if strings.TrimSpace(prefix.Prefix) == "" {
			collector.add(field+".prefix", "is required")
			continue
		}
		if first, ok := seen[prefix.Prefix]; ok {
			collector.add(field+".prefix", fmt.Sprintf("duplicates prefixes[%d]", first))
		} else {
			seen[prefix.Prefix] = i
		}
		if prefix.Domain == "" {
			if prefix.DefaultMain != "" {
				collector.add(field+".default_main", "requires a domain")
			}
			continue
		}
		domain, ok := tax.Domains[prefix.Domain]
		if !ok {
			collector.add(field+".domain", fmt.Sprintf("unknown domain %q", prefix.Domain))
			continue
		}
		if prefix.DefaultMain == "" {
			continue
		}
		if domain.Kind != KindGrouped {
			collector.add(field+".default_main", "only applies to grouped domains")
		} else if !domain.HasGroup(prefix.DefaultMain) {
			collector.add(field+".default_main", fmt.Sprintf("unknown group %q in domain %q", prefix.DefaultMain, prefix.Domain))
		}
	}
	return collector.result()
}

func validateDomain(name string, domain *Domain, add func(field, message string)) {
	field := "domains." + name
	switch domain.Kind {
	case KindGrouped:
		if len(domain.Topics) > 0 {
			add(field+".topics", "not allowed for grouped domains")
		}
		for main := range domain.Groups {
			if strings.TrimSpace(main) == "" {
				add(field+".groups", "group name must not be empty")
			}
		}
	case KindFlat:
		if len(domain.Groups) > 0 {
			add(field+".groups", "not allowed for flat domains")
		}
		for i, topic := range domain.Topics {
			if topic.Topic == "" {
				add(fmt.Sprintf("%s.topics[%d].topic", field, i), "is required")
			}
		}
	default:
		add(field+".kind", fmt.Sprintf("must be %q or %q", KindGrouped, KindFlat))
	}
	for stale, replacement := range domain.Corrections {
		if strings.TrimSpace(stale) == "" || strings.TrimSpace(replacement) == "" {
			add(field+".corrections", "entries need both a stale and a replacement label")
		}
	}
}
