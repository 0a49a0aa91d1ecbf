package taxonomy

import (
	"bytes"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Marshal renders the taxonomy with label lists and topics de-duplicated and sorted by the
// collation rules of locale.
func Marshal(tax *Taxonomy, locale string) ([]byte, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("collation locale %q: %w", locale, err)
	}
	canonical := Canonical(tax, collate.New(tag))
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(canonical); err != nil {
		return nil, fmt.Errorf("encode taxonomy: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode taxonomy: %w", err)
	}
	return buf.Bytes(), nil
}

// Canonical returns a copy of tax with every label list and topic list de-duplicated and
// collated. Prefix order is kept.
func Canonical(tax *Taxonomy, collator *collate.Collator) *Taxonomy {
	canonical := tax.Clone()
	for _, domain := range canonical.Domains {
		for main, labels := range domain.Groups {
			domain.Groups[main] = sortedUnique(labels, collator)
		}
		domain.Topics = sortedTopics(domain.Topics, collator)
	}
	return canonical
}

func sortedUnique(labels []string, collator *collate.Collator) []string {
	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		unique = append(unique, label)
	}
	collator.SortStrings(unique)
	return unique
}

// sortedTopics keeps the first description seen for a topic, or the first non-empty one.
func sortedTopics(topics []Topic, collator *collate.Collator) []Topic {
	index := make(map[string]int, len(topics))
	unique := make([]Topic, 0, len(topics))
	for _, topic := range topics {
		if at, ok := index[topic.Topic]; ok {
			if unique[at].Description == "" {
				unique[at].Description = topic.Description
			}
			continue
		}
		index[topic.Topic] = len(unique)
		unique = append(unique, topic)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return collator.CompareString(unique[i].Topic, unique[j].Topic) < 0
	})
	return unique
}
