package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument indicates the file has no YAML/JSON document.
var ErrEmptyDocument = errors.New("empty content document")

// ErrUnsupportedLayout indicates the document root is not a list of items.
var ErrUnsupportedLayout = errors.New("content root must be a list of items or a mapping with a questions list")

// LoadDocument reads and parses a content file. name is the display name used in reports.
func LoadDocument(path, name string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	doc, err := ParseDocument(name, data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// ParseDocument parses raw content bytes. JSON input is read through the YAML decoder so that
// every label keeps its line and column; tabs are mapped to spaces first because YAML does not
// allow them as indentation and they cannot appear unescaped inside JSON strings.
func ParseDocument(name string, data []byte, isJSON bool) (*Document, error) {
	source := data
	if isJSON {
		source = bytes.ReplaceAll(data, []byte{'\t'}, []byte{' '})
	}
	var root yaml.Node
	if err := yaml.Unmarshal(source, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("parse %s: %w", name, ErrEmptyDocument)
	}
	items := itemsNode(root.Content[0])
	if items == nil {
		return nil, fmt.Errorf("parse %s: %w", name, ErrUnsupportedLayout)
	}

	doc := &Document{Name: name, Raw: data, JSON: isJSON}
	parser := recordParser{file: name}
	for _, item := range items.Content {
		doc.Records = append(doc.Records, parser.item(item)...)
	}
	return doc, nil
}

// itemsNode returns the sequence of items, either the root itself or its questions/items key.
func itemsNode(node *yaml.Node) *yaml.Node {
	switch node.Kind {
	case yaml.SequenceNode:
		return node
	case yaml.MappingNode:
		for _, key := range []string{"questions", "items"} {
			if value := mappingValue(node, key); value != nil && value.Kind == yaml.SequenceNode {
				return value
			}
		}
	}
	return nil
}

type recordParser struct {
	file     string
	position int
}

func (p *recordParser) item(node *yaml.Node) []Record {
	if node.Kind == yaml.MappingNode && scalarValue(mappingValue(node, "type")) == "scenario" {
		scenario := &Scenario{
			Title:       strings.TrimSpace(scalarValue(mappingValue(node, "title"))),
			Description: strings.TrimSpace(scalarValue(mappingValue(node, "description"))),
		}
		members := mappingValue(node, "questions")
		if members == nil || members.Kind != yaml.SequenceNode {
			return nil
		}
		records := make([]Record, 0, len(members.Content))
		for _, member := range members.Content {
			record := p.question(member)
			record.Scenario = scenario
			records = append(records, record)
		}
		return records
	}
	return []Record{p.question(node)}
}

func (p *recordParser) question(node *yaml.Node) Record {
	p.position++
	record := Record{
		SourceFile: p.file,
		Ordinal:    strconv.Itoa(p.position),
	}
	if node.Kind != yaml.MappingNode {
		return record
	}
	for _, key := range []string{"number", "id"} {
		if value := mappingValue(node, key); value != nil && value.Kind == yaml.ScalarNode && strings.TrimSpace(value.Value) != "" {
			record.Ordinal = strings.TrimSpace(value.Value)
			break
		}
	}
	if prompt := firstValue(node, "question", "text"); prompt != nil && isString(prompt) {
		record.Text = strings.TrimSpace(prompt.Value)
		record.HasText = true
	}
	if options := firstValue(node, "choices", "options"); options != nil && options.Kind == yaml.SequenceNode {
		record.OptionsOK = true
		record.Options = make([]string, 0, len(options.Content))
		for _, option := range options.Content {
			record.Options = append(record.Options, optionText(option))
		}
	}
	record.SubCategory = subCategory(firstValue(node, "subCategory", "sub_category"))
	return record
}

// optionText normalizes a plain string or a {label, text} option to its text.
func optionText(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return strings.TrimSpace(node.Value)
	case yaml.MappingNode:
		return strings.TrimSpace(scalarValue(mappingValue(node, "text")))
	default:
		return ""
	}
}

func subCategory(node *yaml.Node) SubCategory {
	if node == nil || isNull(node) {
		return SubCategory{State: SubCategoryMissing}
	}
	if node.Kind != yaml.MappingNode {
		return SubCategory{State: SubCategoryIncomplete}
	}
	specific := mappingValue(node, "specific")
	if specific == nil || isNull(specific) {
		return SubCategory{State: SubCategoryIncomplete, Main: strings.TrimSpace(scalarValue(mappingValue(node, "main")))}
	}
	result := SubCategory{
		State: SubCategoryPresent,
		Main:  strings.TrimSpace(scalarValue(mappingValue(node, "main"))),
	}
	switch specific.Kind {
	case yaml.ScalarNode:
		result.Labels = []Label{labelFrom(specific)}
	case yaml.SequenceNode:
		for _, item := range specific.Content {
			if item.Kind == yaml.ScalarNode {
				result.Labels = append(result.Labels, labelFrom(item))
			}
		}
		if len(result.Labels) == 0 {
			result.State = SubCategoryIncomplete
		}
	default:
		result.State = SubCategoryIncomplete
	}
	return result
}

func labelFrom(node *yaml.Node) Label {
	return Label{
		Value:  strings.TrimSpace(node.Value),
		Raw:    node.Value,
		Line:   node.Line,
		Column: node.Column,
		Style:  node.Style,
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func firstValue(node *yaml.Node, keys ...string) *yaml.Node {
	for _, key := range keys {
		if value := mappingValue(node, key); value != nil {
			return value
		}
	}
	return nil
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode || isNull(node) {
		return ""
	}
	return node.Value
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

// isString accepts any non-null scalar; prompts such as "1984" decode as numbers in YAML but
// are still prompts.
func isString(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && !isNull(node)
}
