package config

import (
	"fmt"
	"strings"
)

// Issue is one invalid config key.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// ValidationError lists every invalid key found in a config.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid config"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid config (%d issues):", len(err.Issues))
	for _, issue := range err.Issues {
		b.WriteString("\n  ")
		b.WriteString(issue.String())
	}
	return b.String()
}

type issues []Issue

func (list *issues) add(field, format string, args ...any) {
	*list = append(*list, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (list issues) err() error {
	if len(list) == 0 {
		return nil
	}
	return &ValidationError{Issues: list}
}
