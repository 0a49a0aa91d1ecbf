package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks a resolved config and reports every invalid key at once.
func Validate(cfg *Config) error {
	var found issues

	if strings.TrimSpace(cfg.Content.Dir) == "" {
		found.add("content.dir", "is required")
	}
	if len(cfg.Content.Extensions) == 0 {
		found.add("content.extensions", "at least one extension is required")
	}
	for i, ext := range cfg.Content.Extensions {
		if strings.TrimSpace(strings.TrimPrefix(ext, ".")) == "" {
			found.add(fmt.Sprintf("content.extensions[%d]", i), "must not be empty")
		}
	}
	if strings.TrimSpace(cfg.Taxonomy.Path) == "" {
		found.add("taxonomy.path", "is required")
	}
	if _, err := language.Parse(cfg.Taxonomy.Locale); err != nil {
		found.add("taxonomy.locale", "invalid locale %q", cfg.Taxonomy.Locale)
	}
	thresholds := []struct {
		field string
		value float64
	}{
		{"scan.text_threshold", cfg.Scan.TextThreshold},
		{"scan.option_threshold", cfg.Scan.OptionThreshold},
	}
	for _, threshold := range thresholds {
		if threshold.value < 0 || threshold.value > 1 {
			found.add(threshold.field, "must be within [0, 1], got %g", threshold.value)
		}
	}
	if cfg.Validate.Workers < 1 {
		found.add("validate.workers", "must be >= 1")
	}
	if cfg.Store.Enabled && strings.TrimSpace(cfg.Store.Path) == "" {
		found.add("store.path", "is required when the store is enabled")
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		found.add("server.addr", "is required")
	}
	return found.err()
}
