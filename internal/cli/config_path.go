package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quizlint/internal/config"
)

// loadConfig reads the config at configPath, or discovers one from the working directory.
func loadConfig(configPath string) (config.Config, error) {
	if strings.TrimSpace(configPath) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		return config.Discover(wd)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve config path: %w", err)
	}
	return config.Load(abs)
}
