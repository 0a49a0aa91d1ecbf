package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default returns the compiled-in configuration rooted at root.
func Default(root string) Config {
	v := newViper()
	var cfg Config
	_ = v.Unmarshal(&cfg)
	cfg.Root = root
	resolvePaths(&cfg)
	return cfg
}

// Discover finds the nearest config file from startDir and loads it. Without a config file
// the defaults apply, rooted at startDir.
func Discover(startDir string) (Config, error) {
	path, err := FindConfigPath(startDir)
	if err == nil {
		return Load(path)
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return Config{}, err
	}
	root, err := absDir(startDir)
	if err != nil {
		return Config{}, err
	}
	return load(newViper(), root, "")
}

// Load reads, resolves, and validates the config file at path, with environment overrides.
func Load(path string) (Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve config path: %w", err)
	}
	v := newViper()
	v.SetConfigFile(abs)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return load(v, RepoRootFromConfigPath(abs), abs)
}

func load(v *viper.Viper, root, file string) (Config, error) {
	if err := godotenv.Load(filepath.Join(root, EnvFileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", EnvFileName, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Root = root
	cfg.File = file
	resolvePaths(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newViper returns a viper instance with defaults and QUIZLINT_ environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("env", "local")
	v.SetDefault("content.dir", "quizzes")
	v.SetDefault("content.extensions", []string{".yml", ".yaml", ".json"})
	v.SetDefault("taxonomy.path", filepath.Join(ConfigDirName, TaxonomyFileName))
	v.SetDefault("taxonomy.locale", "th")
	v.SetDefault("scan.text_threshold", 0.85)
	v.SetDefault("scan.option_threshold", 0.75)
	v.SetDefault("scan.include_prefixes", []string{})
	v.SetDefault("scan.strip_markup", false)
	v.SetDefault("validate.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("validate.register_new", true)
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", filepath.Join(ConfigDirName, "findings.duckdb"))
	v.SetDefault("server.addr", "127.0.0.1:8089")
	v.SetDefault("report.pdf_font", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func resolvePaths(cfg *Config) {
	cfg.Content.Dir = resolvePath(cfg.Root, cfg.Content.Dir)
	cfg.Taxonomy.Path = resolvePath(cfg.Root, cfg.Taxonomy.Path)
	cfg.Store.Path = resolvePath(cfg.Root, cfg.Store.Path)
	cfg.Report.PDFFont = resolvePath(cfg.Root, cfg.Report.PDFFont)
}
