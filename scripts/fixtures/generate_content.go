package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quizlint/internal/bench"
)

func main() {
	configPath := flag.String("config", "", "path to corpus config (YAML or JSON)")
	outDir := flag.String("out", "", "output content directory")
	flag.Parse()
	if *configPath == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_content --config <path> --out <dir>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	stats, err := bench.Generate(*outDir, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d files (%d questions, %d planted duplicates, %d planted near duplicates) to %s\n",
		stats.Files, stats.Questions, stats.Duplicates, stats.Similar, *outDir)
}

func loadConfig(path string) (bench.CorpusConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bench.CorpusConfig{}, err
	}
	var cfg bench.CorpusConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return bench.CorpusConfig{}, err
	}
	return cfg, nil
}
