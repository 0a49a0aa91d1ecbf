// Package bench generates synthetic quiz corpora for benchmarks and load fixtures.
package bench

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CorpusConfig controls the shape of a generated corpus.
type CorpusConfig struct {
	Name             string  `json:"name" yaml:"name"`
	Files            int     `json:"files" yaml:"files"`
	QuestionsPerFile int     `json:"questions_per_file" yaml:"questions_per_file"`
	DuplicateRate    float64 `json:"duplicate_rate" yaml:"duplicate_rate"`
	SimilarRate      float64 `json:"similar_rate" yaml:"similar_rate"`
	Prefix           string  `json:"prefix" yaml:"prefix"`
	Seed             int64   `json:"seed" yaml:"seed"`
}

// CorpusStats reports what was planted in a generated corpus.
type CorpusStats struct {
	Files      int
	Questions  int
	Duplicates int
	Similar    int
}

type question struct {
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options,flow"`
}

var vocabulary = []string{
	"คำ", "ภาษา", "ไทย", "ประโยค", "ความหมาย", "กริยา", "นาม", "เรื่อง", "อ่าน", "เขียน",
	"capital", "river", "history", "king", "province", "festival", "number", "sum", "angle", "area",
}

// Normalize fills defaults for zero values.
func (c CorpusConfig) Normalize() CorpusConfig {
	if c.Files <= 0 {
		c.Files = 10
	}
	if c.QuestionsPerFile <= 0 {
		c.QuestionsPerFile = 20
	}
	if c.Prefix == "" {
		c.Prefix = "bench-"
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// Generate writes a corpus under dir. Odd-numbered files are JSON, the rest YAML.
// A share of questions repeat an earlier question with shuffled options, and another
// share repeat it with one word swapped.
func Generate(dir string, cfg CorpusConfig) (CorpusStats, error) {
	cfg = cfg.Normalize()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CorpusStats{}, fmt.Errorf("create corpus dir: %w", err)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	var stats CorpusStats
	var seen []question
	for f := 0; f < cfg.Files; f++ {
		batch := make([]question, 0, cfg.QuestionsPerFile)
		for q := 0; q < cfg.QuestionsPerFile; q++ {
			roll := rng.Float64()
			switch {
			case len(seen) > 0 && roll < cfg.DuplicateRate:
				batch = append(batch, shuffled(rng, seen[rng.Intn(len(seen))]))
				stats.Duplicates++
			case len(seen) > 0 && roll < cfg.DuplicateRate+cfg.SimilarRate:
				batch = append(batch, reworded(rng, seen[rng.Intn(len(seen))]))
				stats.Similar++
			default:
				fresh := randomQuestion(rng)
				seen = append(seen, fresh)
				batch = append(batch, fresh)
			}
		}
		if err := writeBatch(dir, fmt.Sprintf("%s%04d", cfg.Prefix, f), f%2 == 1, batch); err != nil {
			return stats, err
		}
		stats.Files++
		stats.Questions += len(batch)
	}
	return stats, nil
}

func writeBatch(dir, base string, asJSON bool, batch []question) error {
	var (
		data []byte
		err  error
		path string
	)
	if asJSON {
		path = filepath.Join(dir, base+".json")
		data, err = json.MarshalIndent(batch, "", "  ")
	} else {
		path = filepath.Join(dir, base+".yml")
		data, err = yaml.Marshal(batch)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func randomQuestion(rng *rand.Rand) question {
	words := make([]string, 6+rng.Intn(8))
	for i := range words {
		words[i] = vocabulary[rng.Intn(len(vocabulary))]
	}
	options := make([]string, 4)
	for i := range options {
		options[i] = fmt.Sprintf("%s %d", vocabulary[rng.Intn(len(vocabulary))], rng.Intn(1000))
	}
	return question{Question: strings.Join(words, " ") + "?", Options: options}
}

func shuffled(rng *rand.Rand, q question) question {
	options := append([]string(nil), q.Options...)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return question{Question: q.Question, Options: options}
}

func reworded(rng *rand.Rand, q question) question {
	words := strings.Fields(strings.TrimSuffix(q.Question, "?"))
	words[rng.Intn(len(words))] = vocabulary[rng.Intn(len(vocabulary))]
	return question{Question: strings.Join(words, " ") + " ?", Options: append([]string(nil), q.Options...)}
}
