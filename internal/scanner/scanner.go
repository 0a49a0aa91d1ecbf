package scanner

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"quizlint/internal/content"
	"quizlint/internal/similarity"
)

// Options configures a scan.
type Options struct {
	Thresholds      Thresholds
	IncludePrefixes []string
	StripMarkup     bool
	Logger          *zap.Logger
}

type candidate struct {
	location Location
	text     string
	options  []string
}

// Scan reports exact and near duplicates across every content file in store.
// Files are visited in sorted name order and records in file order; content is never modified.
func Scan(ctx context.Context, store *content.Store, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	files, err := store.Files()
	if err != nil {
		return Result{}, err
	}

	var result Result
	firstSeen := map[string]Location{}
	var survivors []candidate
	for _, name := range files {
		if !included(name, opts.IncludePrefixes) {
			continue
		}
		doc, err := store.Load(name)
		if err != nil {
			logger.Warn("skipping content file", zap.String("file", name), zap.Error(err))
			result.LoadErrors = append(result.LoadErrors, LoadError{File: name, Message: err.Error()})
			continue
		}
		result.Summary.FilesScanned++
		for _, record := range doc.Records {
			if !record.Comparable() {
				result.Summary.RecordsSkipped++
				continue
			}
			result.Summary.RecordsScanned++
			item := normalize(record, opts.StripMarkup)
			key := content.DedupKey(item.text, item.options)
			if first, ok := firstSeen[key]; ok {
				result.Duplicates = append(result.Duplicates, Duplicate{Key: key, FirstSeen: first, Duplicate: item.location})
				continue
			}
			firstSeen[key] = item.location
			survivors = append(survivors, item)
		}
	}
	result.Summary.DuplicatesFound = len(result.Duplicates)
	logger.Debug("exact pass done",
		zap.Int("records", result.Summary.RecordsScanned),
		zap.Int("duplicates", result.Summary.DuplicatesFound),
		zap.Int("survivors", len(survivors)))

	for i := range survivors {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		for j := i + 1; j < len(survivors); j++ {
			if pair, ok := compare(survivors[i], survivors[j], opts.Thresholds); ok {
				result.NearDuplicates = append(result.NearDuplicates, pair)
			}
		}
	}
	result.Summary.SimilarPairsFound = len(result.NearDuplicates)
	return result, nil
}

func compare(a, b candidate, thresholds Thresholds) (NearDuplicate, bool) {
	textScore := similarity.Text(a.text, b.text)
	if !similarity.AtLeast(textScore, thresholds.Text) {
		return NearDuplicate{}, false
	}
	optionScore := similarity.Set(a.options, b.options)
	if !similarity.AtLeast(optionScore, thresholds.Option) {
		return NearDuplicate{}, false
	}
	return NearDuplicate{
		A:                a.location,
		B:                b.location,
		TextSimilarity:   textScore,
		OptionSimilarity: optionScore,
	}, true
}

func normalize(record content.Record, stripMarkup bool) candidate {
	item := candidate{
		location: Location{File: record.SourceFile, Ordinal: record.Ordinal},
		text:     record.Text,
		options:  record.Options,
	}
	if !stripMarkup {
		return item
	}
	item.text = content.StripMarkup(item.text)
	item.options = make([]string, len(record.Options))
	for i, option := range record.Options {
		item.options[i] = content.StripMarkup(option)
	}
	return item
}

func included(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	base := path.Base(name)
	for _, prefix := range prefixes {
		if strings.HasPrefix(base, prefix) {
			return true
		}
	}
	return false
}
