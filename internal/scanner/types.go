package scanner

// Thresholds are the inclusive lower bounds for a near-duplicate finding.
type Thresholds struct {
	Text   float64
	Option float64
}

// DefaultThresholds returns the stock text and option thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Text: 0.85, Option: 0.75}
}

// Location identifies one record.
type Location struct {
	File    string
	Ordinal string
}

// Duplicate is an exact dedup-key collision.
type Duplicate struct {
	Key       string
	FirstSeen Location
	Duplicate Location
}

// NearDuplicate is a pair of records above both similarity thresholds.
type NearDuplicate struct {
	A                Location
	B                Location
	TextSimilarity   float64
	OptionSimilarity float64
}

// LoadError is a content file that could not be read or parsed.
type LoadError struct {
	File    string
	Message string
}

// Summary counts what a scan looked at and found.
type Summary struct {
	FilesScanned      int
	RecordsScanned    int
	RecordsSkipped    int
	DuplicatesFound   int
	SimilarPairsFound int
}

// Result is the output of one scan.
type Result struct {
	Duplicates     []Duplicate
	NearDuplicates []NearDuplicate
	LoadErrors     []LoadError
	Summary        Summary
}
