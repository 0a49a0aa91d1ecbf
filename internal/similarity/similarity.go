// Package similarity implements the string and set measures used to flag
// near-duplicate questions.
package similarity

// Distance returns the Levenshtein edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) < len(br) {
		ar, br = br, ar
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ar {
		curr[0] = i + 1
		for j, cb := range br {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(
				curr[j]+1,    // insertion
				prev[j+1]+1,  // deletion
				prev[j]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

// Text returns 1 - Distance(a, b)/max(len(a), len(b)). Two empty strings are identical.
func Text(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(maxLen)
}

// Set returns the Jaccard index |A ∩ B| / |A ∪ B| over the distinct values of a and b.
// Two empty sets are identical.
func Set(a, b []string) float64 {
	left := toSet(a)
	right := toSet(b)
	if len(left) == 0 && len(right) == 0 {
		return 1
	}
	shared := 0
	for value := range left {
		if _, ok := right[value]; ok {
			shared++
		}
	}
	union := len(left) + len(right) - shared
	return float64(shared) / float64(union)
}

// AtLeast reports whether value reaches threshold, absorbing float rounding so that
// ratios landing exactly on the threshold count as reaching it.
func AtLeast(value, threshold float64) bool {
	const epsilon = 1e-9
	return value+epsilon >= threshold
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
