// Package suggest computes "did you mean" candidates for object and
// symbol lookup misses using Jaro-Winkler similarity.
package suggest

import (
	"github.com/hbollon/go-edlib"
)

// DefaultThreshold is the minimum similarity for a candidate to be
// offered at all; below it a suggestion is more confusing than none.
const DefaultThreshold = 0.80

// Suggester matches a query against a candidate list within a
// similarity threshold.
type Suggester struct {
	threshold float64
}

// NewSuggester creates a suggester with the given threshold. Values
// outside (0, 1] fall back to DefaultThreshold.
func NewSuggester(threshold float64) *Suggester {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Suggester{threshold: threshold}
}

// Similarity returns the Jaro-Winkler similarity score between two
// strings (0.0-1.0)
func (s *Suggester) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

// Match checks if two strings are similar within the configured threshold
func (s *Suggester) Match(a, b string) bool {
	return s.Similarity(a, b) >= s.threshold
}

// Closest returns the candidate most similar to query, or ("", false)
// when no candidate clears the threshold.
func (s *Suggester) Closest(query string, candidates []string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		if score := s.Similarity(query, c); score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < s.threshold {
		return "", false
	}
	return best, true
}

// Closest is the package-level shorthand using DefaultThreshold.
func Closest(query string, candidates []string) (string, bool) {
	return NewSuggester(DefaultThreshold).Closest(query, candidates)
}
