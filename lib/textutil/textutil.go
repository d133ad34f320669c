package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases `name` and removes all whitespace so that
// "Mc Kean" and "McKean" compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// ClosestMatch returns the candidate most similar to `target`. An exact match
// after NormalizeName always wins, otherwise the Jaro-Winkler similarity of the
// best candidate must reach `threshold`.
func ClosestMatch(target string, candidates []string, threshold float64) (string, bool) {
	normalized := NormalizeName(target)
	for _, c := range candidates {
		if NormalizeName(c) == normalized {
			return c, true
		}
	}

	var best string
	var bestSimilarity float64
	for _, c := range candidates {
		sim := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if sim > bestSimilarity {
			bestSimilarity = sim
			best = c
		}
	}
	if best == "" || bestSimilarity < threshold {
		return "", false
	}
	return best, true
}
