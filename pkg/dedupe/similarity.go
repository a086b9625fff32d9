package dedupe

import (
	"strings"
)

// Ratio returns a similarity score in [0,1] between two strings, based on
// the length of their longest common subsequence relative to their combined
// length. Identical strings score 1.0; strings with nothing in common score
// 0.0.
func Ratio(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0.0
		}
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)

	// Longest common subsequence, single-row DP.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return (2.0 * float64(lcs)) / float64(len(ra)+len(rb))
}

// TokenSetSimilarity returns the Jaccard similarity of the word sets of two
// names. Word order and duplicate words do not affect the score, which makes
// it robust against reordered names like "Labs Acme" vs "Acme Labs".
func TokenSetSimilarity(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range ta {
		if tb[tok] {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return float64(intersection) / float64(union)
}

// NameSimilarity is the score used for fuzzy name matching: the better of
// the character-level ratio and the token-set similarity.
func NameSimilarity(a, b string) float64 {
	r := Ratio(a, b)
	if t := TokenSetSimilarity(a, b); t > r {
		return t
	}
	return r
}

// tokenSet splits a lower-cased name into its word set.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		set[tok] = true
	}
	return set
}
