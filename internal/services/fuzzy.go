package services

import (
	"math"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyScore rates how well candidate matches query on a 0-100 scale,
// case-insensitively. It is the better of the whole-string similarity and
// 0.9 times the best similarity against any query-length substring.
func FuzzyScore(query, candidate string) int {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	c := []rune(strings.ToLower(strings.TrimSpace(candidate)))
	if len(q) == 0 || len(c) == 0 {
		return 0
	}

	score := similarity(q, c)
	if len(q) < len(c) {
		best := 0.0
		for start := 0; start+len(q) <= len(c); start++ {
			if s := similarity(q, c[start:start+len(q)]); s > best {
				best = s
			}
		}
		score = math.Max(score, 0.9*best)
	}
	return int(math.Round(score))
}

func similarity(a, b []rune) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	distance := fuzzy.LevenshteinDistance(string(a), string(b))
	return 100 * (1 - float64(distance)/float64(longest))
}

type scoredMatch struct {
	value string
	score int
}

// RankMatches keeps the best limit candidates, best first, then drops
// those scoring below threshold. A limit below 1 matches nothing.
func RankMatches(query string, candidates []string, limit, threshold int) []string {
	if limit < 1 {
		return []string{}
	}
	scored := make([]scoredMatch, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scoredMatch{value: c, score: FuzzyScore(query, c)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	matches := []string{}
	for _, m := range scored {
		if m.score >= threshold {
			matches = append(matches, m.value)
		}
	}
	return matches
}
