// Package fuzzy finds the closest known name to a mistyped one.
// Used by argtree for "did you mean" hints on unknown flags and
// subcommands.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
)

// Matcher ranks candidates by edit distance to an input.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher accepting candidates within maxDistance edits.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // Don't suggest for single letters
	}
}

// Match is a candidate within reach of the input.
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// FindBest returns the best candidate, or "" when none is close enough.
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within reach, best first. Case and
// the '-'/'_' separators are ignored, so "no-chek" reaches "no_check".
// Exact matches are not suggestions and are skipped.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}
	in := fold(input)

	var matches []Match
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		c := fold(candidate)
		if c == in {
			continue
		}
		d := m.distance(in, c)
		if d > m.maxDistance {
			continue
		}
		matches = append(matches, Match{Value: candidate, Distance: d, Score: score(in, c, d)})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Distance, b.Distance)
	})
	return matches
}

func fold(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "-", "_")
}

// score weighs edit distance with shared prefix and length similarity.
func score(a, b string, distance int) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}

	s := 1.0 - float64(distance)/float64(longest)

	if p := commonPrefix(a, b); p > 0 {
		s += float64(p) / float64(min(len(a), len(b))) * 0.3
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	s += (1.0 - float64(diff)/float64(longest)) * 0.2

	return min(s, 1.0)
}

// distance is the Levenshtein distance of a and b, cut short at
// maxDistance+1 once the result cannot stay within reach.
func (m *Matcher) distance(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(b)-len(a) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// FindBestFlag finds the best matching flag name
func FindBestFlag(input string, flags []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, flags)
}

// FindBestCommand finds the best matching command name
func FindBestCommand(input string, commands []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, commands)
}

// FindSuggestions returns up to limit candidates, best first.
func FindSuggestions(input string, candidates []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).FindMatches(input, candidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Value
	}
	return out
}
