package extract

import (
	"fmt"
	"regexp"
)

// DefaultProximity is the minimum distance in characters between two
// accepted match starts within one text. Overlapping hits from different
// patterns at nearly the same position describe the same date.
const DefaultProximity = 10

type compiledPattern struct {
	Pattern
	re *regexp.Regexp
}

// Match is a single accepted pattern hit in cleaned text.
type Match struct {
	Pattern string
	Text    string
	Start   int
}

// Matcher finds date-like spans with greedy first-come-first-served
// dedup: once a position is claimed, any later hit starting within the
// proximity window is dropped, so pattern order decides which form wins.
type Matcher struct {
	patterns  []compiledPattern
	proximity int
}

// NewMatcher compiles the pattern list. Matching is case-insensitive and
// runs in the given order. A proximity of zero or less selects the
// default.
func NewMatcher(patterns []Pattern, proximity int) (*Matcher, error) {
	if proximity <= 0 {
		proximity = DefaultProximity
	}
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p.Regex)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %s: %w", p.Name, err)
		}
		compiled = append(compiled, compiledPattern{Pattern: p, re: re})
	}
	return &Matcher{patterns: compiled, proximity: proximity}, nil
}

// Find returns every accepted match in text, grouped by pattern in list
// order.
func (m *Matcher) Find(text string) []Match {
	var matches []Match
	var claimed []int

	for _, p := range m.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if m.nearClaimed(claimed, loc[0]) {
				continue
			}
			claimed = append(claimed, loc[0])
			matches = append(matches, Match{
				Pattern: p.Name,
				Text:    text[loc[0]:loc[1]],
				Start:   loc[0],
			})
		}
	}
	return matches
}

func (m *Matcher) nearClaimed(claimed []int, start int) bool {
	for _, pos := range claimed {
		d := start - pos
		if d < 0 {
			d = -d
		}
		if d < m.proximity {
			return true
		}
	}
	return false
}
