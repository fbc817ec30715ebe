package scrape

import (
	"regexp"
	"strings"
)

// Elements whose inner text is chrome or code, never page content.
// Dropped wholesale before tag stripping.
var dropElements = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b.*?</script\s*>`),
	regexp.MustCompile(`(?is)<style\b.*?</style\s*>`),
	regexp.MustCompile(`(?is)<nav\b.*?</nav\s*>`),
	regexp.MustCompile(`(?is)<footer\b.*?</footer\s*>`),
	regexp.MustCompile(`(?is)<aside\b.*?</aside\s*>`),
}

var (
	pageTagPattern   = regexp.MustCompile(`<[^>]+>`)
	pageSpacePattern = regexp.MustCompile(`\s+`)
	pageJunkPattern  = regexp.MustCompile(`[^\p{L}\p{N}_\s\-./:]+`)
	nonWordPattern   = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// PageText reduces an HTML page to plain text: script, style and
// navigation elements go away wholesale, remaining tags collapse to
// spaces, and characters outside a small punctuation allow-list are
// dropped.
func PageText(html string) string {
	text := html
	for _, p := range dropElements {
		text = p.ReplaceAllString(text, " ")
	}
	text = pageTagPattern.ReplaceAllString(text, " ")
	text = pageSpacePattern.ReplaceAllString(text, " ")
	text = pageJunkPattern.ReplaceAllString(text, " ")
	text = pageSpacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// normalizeToken lowers and strips everything non-word, so "IBM x3650
// M4" can be found as "ibmx3650m4" regardless of page punctuation.
func normalizeToken(s string) string {
	return nonWordPattern.ReplaceAllString(strings.ToLower(s), "")
}
