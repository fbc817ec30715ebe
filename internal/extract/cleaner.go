package extract

import (
	"regexp"
	"strings"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)
	junkPattern  = regexp.MustCompile(`[^\p{L}\p{N}_\s\-/.:,;()]+`)
)

// Clean normalizes raw scraped text for matching. Markup tags and any rune
// outside the small punctuation allow-list become spaces, whitespace runs
// collapse to single spaces, and the result is trimmed. Cleaning an
// already-clean string changes nothing.
func Clean(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	text = junkPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
