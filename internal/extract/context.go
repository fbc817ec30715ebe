package extract

import "strings"

const (
	// DefaultContextWords is the word radius around a match kept for
	// review.
	DefaultContextWords = 100

	contextFallbackChars = 500
)

// ContextWindow returns up to radius words on either side of the word at
// the given character offset. The offset is resolved by walking words and
// counting length plus one separator each, which matches cleaned text
// exactly. An offset past the walked length falls back to the first 500
// characters.
func ContextWindow(text string, offset, radius int) string {
	words := strings.Fields(text)
	pos := 0
	for i, w := range words {
		if pos >= offset {
			lo := i - radius
			if lo < 0 {
				lo = 0
			}
			hi := i + radius
			if hi > len(words) {
				hi = len(words)
			}
			return strings.Join(words[lo:hi], " ")
		}
		pos += len(w) + 1
	}
	if len(text) > contextFallbackChars {
		return text[:contextFallbackChars]
	}
	return text
}
