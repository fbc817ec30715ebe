package extract

import (
	"regexp"
	"strings"

	"github.com/scrapworks/eolscout/internal/token"
)

// DefaultChunkTokens is the per-file ceiling above which a file is split
// into sentence-aligned chunks before matching.
const DefaultChunkTokens = 2000

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text on runs of sentence terminators. The
// terminators are consumed; chunked text loses them.
func SplitSentences(text string) []string {
	var sentences []string
	for _, part := range sentenceEnd.Split(text, -1) {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// ChunkByTokens greedily packs whole sentences into chunks of at most
// limit tokens. Text already under the limit comes back as a single chunk
// with its punctuation intact. A single sentence over the limit is kept
// whole rather than split mid-sentence.
func ChunkByTokens(text string, limit int, counter token.Counter) []string {
	if counter.Count(text) <= limit {
		return []string{text}
	}

	var chunks []string
	current := ""
	for _, sentence := range SplitSentences(text) {
		test := sentence
		if current != "" {
			test = current + " " + sentence
		}
		if counter.Count(test) > limit && current != "" {
			chunks = append(chunks, current)
			current = sentence
		} else {
			current = test
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}
