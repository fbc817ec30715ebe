package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapworks/eolscout/internal/token"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed terminators", "One. Two! Three? Four", []string{"One", "Two", "Three", "Four"}},
		{"terminator runs", "Wait... what?! Done.", []string{"Wait", "what", "Done"}},
		{"no terminator", "a single fragment", []string{"a single fragment"}},
		{"only terminators", "...!!!", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestChunkByTokensUnderLimit(t *testing.T) {
	c := token.Heuristic{}

	text := "Short text. Punctuation stays intact!"
	got := ChunkByTokens(text, 100, c)
	assert.Equal(t, []string{text}, got)
}

func TestChunkByTokensSplits(t *testing.T) {
	c := token.Heuristic{}

	// Three 40-char sentences, 10 tokens each under the heuristic. A limit
	// of 15 fits one sentence per chunk but never two.
	s1 := strings.Repeat("a", 40)
	s2 := strings.Repeat("b", 40)
	s3 := strings.Repeat("c", 40)
	text := s1 + ". " + s2 + ". " + s3 + "."

	got := ChunkByTokens(text, 15, c)
	require.Equal(t, []string{s1, s2, s3}, got)
	for _, chunk := range got {
		assert.LessOrEqual(t, c.Count(chunk), 15)
	}
}

func TestChunkByTokensKeepsOversizedSentenceWhole(t *testing.T) {
	c := token.Heuristic{}

	big := strings.Repeat("x", 200) // 50 tokens, over any small limit
	text := "short. " + big + ". tail."

	got := ChunkByTokens(text, 10, c)
	require.Equal(t, []string{"short", big, "tail"}, got)
}

func TestChunkByTokensGreedyPacking(t *testing.T) {
	c := token.Heuristic{}

	// Four 20-char sentences, 5 tokens each. Limit 12 packs two per chunk:
	// two sentences plus the joining space cost 10 tokens, three would
	// cost over the limit.
	var parts []string
	for _, ch := range []string{"a", "b", "c", "d"} {
		parts = append(parts, strings.Repeat(ch, 20))
	}
	text := strings.Join(parts, ". ") + "."

	got := ChunkByTokens(text, 12, c)
	require.Len(t, got, 2)
	assert.Equal(t, parts[0]+" "+parts[1], got[0])
	assert.Equal(t, parts[2]+" "+parts[3], got[1])
}
