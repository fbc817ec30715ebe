// Package batch packs date records into token-bounded batches, one batch
// per generated prompt file.
package batch

import (
	"sort"

	"github.com/scrapworks/eolscout/internal/extract"
	"github.com/scrapworks/eolscout/internal/token"
)

const (
	// DefaultMargin reserves room for the prompt template wrapped around
	// the grouped contexts.
	DefaultMargin = 800
	// DefaultSplitTokens bounds the pieces an oversized record context is
	// cut into when it cannot fit a batch on its own.
	DefaultSplitTokens = 1500
)

// Batcher greedily packs records into batches whose summed context token
// cost stays within MaxTokens minus Margin. Only the context field counts
// toward the budget.
type Batcher struct {
	MaxTokens   int
	Margin      int
	SplitTokens int // 0 disables oversized-record splitting
	SortByFile  bool
	Counter     token.Counter
}

// Plan groups records into non-empty batches. With SortByFile set the
// records are first ordered by source file, keeping one file's records
// together for prompt readability; the sort is stable so within-file
// order survives. A record whose context alone exceeds the budget is
// split into sentence chunks and emitted as one single-record batch per
// chunk, the context replaced by the chunk.
func (b *Batcher) Plan(records []extract.DateRecord) [][]extract.DateRecord {
	budget := b.MaxTokens - b.Margin

	in := records
	if b.SortByFile {
		in = make([]extract.DateRecord, len(records))
		copy(in, records)
		sort.SliceStable(in, func(i, j int) bool { return in[i].SourceFile < in[j].SourceFile })
	}

	var batches [][]extract.DateRecord
	var current []extract.DateRecord
	tokens := 0

	for _, rec := range in {
		cost := b.Counter.Count(rec.Context)

		if tokens+cost > budget {
			if len(current) > 0 {
				batches = append(batches, current)
				current = nil
				tokens = 0
			}
			if cost > budget && b.SplitTokens > 0 {
				for _, chunk := range extract.ChunkByTokens(rec.Context, b.SplitTokens, b.Counter) {
					split := rec
					split.Context = chunk
					batches = append(batches, []extract.DateRecord{split})
				}
				continue
			}
		}
		current = append(current, rec)
		tokens += cost
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
