package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrapworks/eolscout/internal/token"
)

// Processor runs provenance extraction, cleaning, matching and context
// extraction over scrap files. With ChunkTokens > 0 oversized files are
// split into sentence chunks before matching, each matched independently.
type Processor struct {
	Matcher      *Matcher
	Counter      token.Counter
	ContextWords int
	ChunkTokens  int
}

// Process extracts all date records from one scrap file. Failures are
// captured on the returned summary instead of returned as an error: one
// bad file must never abort the surrounding run.
func (p *Processor) Process(path string) ([]DateRecord, FileSummary) {
	name := filepath.Base(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := FileSummary{
		FileName:    name,
		FilePath:    abs,
		SourceURL:   URLNotAvailable,
		PromptFiles: []PromptFileRef{},
	}

	if u := SourceURL(path); u != "" {
		sum.SourceURL = u
	}

	data, err := os.ReadFile(path)
	if err != nil {
		sum.SourceURL = URLError
		sum.Error = err.Error()
		return nil, sum
	}
	// Scraped pages are not reliably UTF-8; drop invalid bytes rather than
	// fail the file.
	content := strings.ToValidUTF8(string(data), "")

	chunks := []string{content}
	if p.ChunkTokens > 0 {
		chunks = ChunkByTokens(content, p.ChunkTokens, p.Counter)
	}

	var records []DateRecord
	for i, chunk := range chunks {
		chunkName := name
		if len(chunks) > 1 {
			chunkName = fmt.Sprintf("%s_chunk_%d", name, i+1)
		}
		records = append(records, p.findDates(chunk, chunkName, sum.SourceURL)...)
	}

	sum.DatesFound = len(records)
	sum.HasDates = len(records) > 0
	return records, sum
}

func (p *Processor) findDates(text, name, url string) []DateRecord {
	cleaned := Clean(text)
	radius := p.ContextWords
	if radius <= 0 {
		radius = DefaultContextWords
	}

	var records []DateRecord
	for _, m := range p.Matcher.Find(cleaned) {
		records = append(records, DateRecord{
			SourceFile: name,
			DateText:   m.Text,
			Context:    ContextWindow(cleaned, m.Start, radius),
			Offset:     m.Start,
			Pattern:    m.Pattern,
			SourceURL:  url,
		})
	}
	return records
}

// BaseName strips a chunk suffix from a record's source file name, giving
// back the on-disk file name.
func BaseName(sourceFile string) string {
	if i := strings.Index(sourceFile, "_chunk_"); i >= 0 {
		return sourceFile[:i]
	}
	return sourceFile
}
