// Package results loads per-run reports and flattens them for display
// and CSV export.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/scrapworks/eolscout/internal/pipeline"
)

// Placeholders for files that never made it into a prompt batch.
const (
	NoPromptFiles = "No prompt files"
	NotApplicable = "N/A"
)

const unknown = "Unknown"

// Row is one displayable line: a scrap file joined with one of the
// prompt files that cover it.
type Row struct {
	ScrapFileName     string
	ScrapFileLocation string
	SourceURL         string
	PromptFileName    string
	PromptFilePath    string
	BatchNumber       string
}

// Load reads a comprehensive summary report from disk.
func Load(path string) (*pipeline.ComprehensiveSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	var cs pipeline.ComprehensiveSummary
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("parse summary %s: %w", path, err)
	}
	return &cs, nil
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

// Flatten expands file details into one row per covering prompt file.
// Files with no prompt files still get a placeholder row, so a page
// that yielded nothing stays visible.
func Flatten(cs *pipeline.ComprehensiveSummary) []Row {
	var rows []Row
	for _, d := range cs.FileDetails {
		if len(d.PromptFiles) == 0 {
			rows = append(rows, Row{
				ScrapFileName:     orUnknown(d.FileName),
				ScrapFileLocation: orUnknown(d.FilePath),
				SourceURL:         orUnknown(d.SourceURL),
				PromptFileName:    NoPromptFiles,
				PromptFilePath:    NoPromptFiles,
				BatchNumber:       NotApplicable,
			})
			continue
		}
		for _, p := range d.PromptFiles {
			rows = append(rows, Row{
				ScrapFileName:     orUnknown(d.FileName),
				ScrapFileLocation: orUnknown(d.FilePath),
				SourceURL:         orUnknown(d.SourceURL),
				PromptFileName:    orUnknown(p.PromptFileName),
				PromptFilePath:    orUnknown(p.PromptFilePath),
				BatchNumber:       strconv.Itoa(p.BatchNumber),
			})
		}
	}
	return rows
}
