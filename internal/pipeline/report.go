package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scrapworks/eolscout/internal/extract"
	"github.com/scrapworks/eolscout/internal/prompt"
)

// ComprehensiveName is the per-run report consumed by the results
// viewer, written as comprehensive_summary_<session id>.json.
const ComprehensiveName = "comprehensive_summary"

// ComprehensiveSummary is the run report with per-file detail. The
// date total key depends on the mode, so both variants are pointers
// and exactly one is set.
type ComprehensiveSummary struct {
	ProcessingTimestampUTC string                `json:"processing_timestamp_utc"`
	SessionID              string                `json:"extraction_session_id"`
	OutputDirectory        string                `json:"output_directory"`
	TotalFilesProcessed    int                   `json:"total_files_processed"`
	FilesWithDates         int                   `json:"files_with_dates"`
	FilesWithoutDates      int                   `json:"files_without_dates"`
	TotalDatesFound        *int                  `json:"total_dates_found,omitempty"`
	TotalDateInstances     *int                  `json:"total_date_instances_found,omitempty"`
	PromptBatchesCreated   *int                  `json:"prompt_batches_created,omitempty"`
	FileDetails            []extract.FileSummary `json:"file_details"`
}

type simpleRunSummary struct {
	Timestamp         string   `json:"timestamp"`
	FilesProcessed    []string `json:"files_processed"`
	TotalDatesFound   int      `json:"total_dates_found"`
	FilesWithDates    int      `json:"files_with_dates"`
	FilesWithoutDates []string `json:"files_without_dates"`
	PromptBatches     int      `json:"prompt_batches"`
	PromptFiles       []string `json:"prompt_files"`
}

type fullRunSummary struct {
	ProcessingTimestamp string   `json:"processing_timestamp"`
	TotalFilesProcessed int      `json:"total_files_processed"`
	FilesWithDates      int      `json:"files_with_dates"`
	FilesWithoutDates   int      `json:"files_without_dates"`
	TotalDateInstances  int      `json:"total_date_instances_found"`
	PromptBatches       int      `json:"prompt_batches_created"`
	FilesProcessed      []string `json:"files_processed"`
	NoDateFiles         []string `json:"files_without_dates_list"`
	OutputDirectory     string   `json:"output_directory"`
	PromptFiles         []string `json:"prompt_files_generated"`
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ensureOutputDir creates the run directory. Every artifact writer calls
// it first, so the zero-dates path still gets its report on disk.
func (s *Session) ensureOutputDir() error {
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// writeBatches renders one prompt file per batch and records which
// prompt files cover which source files. Full mode also dumps the raw
// batch records as metadata next to each prompt.
func (s *Session) writeBatches(batches [][]extract.DateRecord) error {
	if err := s.ensureOutputDir(); err != nil {
		return err
	}

	for i, b := range batches {
		var text string
		if s.opts.Mode == ModeSimple {
			text = prompt.RenderSimple(b)
		} else {
			text = prompt.Render(b)
		}

		name := fmt.Sprintf("prompt_%s_batch_%d.txt", s.ID, i+1)
		path := filepath.Join(s.OutputDir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write prompt %s: %w", name, err)
		}
		s.promptFiles = append(s.promptFiles, name)
		s.attachPromptRefs(b, name, path, i+1)

		if s.opts.Mode == ModeFull {
			metaName := fmt.Sprintf("batch_%d_metadata.json", i+1)
			if err := writeJSON(filepath.Join(s.OutputDir, metaName), b); err != nil {
				return err
			}
		}
	}
	return nil
}

// attachPromptRefs appends a prompt file reference to the summary of
// every source file with a record in the batch. Chunk suffixes are
// stripped first so references land on the on-disk file.
func (s *Session) attachPromptRefs(b []extract.DateRecord, name, path string, batchNumber int) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	inBatch := make(map[string]bool)
	for _, r := range b {
		inBatch[extract.BaseName(r.SourceFile)] = true
	}
	for i := range s.summaries {
		if inBatch[s.summaries[i].FileName] {
			s.summaries[i].PromptFiles = append(s.summaries[i].PromptFiles, extract.PromptFileRef{
				PromptFileName: name,
				PromptFilePath: abs,
				BatchNumber:    batchNumber,
			})
		}
	}
}

func (s *Session) countWithDates() int {
	n := 0
	for _, sum := range s.summaries {
		if sum.HasDates {
			n++
		}
	}
	return n
}

// writeRunSummary persists the flat run report: summary.json in simple
// mode, extraction_summary.json in full mode.
func (s *Session) writeRunSummary() error {
	names := make([]string, 0, len(s.scraps))
	for _, f := range s.scraps {
		names = append(names, f.Name)
	}
	withDates := s.countWithDates()

	if s.opts.Mode == ModeSimple {
		noDates := []string{}
		for _, sum := range s.summaries {
			if !sum.HasDates {
				noDates = append(noDates, sum.FileName)
			}
		}
		return writeJSON(filepath.Join(s.OutputDir, "summary.json"), simpleRunSummary{
			Timestamp:         s.ID,
			FilesProcessed:    names,
			TotalDatesFound:   len(s.records),
			FilesWithDates:    withDates,
			FilesWithoutDates: noDates,
			PromptBatches:     len(s.promptFiles),
			PromptFiles:       s.promptFiles,
		})
	}

	noDatePaths := []string{}
	for _, sum := range s.summaries {
		if !sum.HasDates {
			noDatePaths = append(noDatePaths, sum.FilePath)
		}
	}
	return writeJSON(filepath.Join(s.OutputDir, "extraction_summary.json"), fullRunSummary{
		ProcessingTimestamp: s.ID,
		TotalFilesProcessed: len(s.summaries),
		FilesWithDates:      withDates,
		FilesWithoutDates:   len(s.summaries) - withDates,
		TotalDateInstances:  len(s.records),
		PromptBatches:       len(s.promptFiles),
		FilesProcessed:      names,
		NoDateFiles:         noDatePaths,
		OutputDirectory:     s.OutputDir,
		PromptFiles:         s.promptFiles,
	})
}

// writeComprehensiveSummary persists the per-file report. It runs on
// every path, including runs that found no dates at all.
func (s *Session) writeComprehensiveSummary() error {
	if err := s.ensureOutputDir(); err != nil {
		return err
	}

	abs, err := filepath.Abs(s.OutputDir)
	if err != nil {
		abs = s.OutputDir
	}
	withDates := s.countWithDates()
	total := len(s.records)
	cs := ComprehensiveSummary{
		ProcessingTimestampUTC: time.Now().UTC().Format(time.RFC3339),
		SessionID:              s.ID,
		OutputDirectory:        abs,
		TotalFilesProcessed:    len(s.summaries),
		FilesWithDates:         withDates,
		FilesWithoutDates:      len(s.summaries) - withDates,
		FileDetails:            s.summaries,
	}
	if s.opts.Mode == ModeSimple {
		cs.TotalDatesFound = &total
	} else {
		batches := len(s.promptFiles)
		cs.TotalDateInstances = &total
		cs.PromptBatchesCreated = &batches
	}

	name := fmt.Sprintf("%s_%s.json", ComprehensiveName, s.ID)
	return writeJSON(filepath.Join(s.OutputDir, name), cs)
}
