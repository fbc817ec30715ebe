// Package pipeline wires scanning, extraction, batching and reporting
// into one extraction run.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/scrapworks/eolscout/internal/batch"
	"github.com/scrapworks/eolscout/internal/extract"
	"github.com/scrapworks/eolscout/internal/scan"
	"github.com/scrapworks/eolscout/internal/token"
)

// Mode selects one of the two extraction profiles.
type Mode string

const (
	// ModeSimple matches whole files and batches against the plain
	// ceiling.
	ModeSimple Mode = "simple"
	// ModeFull chunks oversized files before matching, reserves template
	// margin while batching, splits oversized records and writes batch
	// metadata.
	ModeFull Mode = "full"
)

// Default batch ceilings per mode.
const (
	DefaultMaxTokensFull   = 3500
	DefaultMaxTokensSimple = 3000
)

// DefaultPrefix names run output directories: <prefix>_<UTC timestamp>.
const DefaultPrefix = "date_extraction_output"

// Options configures a run. Zero numeric values select the mode defaults.
type Options struct {
	Mode         Mode
	Dir          string // corpus directory searched for Scrap_*.txt
	OutputRoot   string // parent of the run output directory
	Prefix       string
	MaxTokens    int
	Margin       int
	ChunkTokens  int
	SplitTokens  int
	ContextWords int
	Proximity    int
	Counter      token.Counter // overrides counter selection; nil loads the real one
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeFull
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.OutputRoot == "" {
		o.OutputRoot = "."
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.MaxTokens <= 0 {
		if o.Mode == ModeSimple {
			o.MaxTokens = DefaultMaxTokensSimple
		} else {
			o.MaxTokens = DefaultMaxTokensFull
		}
	}
	if o.Mode == ModeFull {
		if o.Margin <= 0 {
			o.Margin = batch.DefaultMargin
		}
		if o.ChunkTokens <= 0 {
			o.ChunkTokens = extract.DefaultChunkTokens
		}
		if o.SplitTokens <= 0 {
			o.SplitTokens = batch.DefaultSplitTokens
		}
	} else {
		o.Margin = 0
		o.ChunkTokens = 0
		o.SplitTokens = 0
	}
	return o
}

// Result is the structured outcome of a run. Success is false both when
// no scrap files were found and when no dates were found; Message tells
// the two apart.
type Result struct {
	Success        bool
	Message        string
	OutputDir      string
	PromptFiles    []string
	TotalDates     int
	FilesProcessed int
	BatchesCreated int
}

// Session owns the state of one extraction run: its identifier, output
// directory and the collections accumulated across files. A fresh
// Session per run keeps repeated runs from sharing state.
type Session struct {
	ID        string
	OutputDir string

	opts    Options
	counter token.Counter
	precise bool
	proc    *extract.Processor
	batcher *batch.Batcher
	log     *zap.Logger

	scraps      []scan.FileInfo
	records     []extract.DateRecord
	summaries   []extract.FileSummary
	promptFiles []string
}

// NewSession prepares a run: resolves option defaults, stamps the
// session id and selects the token counter.
func NewSession(opts Options, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()

	matcher, err := extract.NewMatcher(extract.DefaultPatterns(), opts.Proximity)
	if err != nil {
		return nil, err
	}

	counter := opts.Counter
	precise := true
	if counter == nil {
		counter, precise = token.New()
		if !precise {
			log.Warn("token encoding unavailable, counting approximately")
		}
	}

	id := time.Now().UTC().Format("20060102_150405")
	s := &Session{
		ID:        id,
		OutputDir: filepath.Join(opts.OutputRoot, fmt.Sprintf("%s_%s", opts.Prefix, id)),
		opts:      opts,
		counter:   counter,
		precise:   precise,
		log:       log,
	}
	s.proc = &extract.Processor{
		Matcher:      matcher,
		Counter:      counter,
		ContextWords: opts.ContextWords,
		ChunkTokens:  opts.ChunkTokens,
	}
	s.batcher = &batch.Batcher{
		MaxTokens:   opts.MaxTokens,
		Margin:      opts.Margin,
		SplitTokens: opts.SplitTokens,
		SortByFile:  opts.Mode == ModeFull,
		Counter:     counter,
	}
	return s, nil
}

// Mode reports the resolved extraction profile.
func (s *Session) Mode() Mode { return s.opts.Mode }

// Precise reports whether token counts come from a real vocabulary.
func (s *Session) Precise() bool { return s.precise }

// Records exposes the run's date records for cataloging.
func (s *Session) Records() []extract.DateRecord { return s.records }

// Summaries exposes the run's per-file summaries for cataloging.
func (s *Session) Summaries() []extract.FileSummary { return s.summaries }

// Run executes the pipeline: discover scrap files, extract records per
// file, batch, render prompts and persist summaries. Per-file failures
// are absorbed into that file's summary; artifact write failures abort
// the run.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	files, err := scan.ScrapFiles(s.opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.opts.Dir, err)
	}
	if len(files) == 0 {
		return &Result{Message: "no scrap files found"}, nil
	}
	s.scraps = files
	s.log.Info("processing scrap files",
		zap.Int("files", len(files)),
		zap.String("dir", s.opts.Dir),
		zap.String("mode", string(s.opts.Mode)))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, sum := s.proc.Process(f.Path)
		s.records = append(s.records, records...)
		s.summaries = append(s.summaries, sum)
		switch {
		case sum.Error != "":
			s.log.Warn("file skipped", zap.String("file", sum.FileName), zap.String("reason", sum.Error))
		case !sum.HasDates:
			s.log.Debug("no dates found", zap.String("file", sum.FileName))
		default:
			s.log.Debug("dates found", zap.String("file", sum.FileName), zap.Int("dates", sum.DatesFound))
		}
	}

	if len(s.records) == 0 {
		if err := s.writeComprehensiveSummary(); err != nil {
			return nil, err
		}
		return &Result{
			Message:        "no dates found",
			OutputDir:      s.OutputDir,
			FilesProcessed: len(files),
		}, nil
	}

	batches := s.batcher.Plan(s.records)
	if err := s.writeBatches(batches); err != nil {
		return nil, err
	}
	if err := s.writeRunSummary(); err != nil {
		return nil, err
	}
	if err := s.writeComprehensiveSummary(); err != nil {
		return nil, err
	}

	s.log.Info("pipeline complete",
		zap.Int("dates", len(s.records)),
		zap.Int("batches", len(batches)),
		zap.String("output", s.OutputDir))

	return &Result{
		Success:        true,
		OutputDir:      s.OutputDir,
		PromptFiles:    s.promptFiles,
		TotalDates:     len(s.records),
		FilesProcessed: len(files),
		BatchesCreated: len(batches),
	}, nil
}
