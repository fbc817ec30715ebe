package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scrapworks/eolscout/internal/catalog"
	"github.com/scrapworks/eolscout/internal/config"
	"github.com/scrapworks/eolscout/internal/logging"
	"github.com/scrapworks/eolscout/internal/pipeline"
)

func extractCmd() *cobra.Command {
	var mode, out string
	var maxTokens int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "extract [dir]",
		Short: "Extract lifecycle dates from scrap files and build prompt batches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			defer log.Sync()

			dir := cfg.CorpusDir
			if len(args) == 1 {
				dir = args[0]
			}
			outputRoot := cfg.OutputRoot
			if out != "" {
				outputRoot = out
			}
			if mode == "" {
				mode = cfg.Extract.Mode
			}
			if maxTokens == 0 {
				maxTokens = cfg.Extract.MaxTokens
			}

			sess, err := pipeline.NewSession(pipeline.Options{
				Mode:         pipeline.Mode(mode),
				Dir:          dir,
				OutputRoot:   outputRoot,
				Prefix:       cfg.Extract.Prefix,
				MaxTokens:    maxTokens,
				Margin:       cfg.Extract.Margin,
				ChunkTokens:  cfg.Extract.ChunkTokens,
				SplitTokens:  cfg.Extract.SplitTokens,
				ContextWords: cfg.Extract.ContextWords,
				Proximity:    cfg.Extract.Proximity,
			}, log)
			if err != nil {
				return fmt.Errorf("set up session: %w", err)
			}

			res, err := sess.Run(cmd.Context())
			if err != nil {
				return err
			}

			if res.FilesProcessed > 0 {
				recordRun(cfg.DBPath, sess, res, log)
			}

			if !res.Success {
				fmt.Println(res.Message)
				return nil
			}

			fmt.Printf("Processed %d files, found %d dates, wrote %d batches\n",
				res.FilesProcessed, res.TotalDates, res.BatchesCreated)
			fmt.Printf("Output: %s\n", res.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Extraction mode (full/simple)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Max tokens per batch (0 = mode default)")
	cmd.Flags().StringVar(&out, "out", "", "Output root directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}

// recordRun stores the finished run in the catalog so results and
// search can find it. Catalog failures never fail the extraction
// itself.
func recordRun(dbPath string, sess *pipeline.Session, res *pipeline.Result, log *zap.Logger) {
	db, err := catalog.OpenDB(dbPath)
	if err != nil {
		log.Warn("catalog unavailable", zap.String("path", dbPath), zap.Error(err))
		return
	}
	defer db.Close()

	withDates := 0
	for _, s := range sess.Summaries() {
		if s.HasDates {
			withDates++
		}
	}

	run := catalog.RunRow{
		SessionID:      sess.ID,
		Mode:           string(sess.Mode()),
		OutputDir:      res.OutputDir,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		TotalFiles:     res.FilesProcessed,
		FilesWithDates: withDates,
		TotalDates:     res.TotalDates,
		PromptBatches:  res.BatchesCreated,
	}
	if err := catalog.RecordRun(db, run, sess.Records()); err != nil {
		log.Warn("catalog record failed", zap.String("session", sess.ID), zap.Error(err))
	}
}
