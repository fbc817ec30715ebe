package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scrapworks/eolscout/internal/catalog"
	"github.com/scrapworks/eolscout/internal/config"
	"github.com/scrapworks/eolscout/internal/results"
	"github.com/scrapworks/eolscout/internal/tui"
)

func resultsCmd() *cobra.Command {
	var runID, out, csvFile string
	var plain bool

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Browse the provenance rows of an extraction run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			root := cfg.OutputRoot
			if out != "" {
				root = out
			}

			summaryPath, err := findSummary(cfg, root, runID)
			if err != nil {
				return err
			}

			cs, err := results.Load(summaryPath)
			if err != nil {
				return err
			}
			rows := results.Flatten(cs)

			if csvFile != "" {
				f, err := os.Create(csvFile)
				if err != nil {
					return fmt.Errorf("create csv: %w", err)
				}
				defer f.Close()
				if err := results.WriteCSV(f, rows); err != nil {
					return err
				}
				fmt.Printf("CSV written: %s\n", csvFile)
				return nil
			}

			if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(summaryPath, rows)
			}

			printRowsTSV(rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Session id (default: latest run)")
	cmd.Flags().StringVar(&out, "out", "", "Output root to look in")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Export rows to a CSV file instead of viewing")
	cmd.Flags().BoolVar(&plain, "plain", false, "Force TSV output even on a terminal")

	return cmd
}

// findSummary locates the comprehensive summary to display: the catalog
// knows the run's output dir, with a directory scan as fallback for
// runs made before the catalog existed.
func findSummary(cfg *config.Config, root, runID string) (string, error) {
	if dir := catalogRunDir(cfg.DBPath, runID); dir != "" {
		if path, err := results.LatestSummaryFile(dir); err == nil && path != "" {
			return path, nil
		}
	}

	var dir string
	if runID != "" {
		dir = filepath.Join(root, cfg.Extract.Prefix+"_"+runID)
		if _, err := os.Stat(dir); err != nil {
			return "", fmt.Errorf("no summary found for run %s", runID)
		}
	} else {
		var err error
		dir, err = results.LatestRunDir(root, cfg.Extract.Prefix)
		if err != nil {
			return "", err
		}
		if dir == "" {
			return "", fmt.Errorf("no extraction runs under %s", root)
		}
	}

	path, err := results.LatestSummaryFile(dir)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("no summary file in %s", dir)
	}
	return path, nil
}

// catalogRunDir asks the catalog for a run's output dir. Any failure
// returns "" so the caller falls back to scanning directories.
func catalogRunDir(dbPath, runID string) string {
	if _, err := os.Stat(dbPath); err != nil {
		return ""
	}
	db, err := catalog.OpenDB(dbPath)
	if err != nil {
		return ""
	}
	defer db.Close()

	var run *catalog.RunRow
	if runID != "" {
		run, err = db.GetRun(runID)
	} else {
		run, err = db.LatestRun()
	}
	if err != nil || run == nil {
		return ""
	}
	return run.OutputDir
}

func printRowsTSV(rows []results.Row) {
	clean := func(s string) string {
		s = strings.ReplaceAll(s, "\t", " ")
		return strings.ReplaceAll(s, "\n", " ")
	}
	for _, r := range rows {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n",
			clean(r.ScrapFileName),
			clean(r.BatchNumber),
			clean(r.PromptFileName),
			clean(r.PromptFilePath),
			clean(r.SourceURL),
			clean(r.ScrapFileLocation),
		)
	}
}
