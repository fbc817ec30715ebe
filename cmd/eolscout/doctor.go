package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrapworks/eolscout/internal/catalog"
	"github.com/scrapworks/eolscout/internal/config"
	"github.com/scrapworks/eolscout/internal/scan"
	"github.com/scrapworks/eolscout/internal/token"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify directories, tokenizer, catalog, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			// check directories
			fmt.Println("=== Directories ===")
			checkDir("Corpus", cfg.CorpusDir)
			checkDir("Output", cfg.OutputRoot)

			// scan file counts
			fmt.Println("\n=== Corpus Scan ===")
			files, err := scan.ScrapFiles(cfg.CorpusDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  Scrap files: %d\n", len(files))
			}

			// check tokenizer
			fmt.Println("\n=== Tokenizer ===")
			counter, precise := token.New()
			if precise {
				fmt.Printf("  cl100k_base loaded (\"hello world\" = %d tokens)\n",
					counter.Count("hello world"))
			} else {
				fmt.Println("  cl100k_base unavailable, counting len/4 (approximate)")
			}

			// check editor
			fmt.Println("\n=== Editor ===")
			if editor := os.Getenv("EDITOR"); editor != "" {
				fmt.Printf("  EDITOR: %s\n", editor)
			} else {
				fmt.Println("  EDITOR: not set (falls back to less)")
			}

			// check catalog
			fmt.Println("\n=== Catalog ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'eolscout extract' first)")
				return nil
			}

			db, err := catalog.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer db.Close()

			runCount, err := db.RunCount()
			if err != nil {
				return fmt.Errorf("count runs: %w", err)
			}

			recordCount, err := db.RecordCount()
			if err != nil {
				return fmt.Errorf("count records: %w", err)
			}

			fmt.Printf("  Runs:    %d\n", runCount)
			fmt.Printf("  Records: %d\n", recordCount)

			// check FTS5
			fmt.Println("\n=== FTS5 ===")
			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM records_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == recordCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (records=%d, fts=%d)\n", recordCount, ftsCount)
				}
			}

			// check DB file size
			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
