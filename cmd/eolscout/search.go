package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrapworks/eolscout/internal/catalog"
	"github.com/scrapworks/eolscout/internal/config"
	"github.com/scrapworks/eolscout/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorGreen   = "\033[1;32m"
)

func colorizePattern(pattern string) string {
	if pattern == "" {
		return "-"
	}
	return sColorGreen + pattern + sColorReset
}

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var run, pattern, file, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across cataloged date records",
		Long: `Search every cataloged extraction run using FTS5. Output is TSV:
  run, file, date, pattern, snippet

The run and file columns stay plain so pipes can key on them; hits
inside the snippet are highlighted. Narrow the search with --run,
--pattern, --file and --since.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.DBPath); err != nil {
				fmt.Fprintln(os.Stderr, "Catalog is empty (run 'eolscout extract' first).")
				return nil
			}

			db, err := catalog.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := search.Search(db, search.Options{
				Query:   args[0],
				Run:     run,
				Pattern: pattern,
				File:    file,
				Since:   since,
				Limit:   limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
					r.SessionID,
					r.SourceFile,
					r.DateText,
					colorizePattern(r.Pattern),
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&run, "run", "", "Filter by session id")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Filter by pattern name (e.g. numeric_dmy)")
	cmd.Flags().StringVar(&file, "file", "", "Filter by source file name substring")
	cmd.Flags().StringVar(&since, "since", "", "Filter runs created since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
