package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrapworks/eolscout/internal/config"
	"github.com/scrapworks/eolscout/internal/logging"
	"github.com/scrapworks/eolscout/internal/scrape"
)

func scrapeCmd() *cobra.Command {
	var modelsFile, engine, dir string
	var delay, limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "scrape [model...]",
		Short: "Scrape vendor and search-engine pages for model lifecycle dates",
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

			models := args
			if modelsFile != "" {
				fromFile, err := scrape.LoadModels(modelsFile)
				if err != nil {
					return err
				}
				models = append(models, fromFile...)
			}
			if len(models) == 0 {
				return fmt.Errorf("no models given: pass names or --models FILE")
			}
			if limit > 0 && len(models) > limit {
				models = models[:limit]
			}

			if engine != "" {
				cfg.Scrape.Engine = engine
			}
			if delay >= 0 {
				cfg.Scrape.DelaySeconds = delay
			}
			out := cfg.CorpusDir
			if dir != "" {
				out = dir
			}

			stats, err := scrape.New(cfg.Scrape, out, log).Run(cmd.Context(), models)
			if err != nil {
				return err
			}

			fmt.Printf("Scraped %d pages for %d models (%d skipped, %d errors)\n",
				stats.Pages, stats.Models, stats.Skipped, stats.Errors)
			fmt.Printf("Summary: %s\n", stats.SummaryPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelsFile, "models", "", "File with one model name per line")
	cmd.Flags().StringVar(&engine, "engine", "", "Search engine (duckduckgo/bing/yahoo/all)")
	cmd.Flags().StringVar(&dir, "dir", "", "Corpus directory to write scrap files into")
	cmd.Flags().IntVar(&delay, "delay", -1, "Seconds between requests (-1 = config value)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max models to scrape (0 = all)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}
