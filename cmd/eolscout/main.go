package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "eolscout",
		Short:   "eolscout - scrape vendor pages and extract end-of-life dates for LLM review",
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(resultsCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
