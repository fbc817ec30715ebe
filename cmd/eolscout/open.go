package main

import (
	"github.com/spf13/cobra"

	"github.com/scrapworks/eolscout/internal/open"
)

func openCmd() *cobra.Command {
	var line int

	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open a prompt or scrap file in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return open.FileAt(args[0], line)
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "Line to jump to")

	return cmd
}
