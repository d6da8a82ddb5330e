package main

import (
	"github.com/spf13/cobra"
)

var sourcesCommand = &cobra.Command{
	Use:   "sources",
	Short: "List all sources and their status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.print(a.pipeline.Sources(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(sourcesCommand)
}
