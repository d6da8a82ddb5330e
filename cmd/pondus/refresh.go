package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var refreshCommand = &cobra.Command{
	Use:   "refresh",
	Short: "Clear the cache and re-fetch all sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Cache cleared. Re-fetching all sources...")
		return a.print(a.pipeline.Rank(cmd.Context(), 0))
	},
}

func init() {
	rootCmd.AddCommand(refreshCommand)
}
