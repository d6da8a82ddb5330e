// Package main provides the entry point for the pondus CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pondus",
	Short: "Opinionated AI model benchmark aggregator",
	Long:  "Pondus aggregates AI model benchmark scores from several leaderboards and lets you rank, inspect, or compare models by a single canonical identity.",
	// Bare invocation behaves like `pondus rank`.
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRank(cmd, 0)
	},
}

var (
	globalFormat  string
	globalRefresh bool
	globalNoCache bool
	globalConfig  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFormat, "format", "json", "Output format: json, table, markdown")
	rootCmd.PersistentFlags().BoolVar(&globalRefresh, "refresh", false, "Clear the cache and re-fetch all sources")
	rootCmd.PersistentFlags().BoolVar(&globalNoCache, "no-cache", false, "Bypass cache reads for this invocation")
	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "Path to config.json (defaults to the per-user config location)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
