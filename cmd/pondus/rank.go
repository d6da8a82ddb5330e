package main

import (
	"github.com/spf13/cobra"
)

var rankCommand = &cobra.Command{
	Use:   "rank",
	Short: "Rank all models across sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRank(cmd, rankTop)
	},
}

var rankTop int

func init() {
	rankCommand.Flags().IntVar(&rankTop, "top", 0, "Show only the top N models per source")
	rootCmd.AddCommand(rankCommand)
}

func runRank(cmd *cobra.Command, top int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.print(a.pipeline.Rank(cmd.Context(), top))
}
