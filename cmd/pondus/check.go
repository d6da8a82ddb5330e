package main

import (
	"github.com/spf13/cobra"
)

var checkCommand = &cobra.Command{
	Use:   "check <model>",
	Short: "Check a single model across all sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.print(a.pipeline.Check(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(checkCommand)
}
