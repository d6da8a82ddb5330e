package main

import (
	"github.com/spf13/cobra"
)

var compareCommand = &cobra.Command{
	Use:   "compare <model1> <model2>",
	Short: "Compare two models head-to-head",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.print(a.pipeline.Compare(cmd.Context(), args[0], args[1]))
	},
}

func init() {
	rootCmd.AddCommand(compareCommand)
}
