// Package cli wires the fdload command line together using Cobra.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fdload",
		Short: "fdload - load the food delivery CSV dataset into a database",
		Long: `fdload copies the food delivery CSV files from object storage into their
destination tables. Files are processed one at a time in a fixed order and
their rows are appended in batches; existing rows are never touched.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewLoadCmd())

	return rootCmd
}
