// Package cli defines the minesweep command-line interface.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// Execute builds the root command and runs it with the provided args.
func Execute(args []string, logger *slog.Logger) error {
	rootCmd := newRootCommand(logger)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "minesweep",
		Short:         "minesweep plays minesweeper in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newPlayCommand(logger),
	)

	return cmd
}
