package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the top-level command. All subcommands load their own
// configuration so the root stays free of global state.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "certprep",
		Short:         "Adaptive study scheduling API for certification exam prep",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}
