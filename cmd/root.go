package cmd

import (
	"context"
	"os"

	cfgcmd "nathanbeddoewebdev/sysdash/cmd/commands/config"
	"nathanbeddoewebdev/sysdash/cmd/commands/dashboard"
	"nathanbeddoewebdev/sysdash/cmd/commands/runs"

	"github.com/spf13/cobra"
)

// rootCmd is the dashboard command with the management subcommands attached.
func rootCmd() *cobra.Command {
	cmd := dashboard.NewCommand()

	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(runs.NewCommand())

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	root := rootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
