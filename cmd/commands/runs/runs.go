package runs

import "github.com/spf13/cobra"

// NewCommand returns the "runs" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "View and manage dashboard run history",
		Long: "View a local journal of past dashboard runs and prune old entries.\n\n" +
			"Each run records how it ended, how many cycles it completed and how\n" +
			"many samples or report writes failed. History is stored locally in\n" +
			"~/.config/sysdash/sysdash.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
