package config

import (
	"fmt"

	"nathanbeddoewebdev/sysdash/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sysdash defaults",
		Long: "View and modify persistent sysdash defaults.\n\n" +
			"Configuration is stored at ~/.config/sysdash/config.json. Values set\n" +
			"here apply to every dashboard run unless overridden by a flag.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())
	cmd.AddCommand(PathCommand())

	return cmd
}

// PathCommand returns the "config path" command.
func PathCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "path",
		Short:        "Print the configuration file location",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
