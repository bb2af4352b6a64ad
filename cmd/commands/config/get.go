package config

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/sysdash/internal/config"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"With no key, prints every key and its current value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  sysdash config get                     # all values\n" +
			"  sysdash config get cpu-threshold       # a single value\n" +
			"  sysdash config get --key interval",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	cmd.Flags().String("key", "", "Configuration key to fetch (prints a single value)")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	key, _ := cmd.Flags().GetString("key")
	if len(args) == 1 {
		key = args[0]
	}
	key = strings.TrimSpace(key)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if key == "" {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, spec := range config.Keys {
			value := spec.Get(cfg)
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintf(w, "%s:\t%s\n", spec.Name, value)
		}
		return w.Flush()
	}

	spec := config.Lookup(key)
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", key, strings.Join(config.KeyNames(), ", "))
	}

	value := spec.Get(cfg)
	if value == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "not set")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}
	return nil
}
