package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/sysdash/internal/config"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. Use the value \"" + config.ResetValue + "\"\n" +
			"to clear a key and fall back to the built-in default.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  sysdash config set interval 10\n" +
			"  sysdash config set memory-threshold 90\n" +
			"  sysdash config set cpu-threshold default",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	value := strings.TrimSpace(args[1])

	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := spec.Set(cfg, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", spec.Name, err)
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if value == config.ResetValue {
		fmt.Fprintf(cmd.OutOrStdout(), "%s reset to default\n", spec.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, spec.Get(cfg))
	return nil
}
