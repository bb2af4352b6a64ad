package runs

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/sysdash/internal/runlog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent dashboard runs",
		Long: `List recent dashboard runs stored locally.

Examples:
  sysdash runs list
  sysdash runs list --limit 50
  sysdash runs list --state interrupted
  sysdash runs list -o yaml`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of runs to display")
	cmd.Flags().String("state", "", "Filter by final state (completed or interrupted)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	state, _ := cmd.Flags().GetString("state")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	switch output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := runlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var runs []runlog.Run
	if state != "" {
		runs, err = repo.ListByState(state, limit)
	} else {
		runs, err = repo.List(limit)
	}
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []runlog.Run{}
	}

	switch output {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	case "yaml":
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		if err := encoder.Encode(runs); err != nil {
			return err
		}
		return encoder.Close()
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No dashboard runs found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTATE\tCYCLES\tDURATION\tFAILURES\tALERTS\tREPORT")
	fmt.Fprintln(w, "-------\t-----\t------\t--------\t--------\t------\t------")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.State,
			formatCycles(run),
			formatDuration(run.Duration()),
			formatFailures(run),
			run.AlertsRaised,
			run.ReportPath,
		)
	}
	w.Flush()
	return nil
}

func formatCycles(run runlog.Run) string {
	if run.MaxCycles == 0 {
		return fmt.Sprintf("%d", run.Cycles)
	}
	return fmt.Sprintf("%d/%d", run.Cycles, run.MaxCycles)
}

func formatFailures(run runlog.Run) string {
	if run.SampleFailures == 0 && run.AppendFailures == 0 {
		return "-"
	}
	return fmt.Sprintf("%d sample, %d write", run.SampleFailures, run.AppendFailures)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
