// Package dashboard implements the root "sysdash" command, which runs the
// live resource dashboard.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nathanbeddoewebdev/sysdash/internal/config"
	"nathanbeddoewebdev/sysdash/internal/dashboard"
	"nathanbeddoewebdev/sysdash/internal/domain"
	"nathanbeddoewebdev/sysdash/internal/logging"
	"nathanbeddoewebdev/sysdash/internal/metricsource"
	"nathanbeddoewebdev/sysdash/internal/render"
	"nathanbeddoewebdev/sysdash/internal/reportlog"
	"nathanbeddoewebdev/sysdash/internal/retry"
	"nathanbeddoewebdev/sysdash/internal/runlog"
	"nathanbeddoewebdev/sysdash/internal/sampler"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Package-level seams, overridden in tests.
var (
	newSource     = func() metricsource.Source { return metricsource.NewHost() }
	openJournal   = func() (runlog.Repository, error) { return runlog.Open() }
	notifyContext = signal.NotifyContext
	intervalUnit  = time.Second
	isTerminal    = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

// NewCommand returns the root "sysdash" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysdash",
		Short: "Live CPU, memory and disk usage dashboard",
		Long: `sysdash samples CPU, memory and disk usage at a fixed interval, prints a
dashboard for each sample, appends every sample to a plain-text report file
and warns when a metric exceeds its alert threshold.

Each cycle measures CPU usage over the sample window (1s by default) and
then waits for the interval, so one cycle takes roughly window + interval.
The dashboard runs until --cycles is reached or it is interrupted (Ctrl+C).

Flags override saved defaults ("sysdash config set"), which override the
built-in defaults.

Examples:
  sysdash                          # refresh every 5s until interrupted
  sysdash -i 2 -c 10               # 10 cycles, 2s apart
  sysdash --memory-threshold 90 --mount /data
  sysdash runs list                # past runs`,
		Args:         cobra.NoArgs,
		RunE:         runDashboard,
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.IntP("interval", "i", 0, "Seconds to wait between refreshes (default 5)")
	flags.IntP("cycles", "c", 0, "Stop after this many cycles (default: run until interrupted)")
	flags.String("mount", "", `Mount point reported as disk usage (default "/")`)
	flags.String("report", "", `Report file samples are appended to (default "`+reportlog.DefaultFileName+`")`)
	flags.Float64("cpu-threshold", 0, "Warn when CPU usage exceeds this percentage (default 80)")
	flags.Float64("memory-threshold", 0, "Warn when memory usage exceeds this percentage")
	flags.Float64("disk-threshold", 0, "Warn when disk usage exceeds this percentage")
	flags.Duration("sample-window", 0, "How long CPU usage is measured per sample (default 1s)")
	flags.Bool("clear", false, "Clear the screen before each dashboard")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("no-history", false, "Do not record this run in the run history")
	flags.String("log-level", "warn", "Diagnostic log level: debug, info, warn or error")
	flags.String("log-file", "", "Write diagnostics to this file (rotated) instead of stderr")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	rc, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level, _ = cmd.Flags().GetString("log-level")
	logCfg.File, _ = cmd.Flags().GetString("log-file")
	logger, closer, err := logging.New(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	defer closer.Close()

	out := cmd.OutOrStdout()
	noColor, _ := cmd.Flags().GetBool("no-color")
	clear, _ := cmd.Flags().GetBool("clear")

	var renderer render.Renderer = render.Plain{}
	if isTerminal(out) && !noColor && os.Getenv("NO_COLOR") == "" {
		renderer = render.Styled{Thresholds: rc.Thresholds}
	}

	s := sampler.New(newSource(), rc.MountPoint, rc.SampleWindow)
	loop, err := dashboard.New(rc, s, reportlog.NewOS(rc.ReportPath),
		dashboard.WithRenderer(renderer),
		dashboard.WithOutput(out, cmd.ErrOrStderr()),
		dashboard.WithLogger(logger),
		dashboard.WithClearScreen(clear),
	)
	if err != nil {
		return err
	}

	ctx, stop := notifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	st := loop.Run(ctx)
	finished := time.Now()

	if st.State == dashboard.StateInterrupted {
		fmt.Fprintln(out, "Stopped by user.")
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		recordRun(cmd.Context(), logger, rc, st, started, finished)
	}
	return nil
}

// buildRunConfig layers flags over saved defaults over built-in defaults
// and validates the result. Errors wrap domain.ErrConfig.
func buildRunConfig(cmd *cobra.Command) (config.RunConfig, error) {
	saved, err := config.Load()
	if err != nil {
		return config.RunConfig{}, fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	rc, err := saved.RunConfig()
	if err != nil {
		return config.RunConfig{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("interval") {
		n, _ := flags.GetInt("interval")
		if n <= 0 {
			return config.RunConfig{}, fmt.Errorf("%w: --interval must be a positive number of seconds, got %d", domain.ErrConfig, n)
		}
		rc.Interval = time.Duration(n) * intervalUnit
	}
	if flags.Changed("cycles") {
		n, _ := flags.GetInt("cycles")
		rc.MaxCycles = config.Cycles(n)
	}
	if flags.Changed("mount") {
		rc.MountPoint, _ = flags.GetString("mount")
	}
	if flags.Changed("report") {
		rc.ReportPath, _ = flags.GetString("report")
	}
	if flags.Changed("sample-window") {
		rc.SampleWindow, _ = flags.GetDuration("sample-window")
	}
	thresholdFlags := map[domain.Metric]string{
		domain.MetricCPU:    "cpu-threshold",
		domain.MetricMemory: "memory-threshold",
		domain.MetricDisk:   "disk-threshold",
	}
	for m, name := range thresholdFlags {
		if flags.Changed(name) {
			rc.Thresholds[m], _ = flags.GetFloat64(name)
		}
	}

	if err := rc.Validate(); err != nil {
		return config.RunConfig{}, err
	}
	return rc, nil
}

// recordRun saves the run summary to the journal, retrying while another
// sysdash process holds the database lock. Failures are only logged.
func recordRun(ctx context.Context, logger *slog.Logger, rc config.RunConfig, st dashboard.LoopState, started, finished time.Time) {
	repo, err := openJournal()
	if err != nil {
		logger.Warn("run history unavailable", "err", err)
		return
	}
	defer repo.Close()

	run := &runlog.Run{
		StartedAt:      started,
		FinishedAt:     finished,
		State:          st.State.String(),
		IntervalMs:     rc.Interval.Milliseconds(),
		Cycles:         st.CyclesCompleted,
		SampleFailures: st.SampleFailures,
		AppendFailures: st.AppendFailures,
		AlertsRaised:   st.AlertsRaised,
		MountPoint:     rc.MountPoint,
		ReportPath:     rc.ReportPath,
	}
	if rc.Bounded() {
		run.MaxCycles = *rc.MaxCycles
	}
	err = retry.Do(ctx, retry.DefaultConfig(), runlog.IsBusy, func() error {
		return repo.Save(run)
	})
	if err != nil {
		logger.Warn("failed to record run", "err", err)
		return
	}
	logger.Debug("run recorded", "id", run.ID)
}
