// Package dashboard drives the sample, evaluate, render and log cycle.
//
// A Loop moves through Idle → Running → one of Completed, Interrupted or
// Errored. Errored is only reachable from New, when the run configuration
// is invalid; metric and report failures are absorbed per tick.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"nathanbeddoewebdev/sysdash/internal/alert"
	"nathanbeddoewebdev/sysdash/internal/config"
	"nathanbeddoewebdev/sysdash/internal/domain"
	"nathanbeddoewebdev/sysdash/internal/logging"
	"nathanbeddoewebdev/sysdash/internal/render"

	"github.com/charmbracelet/x/ansi"
)

// State is the lifecycle position of a Loop.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateInterrupted
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateInterrupted:
		return "interrupted"
	case StateErrored:
		return "errored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LoopState is the mutable progress of a run. Only the loop writes it.
type LoopState struct {
	State           State
	CyclesCompleted int
	Terminated      bool

	SampleFailures int
	AppendFailures int
	AlertsRaised   int
}

// Sampler captures one sample per tick.
type Sampler interface {
	Sample(ctx context.Context) (domain.Sample, error)
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func(ctx context.Context) (domain.Sample, error)

func (f SamplerFunc) Sample(ctx context.Context) (domain.Sample, error) {
	return f(ctx)
}

// ReportLog persists one record per successful tick.
type ReportLog interface {
	Append(sample domain.Sample) error
}

// Loop runs the dashboard for one RunConfig.
type Loop struct {
	cfg      config.RunConfig
	sampler  Sampler
	report   ReportLog
	renderer render.Renderer
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
	clear    bool

	state LoopState
}

// Option configures a Loop.
type Option func(*Loop)

// WithRenderer sets the renderer. The default is render.Plain.
func WithRenderer(r render.Renderer) Option {
	return func(l *Loop) { l.renderer = r }
}

// WithOutput sets where dashboards (out) and per-tick errors (errOut) are
// written. Both default to io.Discard.
func WithOutput(out, errOut io.Writer) Option {
	return func(l *Loop) {
		l.out = out
		l.errOut = errOut
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithClearScreen clears the terminal before each dashboard instead of
// separating dashboards with a blank line.
func WithClearScreen(clear bool) Option {
	return func(l *Loop) { l.clear = clear }
}

// New validates cfg and returns an idle Loop. Validation errors wrap
// domain.ErrConfig; no sampling happens before they are reported.
func New(cfg config.RunConfig, sampler Sampler, report ReportLog, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sampler == nil || report == nil {
		return nil, fmt.Errorf("%w: sampler and report log are required", domain.ErrConfig)
	}

	l := &Loop{
		cfg:      cfg,
		sampler:  sampler,
		report:   report,
		renderer: render.Plain{},
		out:      io.Discard,
		errOut:   io.Discard,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// State returns a copy of the loop's current progress.
func (l *Loop) State() LoopState {
	return l.state
}

// Run ticks until the cycle budget is spent or ctx is cancelled, and
// returns the final state. Cancelling ctx interrupts the inter-tick sleep
// immediately. A Loop can only be run once; later calls return the state
// of the first run.
func (l *Loop) Run(ctx context.Context) LoopState {
	if l.state.State != StateIdle {
		return l.state
	}
	l.state.State = StateRunning

	maxCycles := 0
	if l.cfg.Bounded() {
		maxCycles = *l.cfg.MaxCycles
	}
	l.logger.Info("dashboard started",
		"interval", l.cfg.Interval,
		"max_cycles", maxCycles,
		"report", l.cfg.ReportPath,
	)

	for {
		if ctx.Err() != nil {
			return l.stop(StateInterrupted)
		}
		if !l.tick(ctx) {
			return l.stop(StateInterrupted)
		}
		l.state.CyclesCompleted++

		if l.cfg.Bounded() && l.state.CyclesCompleted >= maxCycles {
			return l.stop(StateCompleted)
		}
		if !sleep(ctx, l.cfg.Interval) {
			return l.stop(StateInterrupted)
		}
	}
}

// tick performs one sample/evaluate/render/append cycle. It returns false
// only when ctx was cancelled while sampling; that tick is not counted.
func (l *Loop) tick(ctx context.Context) bool {
	cycle := l.state.CyclesCompleted + 1

	sample, err := l.sampler.Sample(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		l.state.SampleFailures++
		fmt.Fprintf(l.errOut, "Error: skipping cycle %d: %v\n", cycle, err)
		l.logger.Error("sample failed", "cycle", cycle, "err", err)
		return true
	}

	alerts := alert.Evaluate(sample, l.cfg.Thresholds)
	l.state.AlertsRaised += len(alerts)
	for _, a := range alerts {
		l.logger.Warn("threshold exceeded",
			"cycle", cycle,
			"metric", string(a.Metric),
			"observed", a.Observed,
			"threshold", a.Threshold,
		)
	}

	switch {
	case l.clear:
		io.WriteString(l.out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	case cycle > 1:
		io.WriteString(l.out, "\n")
	}
	io.WriteString(l.out, l.renderer.Render(sample, alerts))

	if err := l.report.Append(sample); err != nil {
		l.state.AppendFailures++
		fmt.Fprintf(l.errOut, "Warning: %v\n", err)
		l.logger.Warn("report append failed", "cycle", cycle, "err", err)
	}

	l.logger.Debug("tick completed", "cycle", cycle, "alerts", len(alerts))
	return true
}

func (l *Loop) stop(s State) LoopState {
	l.state.State = s
	l.state.Terminated = true
	l.logger.Info("dashboard stopped",
		"state", s.String(),
		"cycles", l.state.CyclesCompleted,
		"sample_failures", l.state.SampleFailures,
		"append_failures", l.state.AppendFailures,
	)
	return l.state
}

// sleep waits for d or until ctx is done, reporting whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
