package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nathanbeddoewebdev/sysdash/internal/config"
	"nathanbeddoewebdev/sysdash/internal/domain"
	"nathanbeddoewebdev/sysdash/internal/metricsource"
	"nathanbeddoewebdev/sysdash/internal/reportlog"
	"nathanbeddoewebdev/sysdash/internal/sampler"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

var fixedTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newMock() *metricsource.MockSource {
	return &metricsource.MockSource{
		CPU:    28.7,
		Memory: domain.Usage{UsedBytes: 5 << 30, Percent: 62.4},
		Disk:   domain.Usage{UsedBytes: 200 << 30, Percent: 79.2},
	}
}

func testConfig(cycles int) config.RunConfig {
	rc := config.DefaultRunConfig()
	rc.Interval = 0
	rc.SampleWindow = 0
	rc.MaxCycles = config.Cycles(cycles)
	rc.ReportPath = "dashboard_report.txt"
	return rc
}

type harness struct {
	source *metricsource.MockSource
	fs     afero.Fs
	out    bytes.Buffer
	errOut bytes.Buffer
}

func (h *harness) loop(t *testing.T, rc config.RunConfig, s Sampler, opts ...Option) *Loop {
	t.Helper()
	if s == nil {
		s = sampler.New(h.source, rc.MountPoint, rc.SampleWindow, sampler.WithClock(func() time.Time { return fixedTime }))
	}
	opts = append([]Option{WithOutput(&h.out, &h.errOut)}, opts...)
	l, err := New(rc, s, reportlog.New(h.fs, rc.ReportPath), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l
}

func (h *harness) report(t *testing.T) string {
	t.Helper()
	data, err := afero.ReadFile(h.fs, "dashboard_report.txt")
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	return string(data)
}

func newHarness() *harness {
	return &harness{source: newMock(), fs: afero.NewMemMapFs()}
}

func TestRun_BoundedCompletes(t *testing.T) {
	h := newHarness()
	l := h.loop(t, testConfig(3), nil)

	got := l.Run(context.Background())

	want := LoopState{State: StateCompleted, CyclesCompleted: 3, Terminated: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loop state mismatch (-want +got):\n%s", diff)
	}
	if calls := h.source.Calls(); calls != 3 {
		t.Errorf("source sampled %d times, want 3", calls)
	}
	if n := strings.Count(h.report(t), "CPU Usage:"); n != 3 {
		t.Errorf("report has %d records, want 3", n)
	}
	if n := strings.Count(h.out.String(), "System Resource Dashboard"); n != 3 {
		t.Errorf("rendered %d dashboards, want 3", n)
	}
}

func TestRun_EndToEndExample(t *testing.T) {
	h := newHarness()
	l := h.loop(t, testConfig(2), nil)

	st := l.Run(context.Background())
	if st.State != StateCompleted {
		t.Fatalf("state = %s, want completed", st.State)
	}

	record := "2026-10-19 12:00:00\nCPU Usage: 28.7%, Memory Usage: 62.4%, Disk Usage: 79.2%\n"
	if diff := cmp.Diff(record+record, h.report(t)); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(h.out.String(), "WARNING") {
		t.Errorf("unexpected warning in output:\n%s", h.out.String())
	}
	if !strings.Contains(h.out.String(), "CPU Usage   : 28.7%") {
		t.Errorf("expected CPU line in output:\n%s", h.out.String())
	}
}

func TestRun_SampleFailureSkipsTick(t *testing.T) {
	h := newHarness()
	h.source.CPUErrs = map[int]error{2: errors.New("counters unavailable")}
	l := h.loop(t, testConfig(3), nil)

	got := l.Run(context.Background())

	want := LoopState{State: StateCompleted, CyclesCompleted: 3, Terminated: true, SampleFailures: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loop state mismatch (-want +got):\n%s", diff)
	}
	if n := strings.Count(h.report(t), "CPU Usage:"); n != 2 {
		t.Errorf("report has %d records, want 2", n)
	}
	if !strings.Contains(h.errOut.String(), "counters unavailable") {
		t.Errorf("expected sample error on stderr, got:\n%s", h.errOut.String())
	}
	if n := strings.Count(h.out.String(), "System Resource Dashboard"); n != 2 {
		t.Errorf("rendered %d dashboards, want 2", n)
	}
}

func TestRun_AppendFailureIsNotFatal(t *testing.T) {
	h := newHarness()
	h.fs = afero.NewReadOnlyFs(afero.NewMemMapFs())
	l := h.loop(t, testConfig(2), nil)

	got := l.Run(context.Background())

	want := LoopState{State: StateCompleted, CyclesCompleted: 2, Terminated: true, AppendFailures: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loop state mismatch (-want +got):\n%s", diff)
	}
	if n := strings.Count(h.out.String(), "System Resource Dashboard"); n != 2 {
		t.Errorf("rendered %d dashboards, want 2", n)
	}
	if !strings.Contains(h.errOut.String(), "Warning:") {
		t.Errorf("expected persistence warning on stderr, got:\n%s", h.errOut.String())
	}
}

func TestRun_AlertsRendered(t *testing.T) {
	h := newHarness()
	h.source.CPU = 95
	l := h.loop(t, testConfig(2), nil)

	got := l.Run(context.Background())

	if got.AlertsRaised != 2 {
		t.Errorf("AlertsRaised = %d, want 2", got.AlertsRaised)
	}
	if n := strings.Count(h.out.String(), "WARNING: CPU usage 95.0% exceeds threshold 80.0%"); n != 2 {
		t.Errorf("expected 2 CPU warnings, got %d:\n%s", n, h.out.String())
	}
	// Alerts are display-only; records stay two lines each.
	if strings.Contains(h.report(t), "WARNING") {
		t.Errorf("warning leaked into report:\n%s", h.report(t))
	}
}

// cancelAfter cancels the run once it has produced n samples.
type cancelAfter struct {
	inner  Sampler
	n      int
	cancel context.CancelFunc
	calls  int
}

func (c *cancelAfter) Sample(ctx context.Context) (domain.Sample, error) {
	s, err := c.inner.Sample(ctx)
	c.calls++
	if c.calls >= c.n {
		c.cancel()
	}
	return s, err
}

func TestRun_InterruptDuringSleep(t *testing.T) {
	h := newHarness()
	rc := testConfig(1)
	rc.MaxCycles = nil
	rc.Interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &cancelAfter{
		inner:  sampler.New(h.source, rc.MountPoint, 0, sampler.WithClock(func() time.Time { return fixedTime })),
		n:      1,
		cancel: cancel,
	}
	l := h.loop(t, rc, s)

	start := time.Now()
	got := l.Run(ctx)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("interrupt took %s", elapsed)
	}

	want := LoopState{State: StateInterrupted, CyclesCompleted: 1, Terminated: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loop state mismatch (-want +got):\n%s", diff)
	}
	if n := strings.Count(h.report(t), "CPU Usage:"); n != 1 {
		t.Errorf("report has %d records, want 1", n)
	}
}

func TestRun_InterruptDuringSample(t *testing.T) {
	h := newHarness()
	rc := testConfig(3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := SamplerFunc(func(ctx context.Context) (domain.Sample, error) {
		cancel()
		return domain.Sample{}, ctx.Err()
	})
	l := h.loop(t, rc, s)

	got := l.Run(ctx)

	want := LoopState{State: StateInterrupted, Terminated: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loop state mismatch (-want +got):\n%s", diff)
	}
	if h.errOut.Len() != 0 {
		t.Errorf("interrupted sample should not be reported as a failure:\n%s", h.errOut.String())
	}
}

func TestRun_AlreadyCancelled(t *testing.T) {
	h := newHarness()
	l := h.loop(t, testConfig(3), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := l.Run(ctx)

	if got.State != StateInterrupted || got.CyclesCompleted != 0 {
		t.Errorf("got %+v, want interrupted with no cycles", got)
	}
	if h.source.Calls() != 0 {
		t.Errorf("source sampled %d times after cancellation", h.source.Calls())
	}
	if exists, _ := afero.Exists(h.fs, "dashboard_report.txt"); exists {
		t.Error("report file should not be created")
	}
}

func TestRun_OnlyOnce(t *testing.T) {
	h := newHarness()
	l := h.loop(t, testConfig(1), nil)

	first := l.Run(context.Background())
	second := l.Run(context.Background())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run changed state (-want +got):\n%s", diff)
	}
	if h.source.Calls() != 1 {
		t.Errorf("source sampled %d times, want 1", h.source.Calls())
	}
}

func TestRun_ClearScreen(t *testing.T) {
	h := newHarness()
	l := h.loop(t, testConfig(2), nil, WithClearScreen(true))

	l.Run(context.Background())

	clear := ansi.EraseEntireScreen + ansi.CursorHomePosition
	if n := strings.Count(h.out.String(), clear); n != 2 {
		t.Errorf("expected 2 clear sequences, got %d", n)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	h := newHarness()
	rc := testConfig(1)
	rc.MaxCycles = config.Cycles(0)

	_, err := New(rc, sampler.New(h.source, "/", 0), reportlog.New(h.fs, rc.ReportPath))
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if h.source.Calls() != 0 {
		t.Errorf("source sampled %d times before validation", h.source.Calls())
	}
}

func TestNew_MissingCollaborators(t *testing.T) {
	_, err := New(testConfig(1), nil, nil)
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:        "idle",
		StateRunning:     "running",
		StateCompleted:   "completed",
		StateInterrupted: "interrupted",
		StateErrored:     "errored",
		State(42):        "state(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
