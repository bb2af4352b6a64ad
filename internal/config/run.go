package config

import (
	"fmt"
	"math"
	"time"

	"nathanbeddoewebdev/sysdash/internal/alert"
	"nathanbeddoewebdev/sysdash/internal/domain"
	"nathanbeddoewebdev/sysdash/internal/reportlog"
)

// Built-in run defaults.
const (
	DefaultInterval     = 5 * time.Second
	DefaultMountPoint   = "/"
	DefaultSampleWindow = time.Second
)

// RunConfig is the immutable configuration of one dashboard run.
//
// A tick lasts roughly SampleWindow (CPU measurement) plus Interval (sleep);
// the sleep is not shortened to make up for measurement time.
type RunConfig struct {
	Interval     time.Duration
	MaxCycles    *int // nil runs until interrupted
	Thresholds   alert.Thresholds
	MountPoint   string
	ReportPath   string
	SampleWindow time.Duration
}

// Cycles returns a cycle limit of n for RunConfig.MaxCycles.
func Cycles(n int) *int {
	return &n
}

// DefaultRunConfig returns the built-in configuration: refresh every five
// seconds until interrupted, alert on CPU above 80%.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Interval:     DefaultInterval,
		Thresholds:   alert.DefaultThresholds(),
		MountPoint:   DefaultMountPoint,
		ReportPath:   reportlog.DefaultFileName,
		SampleWindow: DefaultSampleWindow,
	}
}

// RunConfig overlays the user's saved defaults on DefaultRunConfig.
func (c *Config) RunConfig() (RunConfig, error) {
	rc := DefaultRunConfig()

	if c.IntervalSeconds != 0 {
		rc.Interval = time.Duration(c.IntervalSeconds) * time.Second
	}
	if c.MountPoint != "" {
		rc.MountPoint = c.MountPoint
	}
	if c.ReportPath != "" {
		rc.ReportPath = c.ReportPath
	}
	if c.SampleWindow != "" {
		d, err := time.ParseDuration(c.SampleWindow)
		if err != nil {
			return RunConfig{}, fmt.Errorf("%w: sample_window: invalid duration %q", domain.ErrConfig, c.SampleWindow)
		}
		rc.SampleWindow = d
	}

	overrides := map[domain.Metric]*float64{
		domain.MetricCPU:    c.CPUThreshold,
		domain.MetricMemory: c.MemoryThreshold,
		domain.MetricDisk:   c.DiskThreshold,
	}
	for m, v := range overrides {
		if v != nil {
			rc.Thresholds[m] = *v
		}
	}

	return rc, nil
}

// Bounded reports whether the run stops after a fixed number of cycles.
func (r RunConfig) Bounded() bool {
	return r.MaxCycles != nil
}

// Validate checks the run preconditions. Errors wrap domain.ErrConfig.
//
// A zero Interval is accepted and runs ticks back to back.
func (r RunConfig) Validate() error {
	if r.Interval < 0 {
		return fmt.Errorf("%w: interval must not be negative, got %s", domain.ErrConfig, r.Interval)
	}
	if r.MaxCycles != nil && *r.MaxCycles <= 0 {
		return fmt.Errorf("%w: cycles must be positive, got %d", domain.ErrConfig, *r.MaxCycles)
	}
	if r.SampleWindow < 0 {
		return fmt.Errorf("%w: sample window must not be negative, got %s", domain.ErrConfig, r.SampleWindow)
	}
	if r.MountPoint == "" {
		return fmt.Errorf("%w: mount point must not be empty", domain.ErrConfig)
	}
	if r.ReportPath == "" {
		return fmt.Errorf("%w: report path must not be empty", domain.ErrConfig)
	}
	for _, m := range domain.Metrics {
		v, ok := r.Thresholds[m]
		if !ok {
			continue
		}
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("%w: %s threshold must be between 0 and 100, got %v", domain.ErrConfig, m, v)
		}
	}
	return nil
}
