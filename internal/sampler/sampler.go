// Package sampler turns raw metric source readings into validated samples.
package sampler

import (
	"context"
	"fmt"
	"math"
	"time"

	"nathanbeddoewebdev/sysdash/internal/domain"
	"nathanbeddoewebdev/sysdash/internal/metricsource"

	"golang.org/x/sync/errgroup"
)

// Sampler captures one domain.Sample per call from a metric source.
type Sampler struct {
	source     metricsource.Source
	mountPoint string
	window     time.Duration
	now        func() time.Time
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithClock overrides the function used to timestamp samples.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

// New returns a Sampler reading disk usage for mountPoint and measuring CPU
// utilization over window.
func New(source metricsource.Source, mountPoint string, window time.Duration, opts ...Option) *Sampler {
	s := &Sampler{
		source:     source,
		mountPoint: mountPoint,
		window:     window,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample reads all three metrics and returns them as one Sample.
//
// The readings are taken concurrently so memory and disk are read while the
// CPU window elapses; a Sample therefore takes roughly the CPU window to
// produce. Any failed or out-of-range reading fails the whole sample with
// an error wrapping domain.ErrMetricUnavailable.
func (s *Sampler) Sample(ctx context.Context) (domain.Sample, error) {
	sample := domain.Sample{
		Timestamp:  s.now(),
		MountPoint: s.mountPoint,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.source.CPUPercent(gctx, s.window)
		if err != nil {
			return unavailable(domain.MetricCPU, err)
		}
		sample.CPUPercent = v
		return nil
	})
	g.Go(func() error {
		u, err := s.source.MemoryStats(gctx)
		if err != nil {
			return unavailable(domain.MetricMemory, err)
		}
		sample.Memory = u
		return nil
	})
	g.Go(func() error {
		u, err := s.source.DiskStats(gctx, s.mountPoint)
		if err != nil {
			return unavailable(domain.MetricDisk, fmt.Errorf("%s: %w", s.mountPoint, err))
		}
		sample.Disk = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Sample{}, err
	}

	for _, m := range domain.Metrics {
		if err := checkPercent(m, sample.Percent(m)); err != nil {
			return domain.Sample{}, err
		}
	}

	return sample, nil
}

func unavailable(m domain.Metric, err error) error {
	return fmt.Errorf("%s: %w: %w", m, domain.ErrMetricUnavailable, err)
}

func checkPercent(m domain.Metric, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("%s: %w: percentage %v outside [0,100]", m, domain.ErrMetricUnavailable, v)
	}
	return nil
}
