package config

import (
	"errors"
	"math"
	"testing"
	"time"

	"nathanbeddoewebdev/sysdash/internal/alert"
	"nathanbeddoewebdev/sysdash/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRunConfig(t *testing.T) {
	rc := DefaultRunConfig()

	if rc.Interval != 5*time.Second {
		t.Errorf("Interval = %s, want 5s", rc.Interval)
	}
	if rc.Bounded() {
		t.Error("expected default run to be unbounded")
	}
	if diff := cmp.Diff(alert.Thresholds{domain.MetricCPU: 80}, rc.Thresholds); diff != "" {
		t.Errorf("thresholds mismatch (-want +got):\n%s", diff)
	}
	if rc.ReportPath != "dashboard_report.txt" {
		t.Errorf("ReportPath = %q, want dashboard_report.txt", rc.ReportPath)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfig_RunConfigOverlay(t *testing.T) {
	cfg := &Config{
		IntervalSeconds: 2,
		MountPoint:      "/data",
		ReportPath:      "/var/log/report.txt",
		SampleWindow:    "250ms",
		MemoryThreshold: float(90),
	}

	rc, err := cfg.RunConfig()
	if err != nil {
		t.Fatalf("RunConfig failed: %v", err)
	}

	want := RunConfig{
		Interval:     2 * time.Second,
		Thresholds:   alert.Thresholds{domain.MetricCPU: 80, domain.MetricMemory: 90},
		MountPoint:   "/data",
		ReportPath:   "/var/log/report.txt",
		SampleWindow: 250 * time.Millisecond,
	}
	if diff := cmp.Diff(want, rc); diff != "" {
		t.Errorf("run config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_RunConfigBadSampleWindow(t *testing.T) {
	_, err := (&Config{SampleWindow: "later"}).RunConfig()
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(rc *RunConfig)
		wantErr bool
	}{
		{"zero interval allowed", func(rc *RunConfig) { rc.Interval = 0 }, false},
		{"bounded cycles", func(rc *RunConfig) { rc.MaxCycles = Cycles(3) }, false},
		{"negative interval", func(rc *RunConfig) { rc.Interval = -time.Second }, true},
		{"zero cycles", func(rc *RunConfig) { rc.MaxCycles = Cycles(0) }, true},
		{"negative cycles", func(rc *RunConfig) { rc.MaxCycles = Cycles(-1) }, true},
		{"negative window", func(rc *RunConfig) { rc.SampleWindow = -time.Millisecond }, true},
		{"empty mount", func(rc *RunConfig) { rc.MountPoint = "" }, true},
		{"empty report path", func(rc *RunConfig) { rc.ReportPath = "" }, true},
		{"threshold above 100", func(rc *RunConfig) { rc.Thresholds[domain.MetricDisk] = 101 }, true},
		{"threshold NaN", func(rc *RunConfig) { rc.Thresholds[domain.MetricCPU] = math.NaN() }, true},
		{"no thresholds", func(rc *RunConfig) { rc.Thresholds = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := DefaultRunConfig()
			tt.modify(&rc)

			err := rc.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrConfig) {
					t.Errorf("expected ErrConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
