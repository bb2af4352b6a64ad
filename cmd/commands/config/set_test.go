package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/sysdash/internal/config"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_Interval(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "interval", "10")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `interval set to "10"`) {
		t.Errorf("expected confirmation, got: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.IntervalSeconds != 10 {
		t.Errorf("expected IntervalSeconds 10, got %d", cfg.IntervalSeconds)
	}
}

func TestSet_Threshold(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "Memory-Threshold", "90.5")
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.MemoryThreshold == nil || *cfg.MemoryThreshold != 90.5 {
		t.Errorf("expected MemoryThreshold 90.5, got %v", cfg.MemoryThreshold)
	}
}

func TestSet_ResetToDefault(t *testing.T) {
	path := setupTestConfig(t)
	threshold := 50.0
	if err := (&config.Config{CPUThreshold: &threshold}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "set", "cpu-threshold", "default")

	if !strings.Contains(stdout, "cpu-threshold reset to default") {
		t.Errorf("expected reset confirmation, got: %s", stdout)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.CPUThreshold != nil {
		t.Errorf("expected CPUThreshold cleared, got %v", *cfg.CPUThreshold)
	}
}

func TestSet_InvalidValue(t *testing.T) {
	path := setupTestConfig(t)

	_, stderr := execConfig(t, "set", "interval", "0")

	if !strings.Contains(stderr, "invalid value for interval") {
		t.Errorf("expected validation error, got: %s", stderr)
	}
	if _, err := config.LoadFrom(path); err != nil {
		t.Fatalf("config should still load: %v", err)
	}
}

func TestSet_ThresholdOutOfRange(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "disk-threshold", "120")

	if !strings.Contains(stderr, "between 0 and 100") {
		t.Errorf("expected range error, got: %s", stderr)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}
