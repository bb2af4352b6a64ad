package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResetValue clears a key so the built-in default applies again.
const ResetValue = "default"

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "cpu-threshold").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config, or
	// the empty string when it is not set.
	Get func(cfg *Config) string

	// Set parses and applies a value for this key to the given Config (in
	// memory only; the caller is responsible for calling Save). Passing
	// ResetValue clears the key.
	Set func(cfg *Config, value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "interval",
		Description: "Seconds to wait between dashboard refreshes",
		Get: func(cfg *Config) string {
			if cfg.IntervalSeconds == 0 {
				return ""
			}
			return strconv.Itoa(cfg.IntervalSeconds)
		},
		Set: func(cfg *Config, v string) error {
			if v == ResetValue {
				cfg.IntervalSeconds = 0
				return nil
			}
			n, err := ParseInterval(v)
			if err != nil {
				return err
			}
			cfg.IntervalSeconds = n
			return nil
		},
	},
	{
		Name:        "mount-point",
		Description: "Filesystem whose usage is reported as disk usage",
		Get:         func(cfg *Config) string { return cfg.MountPoint },
		Set: func(cfg *Config, v string) error {
			if v == ResetValue {
				v = ""
			}
			cfg.MountPoint = v
			return nil
		},
	},
	{
		Name:        "report-path",
		Description: "File that dashboard samples are appended to",
		Get:         func(cfg *Config) string { return cfg.ReportPath },
		Set: func(cfg *Config, v string) error {
			if v == ResetValue {
				v = ""
			}
			cfg.ReportPath = v
			return nil
		},
	},
	{
		Name:        "sample-window",
		Description: "How long CPU utilization is measured for each sample (e.g. 1s, 500ms)",
		Get:         func(cfg *Config) string { return cfg.SampleWindow },
		Set: func(cfg *Config, v string) error {
			if v == ResetValue {
				cfg.SampleWindow = ""
				return nil
			}
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid duration %q", v)
			}
			if d < 0 {
				return fmt.Errorf("sample window must not be negative")
			}
			cfg.SampleWindow = d.String()
			return nil
		},
	},
	thresholdKey("cpu-threshold", "CPU", func(cfg *Config) **float64 { return &cfg.CPUThreshold }),
	thresholdKey("memory-threshold", "memory", func(cfg *Config) **float64 { return &cfg.MemoryThreshold }),
	thresholdKey("disk-threshold", "disk", func(cfg *Config) **float64 { return &cfg.DiskThreshold }),
}

func thresholdKey(name, metric string, field func(cfg *Config) **float64) KeySpec {
	return KeySpec{
		Name:        name,
		Description: fmt.Sprintf("Alert when %s usage exceeds this percentage", metric),
		Get: func(cfg *Config) string {
			p := *field(cfg)
			if p == nil {
				return ""
			}
			return strconv.FormatFloat(*p, 'f', -1, 64)
		},
		Set: func(cfg *Config, v string) error {
			if v == ResetValue {
				*field(cfg) = nil
				return nil
			}
			f, err := ParseThreshold(v)
			if err != nil {
				return err
			}
			*field(cfg) = &f
			return nil
		},
	}
}

// ParseInterval parses a refresh interval given in whole seconds.
func ParseInterval(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("interval must be a whole number of seconds, got %q", v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("interval must be a positive number of seconds, got %d", n)
	}
	return n, nil
}

// ParseThreshold parses an alert threshold percentage.
func ParseThreshold(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("threshold must be a number, got %q", v)
	}
	if f < 0 || f > 100 {
		return 0, fmt.Errorf("threshold must be between 0 and 100, got %v", f)
	}
	return f, nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
