package domain

import (
	"strconv"
	"time"
)

// TimestampLayout is the fixed layout used wherever a sample time is shown
// or persisted.
const TimestampLayout = "2006-01-02 15:04:05"

// Metric names one of the sampled resources.
type Metric string

const (
	// MetricCPU is overall CPU utilization.
	MetricCPU Metric = "cpu"
	// MetricMemory is virtual memory utilization.
	MetricMemory Metric = "memory"
	// MetricDisk is filesystem utilization of the configured mount point.
	MetricDisk Metric = "disk"
)

// Metrics lists every metric in the fixed order used for alerts and output.
var Metrics = []Metric{MetricCPU, MetricMemory, MetricDisk}

// Label returns the human-readable name used in dashboard lines.
func (m Metric) Label() string {
	switch m {
	case MetricCPU:
		return "CPU"
	case MetricMemory:
		return "Memory"
	case MetricDisk:
		return "Disk"
	default:
		return string(m)
	}
}

// Usage is a used-bytes/percent pair as reported for memory or a disk.
type Usage struct {
	UsedBytes uint64  `json:"used_bytes"`
	Percent   float64 `json:"percent"`
}

// Sample is one point-in-time capture of CPU, memory and disk usage.
// It is passed by value and never modified after the sampler builds it.
type Sample struct {
	Timestamp  time.Time `json:"timestamp"`
	CPUPercent float64   `json:"cpu_percent"`
	Memory     Usage     `json:"memory"`
	Disk       Usage     `json:"disk"`
	MountPoint string    `json:"mount_point"`
}

// Percent returns the utilization percentage for m.
func (s Sample) Percent(m Metric) float64 {
	switch m {
	case MetricCPU:
		return s.CPUPercent
	case MetricMemory:
		return s.Memory.Percent
	case MetricDisk:
		return s.Disk.Percent
	default:
		return 0
	}
}

// FormattedTime returns the sample timestamp in TimestampLayout.
func (s Sample) FormattedTime() string {
	return s.Timestamp.Format(TimestampLayout)
}

// FormatPercent renders a percentage with one decimal place, without the
// percent sign.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// AlertEvent reports a metric observed above its configured threshold.
type AlertEvent struct {
	Metric    Metric
	Observed  float64
	Threshold float64
}
