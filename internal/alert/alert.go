// Package alert compares samples against static utilization thresholds.
package alert

import "nathanbeddoewebdev/sysdash/internal/domain"

// DefaultCPUThreshold is the CPU percentage above which an alert fires when
// no thresholds are configured.
const DefaultCPUThreshold = 80.0

// Thresholds maps a metric to the percentage above which it alerts.
// Metrics missing from the map never alert.
type Thresholds map[domain.Metric]float64

// DefaultThresholds returns the built-in threshold set.
func DefaultThresholds() Thresholds {
	return Thresholds{domain.MetricCPU: DefaultCPUThreshold}
}

// Evaluate returns one event per metric whose value is strictly greater
// than its threshold. Events are ordered cpu, memory, disk.
func Evaluate(sample domain.Sample, thresholds Thresholds) []domain.AlertEvent {
	var events []domain.AlertEvent
	for _, m := range domain.Metrics {
		threshold, ok := thresholds[m]
		if !ok {
			continue
		}
		observed := sample.Percent(m)
		if observed > threshold {
			events = append(events, domain.AlertEvent{
				Metric:    m,
				Observed:  observed,
				Threshold: threshold,
			})
		}
	}
	return events
}
