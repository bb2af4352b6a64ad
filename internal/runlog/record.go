package runlog

import "time"

// Run is a persisted summary of one dashboard run.
type Run struct {
	ID             int64     `json:"id" yaml:"id"`
	StartedAt      time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt     time.Time `json:"finished_at" yaml:"finished_at"`
	State          string    `json:"state" yaml:"state"`
	IntervalMs     int64     `json:"interval_ms" yaml:"interval_ms"`
	MaxCycles      int       `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty"`
	Cycles         int       `json:"cycles" yaml:"cycles"`
	SampleFailures int       `json:"sample_failures" yaml:"sample_failures"`
	AppendFailures int       `json:"append_failures" yaml:"append_failures"`
	AlertsRaised   int       `json:"alerts_raised" yaml:"alerts_raised"`
	MountPoint     string    `json:"mount_point" yaml:"mount_point"`
	ReportPath     string    `json:"report_path" yaml:"report_path"`
}

// Duration is the wall-clock length of the run.
func (r Run) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
