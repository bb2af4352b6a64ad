package domain

import "errors"

// Sentinel errors for classifying dashboard failures.
// Components wrap these so callers can decide what is fatal and what
// is recoverable per tick without inspecting error strings.
//
//	return fmt.Errorf("cpu: %w: %w", domain.ErrMetricUnavailable, err)
var (
	// ErrConfig indicates an invalid run configuration. It is only ever
	// returned before the first tick and is the one error that surfaces
	// to the process exit code.
	ErrConfig = errors.New("invalid configuration")

	// ErrMetricUnavailable indicates the metric source could not report
	// a value, or reported one outside its valid range. The current tick
	// is skipped.
	ErrMetricUnavailable = errors.New("metric unavailable")

	// ErrPersistence indicates the report log could not be opened or
	// written. The dashboard keeps rendering.
	ErrPersistence = errors.New("report log unavailable")
)
