package metricsource

import (
	"context"
	"sync"
	"time"

	"nathanbeddoewebdev/sysdash/internal/domain"
)

// MockSource is a Source returning canned readings. Intended for testing.
//
// CPUPercent is called exactly once per sample, so CPUErrs keys are sample
// numbers (1-based).
type MockSource struct {
	CPU    float64
	Memory domain.Usage
	Disk   domain.Usage

	CPUErrs   map[int]error
	MemoryErr error
	DiskErr   error

	mu        sync.Mutex
	cpuCalls  int
	windows   []time.Duration
	gotMounts []string
}

func (m *MockSource) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	m.mu.Lock()
	m.cpuCalls++
	call := m.cpuCalls
	m.windows = append(m.windows, window)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err, ok := m.CPUErrs[call]; ok {
		return 0, err
	}
	return m.CPU, nil
}

func (m *MockSource) MemoryStats(_ context.Context) (domain.Usage, error) {
	if m.MemoryErr != nil {
		return domain.Usage{}, m.MemoryErr
	}
	return m.Memory, nil
}

func (m *MockSource) DiskStats(_ context.Context, mountPoint string) (domain.Usage, error) {
	m.mu.Lock()
	m.gotMounts = append(m.gotMounts, mountPoint)
	m.mu.Unlock()

	if m.DiskErr != nil {
		return domain.Usage{}, m.DiskErr
	}
	return m.Disk, nil
}

// Calls returns how many samples have been requested so far.
func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpuCalls
}

// Windows returns the CPU measurement windows requested, in call order.
func (m *MockSource) Windows() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.windows...)
}

// Mounts returns the mount points passed to DiskStats, in call order.
func (m *MockSource) Mounts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.gotMounts...)
}
