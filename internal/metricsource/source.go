// Package metricsource reads CPU, memory and disk utilization from the host.
//
// The dashboard only depends on the Source interface. Host is the production
// implementation backed by gopsutil; tests substitute their own.
package metricsource

import (
	"context"
	"fmt"
	"time"

	"nathanbeddoewebdev/sysdash/internal/domain"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Source supplies raw resource statistics.
type Source interface {
	// CPUPercent measures overall CPU utilization over window. A non-zero
	// window blocks for that long.
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)

	// MemoryStats returns used virtual memory.
	MemoryStats(ctx context.Context) (domain.Usage, error)

	// DiskStats returns usage of the filesystem mounted at mountPoint.
	DiskStats(ctx context.Context, mountPoint string) (domain.Usage, error)
}

// Host reads statistics of the machine the process runs on.
type Host struct{}

// NewHost returns a Source for the local host.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, fmt.Errorf("no cpu counters reported")
	}
	return percents[0], nil
}

func (h *Host) MemoryStats(ctx context.Context) (domain.Usage, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return domain.Usage{}, err
	}
	return domain.Usage{UsedBytes: v.Used, Percent: v.UsedPercent}, nil
}

func (h *Host) DiskStats(ctx context.Context, mountPoint string) (domain.Usage, error) {
	u, err := disk.UsageWithContext(ctx, mountPoint)
	if err != nil {
		return domain.Usage{}, err
	}
	return domain.Usage{UsedBytes: u.Used, Percent: u.UsedPercent}, nil
}
