// Package render formats samples and their alerts as a dashboard block.
//
// The plain layout is fixed so it can be parsed and compared exactly:
//
//	========== System Resource Dashboard ==========
//	Timestamp   : 2026-10-19 12:00:00
//	CPU Usage   : 28.7%
//	Memory Usage: 62.4% (8.0 GiB used)
//	Disk Usage  : 79.2% (120 GiB used on /)
//	WARNING: CPU usage 85.0% exceeds threshold 80.0%
//	===============================================
//
// Styled adds terminal colors around the same text.
package render

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/sysdash/internal/alert"
	"nathanbeddoewebdev/sysdash/internal/domain"
	"nathanbeddoewebdev/sysdash/internal/render/styles"

	"github.com/dustin/go-humanize"
)

const title = "========== System Resource Dashboard =========="

var footer = strings.Repeat("=", len(title))

// labelWidth aligns the colons of all value lines.
const labelWidth = len("Memory Usage")

// Renderer formats a sample and its alerts as a text block.
type Renderer interface {
	Render(sample domain.Sample, alerts []domain.AlertEvent) string
}

// Plain renders uncolored text.
type Plain struct{}

// Render implements Renderer.
func (Plain) Render(sample domain.Sample, alerts []domain.AlertEvent) string {
	return build(sample, alerts, plainPainter{})
}

// Styled renders text colored for a terminal. Values are colored by how
// close they are to their threshold.
type Styled struct {
	Thresholds alert.Thresholds
}

// Render implements Renderer.
func (s Styled) Render(sample domain.Sample, alerts []domain.AlertEvent) string {
	return build(sample, alerts, styledPainter{thresholds: s.Thresholds})
}

// WarningLine returns the text of the dashboard line for one alert.
func WarningLine(a domain.AlertEvent) string {
	return fmt.Sprintf("WARNING: %s usage %s%% exceeds threshold %s%%",
		a.Metric.Label(), domain.FormatPercent(a.Observed), domain.FormatPercent(a.Threshold))
}

// painter decorates the fragments of a dashboard block.
type painter interface {
	banner(s string) string
	label(s string) string
	usage(m domain.Metric, percent float64, s string) string
	detail(s string) string
	warning(s string) string
}

func build(sample domain.Sample, alerts []domain.AlertEvent, p painter) string {
	var b strings.Builder

	line := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", p.label(fmt.Sprintf("%-*s", labelWidth, label)), value)
	}
	percent := func(m domain.Metric) string {
		v := sample.Percent(m)
		return p.usage(m, v, domain.FormatPercent(v)+"%")
	}

	b.WriteString(p.banner(title) + "\n")
	line("Timestamp", sample.FormattedTime())
	line("CPU Usage", percent(domain.MetricCPU))
	line("Memory Usage", percent(domain.MetricMemory)+" "+
		p.detail(fmt.Sprintf("(%s used)", humanize.IBytes(sample.Memory.UsedBytes))))
	line("Disk Usage", percent(domain.MetricDisk)+" "+
		p.detail(fmt.Sprintf("(%s used on %s)", humanize.IBytes(sample.Disk.UsedBytes), sample.MountPoint)))
	for _, a := range alerts {
		b.WriteString(p.warning(WarningLine(a)) + "\n")
	}
	b.WriteString(p.banner(footer) + "\n")

	return b.String()
}

type plainPainter struct{}

func (plainPainter) banner(s string) string                            { return s }
func (plainPainter) label(s string) string                             { return s }
func (plainPainter) usage(_ domain.Metric, _ float64, s string) string { return s }
func (plainPainter) detail(s string) string                            { return s }
func (plainPainter) warning(s string) string                           { return s }

type styledPainter struct {
	thresholds alert.Thresholds
}

func (p styledPainter) banner(s string) string { return styles.Banner.Render(s) }
func (p styledPainter) label(s string) string  { return styles.Label.Render(s) }
func (p styledPainter) detail(s string) string { return styles.MutedText.Render(s) }
func (p styledPainter) warning(s string) string {
	return styles.WarningText.Render(s)
}

func (p styledPainter) usage(m domain.Metric, percent float64, s string) string {
	threshold, ok := p.thresholds[m]
	return styles.UsageStyle(percent, threshold, ok).Render(s)
}
