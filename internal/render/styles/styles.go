package styles

import "github.com/charmbracelet/lipgloss"

// --- Typography ---

var (
	// Banner is used for the dashboard header and footer rules.
	Banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	// Label is used for metric names.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// Value is used for values that carry no utilization level.
	Value = lipgloss.NewStyle().
		Foreground(White)

	// MutedText is for secondary details such as byte amounts.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// WarningText is for threshold alerts.
	WarningText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)
)

// warnMargin is how many percentage points below a threshold a value is
// shown as approaching it.
const warnMargin = 10.0

// UsageStyle returns the style for a utilization percentage. Without a
// threshold the value is shown neutrally.
func UsageStyle(percent, threshold float64, hasThreshold bool) lipgloss.Style {
	switch {
	case !hasThreshold:
		return Value
	case percent > threshold:
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	case percent > threshold-warnMargin:
		return lipgloss.NewStyle().Foreground(Yellow)
	default:
		return lipgloss.NewStyle().Foreground(Green)
	}
}
