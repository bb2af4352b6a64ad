// Package styles provides the color palette and style definitions for
// terminal dashboard output. All visual constants live here so the renderer
// can reference a single source of truth.
package styles

import "github.com/charmbracelet/lipgloss"

// --- Color palette ---

var (
	// Core text
	White = lipgloss.Color("#E2E2E2")
	Gray  = lipgloss.Color("#888888")
	Muted = lipgloss.Color("#555555")

	// Accent
	Blue = lipgloss.Color("#5FAFFF")

	// Utilization levels
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)
