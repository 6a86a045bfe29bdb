package cli

import "github.com/charmbracelet/lipgloss"

// Shared colors for CLI output. The TUI keeps its own richer theme; these
// cover the non-interactive commands.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)
