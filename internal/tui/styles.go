package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ColorPrimary is the main accent color used for titles and highlights.
var ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}

// ColorSuccess marks completed tasks and positive indicators.
var ColorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// ColorWarning marks restricted tasks and cautionary states.
var ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// ColorInfo marks ongoing tasks.
var ColorInfo = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// ColorMuted is a subdued foreground color for secondary text.
var ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ColorBorder is the standard panel border color.
var ColorBorder = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}

// ColorHighlight is a background highlight for the selected row.
var ColorHighlight = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// Theme holds the Lipgloss styles for the Kestrel board. Width and Height
// are not set on any theme style; the layout applies those at render time.
type Theme struct {
	TitleBar  lipgloss.Style
	TitleHint lipgloss.Style

	PanelBorder  lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelFocused lipgloss.Style

	RowSelected lipgloss.Style
	RowNormal   lipgloss.Style
	RowBlocked  lipgloss.Style

	StatusTodo       lipgloss.Style
	StatusOngoing    lipgloss.Style
	StatusDone       lipgloss.Style
	StatusRestricted lipgloss.Style

	Priority lipgloss.Style
	Reason   lipgloss.Style

	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	SimPlaying lipgloss.Style
	SimPaused  lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// DefaultTheme returns the default Kestrel theme with adaptive colors.
func DefaultTheme() Theme {
	return Theme{
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		TitleHint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0FF")),

		PanelBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		PanelFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1),

		RowSelected: lipgloss.NewStyle().
			Background(ColorHighlight).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		RowBlocked: lipgloss.NewStyle().
			Foreground(ColorMuted),

		StatusTodo:       lipgloss.NewStyle().Foreground(ColorMuted),
		StatusOngoing:    lipgloss.NewStyle().Foreground(ColorInfo),
		StatusDone:       lipgloss.NewStyle().Foreground(ColorSuccess),
		StatusRestricted: lipgloss.NewStyle().Foreground(ColorWarning),

		Priority: lipgloss.NewStyle().Bold(true),
		Reason: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Italic(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		StatusValue: lipgloss.NewStyle().
			Foreground(ColorMuted),

		SimPlaying: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess),
		SimPaused: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// statusStyle picks the theme style for a canonical status string.
func (t Theme) statusStyle(status string) lipgloss.Style {
	switch status {
	case "done":
		return t.StatusDone
	case "ongoing":
		return t.StatusOngoing
	case "restricted":
		return t.StatusRestricted
	default:
		return t.StatusTodo
	}
}
