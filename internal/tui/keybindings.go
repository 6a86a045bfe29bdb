package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines all keybindings for the board. Global keys are always
// active; navigation keys move the selection in the task panel.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Toggle  key.Binding
	Step    key.Binding
	Reset   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Refresh key.Binding

	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding
}

// DefaultKeyMap returns the default keybinding configuration for the board.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause simulation"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "step once"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset simulation"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster ticks"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower ticks"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload board"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first task"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last task"),
		),
	}
}

// HelpOverlay displays a centered keybinding reference over the board.
type HelpOverlay struct {
	theme   Theme
	keyMap  KeyMap
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a HelpOverlay with the given theme and keymap.
// The overlay starts hidden.
func NewHelpOverlay(theme Theme, keyMap KeyMap) HelpOverlay {
	return HelpOverlay{
		theme:  theme,
		keyMap: keyMap,
	}
}

// SetDimensions updates the terminal dimensions used to center the overlay.
func (h *HelpOverlay) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Toggle flips the visibility of the help overlay.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible reports whether the overlay is currently shown.
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update processes key events while the overlay is visible. Pressing '?' or
// Esc dismisses it; all other keys are consumed without action.
func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, h.keyMap.Help):
			h.visible = false
		case keyMsg.Type == tea.KeyEsc:
			h.visible = false
		}
	}
	return h, nil
}

// View renders the overlay as a full-screen string, or an empty string when
// hidden or before dimensions are known.
func (h HelpOverlay) View() string {
	if !h.visible || h.width == 0 || h.height == 0 {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	boxed := boxStyle.Render(h.buildContent())

	return lipgloss.Place(
		h.width, h.height,
		lipgloss.Center, lipgloss.Center,
		boxed,
	)
}

// buildContent assembles the keybinding table inside the help box.
func (h HelpOverlay) buildContent() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	sb.WriteString(titleStyle.Render("Kestrel — Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSuccess).
		MarginTop(1)

	sb.WriteString(sectionStyle.Render("Simulation"))
	sb.WriteString("\n")
	sb.WriteString(h.bindingLine(h.keyMap.Toggle))
	sb.WriteString(h.bindingLine(h.keyMap.Step))
	sb.WriteString(h.bindingLine(h.keyMap.Reset))
	sb.WriteString(h.bindingLine(h.keyMap.Faster))
	sb.WriteString(h.bindingLine(h.keyMap.Slower))
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("Navigation"))
	sb.WriteString("\n")
	sb.WriteString(h.bindingLine(h.keyMap.Up))
	sb.WriteString(h.bindingLine(h.keyMap.Down))
	sb.WriteString(h.bindingLine(h.keyMap.Home))
	sb.WriteString(h.bindingLine(h.keyMap.End))
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("General"))
	sb.WriteString("\n")
	sb.WriteString(h.bindingLine(h.keyMap.Refresh))
	sb.WriteString(h.bindingLine(h.keyMap.Help))
	sb.WriteString(h.bindingLine(h.keyMap.Quit))
	sb.WriteString("\n")

	hintStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	sb.WriteString(hintStyle.Render("Press ? or Esc to close"))

	return sb.String()
}

// bindingLine formats a single key.Binding as "  KEY  description\n".
func (h HelpOverlay) bindingLine(b key.Binding) string {
	k := h.theme.HelpKey.Render(b.Help().Key)
	d := h.theme.HelpDesc.Render(b.Help().Desc)
	return "  " + k + "  " + d + "\n"
}
