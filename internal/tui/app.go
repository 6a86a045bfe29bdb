package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftlock/kestrel/internal/board"
	"github.com/driftlock/kestrel/internal/logging"
)

// refreshInterval is how often the board re-reads its source while idle, so
// deadline-driven urgency drifts with the clock.
const refreshInterval = time.Second

// AppConfig holds configuration for the board application.
type AppConfig struct {
	// Version is the Kestrel semantic version string.
	Version string
	// WorkspaceName labels the title bar.
	WorkspaceName string
	// Sim drives the what-if execution panel.
	Sim *board.Simulation
	// Source supplies the current task set; it is read on every refresh.
	Source board.SourceFunc
	// Ctx cancels the snapshot bridge when the program exits.
	Ctx context.Context

	snapshots <-chan board.Snapshot
}

// App is the top-level Bubble Tea model for the Kestrel board. It renders
// the ranked task list with a detail panel and the simulation panel, and
// forwards control keys to the simulation.
type App struct {
	config  AppConfig
	theme   Theme
	keyMap  KeyMap
	help    HelpOverlay
	history viewport.Model

	width    int
	height   int
	ready    bool
	quitting bool

	ranked   []board.Annotated
	selected int
	snapshot board.Snapshot
	lastErr  string
}

// NewApp constructs an App with the default theme and keymap. The initial
// task set is read immediately so the first frame is populated.
func NewApp(cfg AppConfig) App {
	a := App{
		config:  cfg,
		theme:   DefaultTheme(),
		keyMap:  DefaultKeyMap(),
		history: viewport.New(0, 0),
	}
	a.help = NewHelpOverlay(a.theme, a.keyMap)
	a.snapshot = cfg.Sim.Current()
	a.refresh()
	return a
}

// Init starts the snapshot bridge and the refresh ticker.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		SnapshotCmd(a.config.Ctx, a.config.snapshots),
		TickEvery(refreshInterval),
	)
}

// Update dispatches incoming messages and returns the updated model plus any
// follow-up command.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.help.IsVisible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			a.help, cmd = a.help.Update(msg)
			return a, cmd
		}
	}

	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.ready = true
		a.help.SetDimensions(m.Width, m.Height)
		a.sizeHistory()
		return a, nil

	case SimSnapshotMsg:
		a.snapshot = m.Snapshot
		a.refresh()
		return a, SnapshotCmd(a.config.Ctx, a.config.snapshots)

	case TickMsg:
		a.refresh()
		return a, TickEvery(refreshInterval)

	case ErrorMsg:
		a.lastErr = fmt.Sprintf("%s: %s", m.Source, m.Detail)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)
	}

	return a, nil
}

// handleKey processes a key press against the keymap.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keyMap.Quit):
		a.quitting = true
		a.config.Sim.Pause()
		return a, tea.Quit

	case key.Matches(msg, a.keyMap.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keyMap.Toggle):
		if a.snapshot.Playing {
			a.config.Sim.Pause()
		} else {
			a.config.Sim.Start()
		}
		return a, nil

	case key.Matches(msg, a.keyMap.Step):
		a.config.Sim.Step()
		return a, nil

	case key.Matches(msg, a.keyMap.Reset):
		a.config.Sim.Reset()
		return a, nil

	case key.Matches(msg, a.keyMap.Faster):
		a.config.Sim.SetTickRate(a.config.Sim.TickRate() / 2)
		return a, nil

	case key.Matches(msg, a.keyMap.Slower):
		a.config.Sim.SetTickRate(a.config.Sim.TickRate() * 2)
		return a, nil

	case key.Matches(msg, a.keyMap.Refresh):
		a.refresh()
		return a, nil

	case key.Matches(msg, a.keyMap.Up):
		a.selected = clampIndex(a.selected-1, len(a.ranked))
		return a, nil

	case key.Matches(msg, a.keyMap.Down):
		a.selected = clampIndex(a.selected+1, len(a.ranked))
		return a, nil

	case key.Matches(msg, a.keyMap.Home):
		a.selected = 0
		return a, nil

	case key.Matches(msg, a.keyMap.End):
		a.selected = clampIndex(len(a.ranked)-1, len(a.ranked))
		return a, nil
	}

	return a, nil
}

// refresh re-reads the source, applies the simulation overlay, and re-ranks.
func (a *App) refresh() {
	overlay := make(board.CompletedSet, len(a.snapshot.CompletedIDs))
	for _, id := range a.snapshot.CompletedIDs {
		overlay[id] = true
	}
	a.ranked = board.Rank(board.Annotate(a.config.Source(), overlay))
	a.selected = clampIndex(a.selected, len(a.ranked))
	a.history.SetContent(a.historyContent())
	a.history.GotoBottom()
}

// clampIndex keeps a selection index inside [0, n).
func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// View renders the complete UI.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Initializing Kestrel..."
	}
	if a.width < 80 || a.height < 20 {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning).
			Render("Terminal too small. Please resize to at least 80x20.")
	}
	if a.help.IsVisible() {
		return a.help.View()
	}

	titleBar := a.renderTitleBar()
	statusBar := a.renderStatusBar()

	bodyHeight := a.height - lipgloss.Height(titleBar) - lipgloss.Height(statusBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	leftWidth := a.width * 3 / 5
	rightWidth := a.width - leftWidth

	tasks := a.renderTaskPanel(leftWidth, bodyHeight)
	right := lipgloss.JoinVertical(lipgloss.Left,
		a.renderDetailPanel(rightWidth, bodyHeight/2),
		a.renderSimPanel(rightWidth, bodyHeight-bodyHeight/2),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, tasks, right)
	return lipgloss.JoinVertical(lipgloss.Left, titleBar, body, statusBar)
}

// renderTitleBar builds a full-width title bar with version and workspace.
func (a App) renderTitleBar() string {
	title := fmt.Sprintf("Kestrel v%s — Task Board", a.config.Version)
	if a.config.WorkspaceName != "" {
		title = fmt.Sprintf("%s  |  %s", title, a.config.WorkspaceName)
	}
	return a.theme.TitleBar.Width(a.width).Render(title)
}

// renderTaskPanel renders the ranked task table.
func (a App) renderTaskPanel(width, height int) string {
	innerWidth := width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}

	var sb strings.Builder
	sb.WriteString(a.theme.PanelTitle.Render("Tasks"))
	sb.WriteString("\n\n")

	header := fmt.Sprintf("%-4s %-9s %-11s %s", "#", "PRIORITY", "STATUS", "TITLE")
	sb.WriteString(a.theme.RowBlocked.Render(truncate(header, innerWidth)))
	sb.WriteString("\n")

	maxRows := height - 5
	for i, t := range a.ranked {
		if i >= maxRows {
			sb.WriteString(a.theme.RowBlocked.Render(
				fmt.Sprintf("  … %d more", len(a.ranked)-maxRows)))
			break
		}
		sb.WriteString(a.renderTaskRow(i, t, innerWidth))
		sb.WriteString("\n")
	}
	if len(a.ranked) == 0 {
		sb.WriteString(a.theme.RowBlocked.Render("No tasks in this workspace."))
	}

	style := a.theme.PanelFocused
	return style.Width(width - 2).Height(height - 2).Render(sb.String())
}

// renderTaskRow renders one line of the task table.
func (a App) renderTaskRow(i int, t board.Annotated, width int) string {
	line := fmt.Sprintf("%-4d %-9s %-11s %s",
		i+1,
		formatPriority(t.ComputedPriority),
		string(t.Effective),
		t.Task.DisplayTitle(),
	)
	line = truncate(line, width)

	if i == a.selected {
		return a.theme.RowSelected.Render(line)
	}
	if t.Blocked() {
		return a.theme.RowBlocked.Render(line)
	}
	return a.theme.RowNormal.Render(line)
}

// renderDetailPanel shows the selected task's computed fields.
func (a App) renderDetailPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(a.theme.PanelTitle.Render("Details"))
	sb.WriteString("\n\n")

	if len(a.ranked) == 0 {
		sb.WriteString(a.theme.RowBlocked.Render("Nothing selected."))
	} else {
		t := a.ranked[a.selected]
		kv := func(k, v string) {
			sb.WriteString(a.theme.StatusKey.Render(k + ": "))
			sb.WriteString(v)
			sb.WriteString("\n")
		}
		kv("Title", t.Task.DisplayTitle())
		kv("ID", t.Task.ID)
		kv("Status", a.theme.statusStyle(string(t.Effective)).Render(string(t.Effective)))
		kv("Priority", a.theme.Priority.Render(formatPriority(t.ComputedPriority)))
		kv("Urgency", fmt.Sprintf("%.4f", t.Urgency))
		kv("Importance", fmt.Sprintf("%.1f", t.Task.Importance))
		kv("Effort", fmt.Sprintf("%.1f", t.Task.Effort))
		if t.BlockedReason != "" {
			sb.WriteString(a.theme.Reason.Render(t.BlockedReason))
			sb.WriteString("\n")
		}
	}

	return a.theme.PanelBorder.Width(width - 2).Height(height - 2).Render(sb.String())
}

// renderSimPanel shows the simulation state and its completion history.
func (a App) renderSimPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(a.theme.PanelTitle.Render("Simulation"))
	sb.WriteString("  ")
	if a.snapshot.Playing {
		sb.WriteString(a.theme.SimPlaying.Render("▶ playing"))
	} else {
		sb.WriteString(a.theme.SimPaused.Render("⏸ paused"))
	}
	sb.WriteString(a.theme.StatusValue.Render(
		fmt.Sprintf("  tick %s", a.config.Sim.TickRate())))
	sb.WriteString("\n\n")
	sb.WriteString(a.history.View())

	return a.theme.PanelBorder.Width(width - 2).Height(height - 2).Render(sb.String())
}

// historyContent builds the completion log shown in the simulation panel.
func (a App) historyContent() string {
	if len(a.snapshot.CompletedIDs) == 0 {
		return a.theme.StatusValue.Render("No completions yet. Press space to run.")
	}

	titles := make(map[string]string)
	for _, t := range a.ranked {
		titles[t.Task.ID] = t.Task.DisplayTitle()
	}

	var sb strings.Builder
	for i, id := range a.snapshot.CompletedIDs {
		title := titles[id]
		if title == "" {
			title = id
		}
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, a.theme.StatusDone.Render(title)))
	}
	return sb.String()
}

// sizeHistory fits the history viewport into the simulation panel.
func (a *App) sizeHistory() {
	rightWidth := a.width - a.width*3/5
	bodyHeight := a.height - 2
	simHeight := bodyHeight - bodyHeight/2

	a.history.Width = rightWidth - 6
	a.history.Height = simHeight - 6
	if a.history.Width < 10 {
		a.history.Width = 10
	}
	if a.history.Height < 1 {
		a.history.Height = 1
	}
}

// renderStatusBar builds the bottom hint bar.
func (a App) renderStatusBar() string {
	hints := []string{
		a.theme.StatusKey.Render("space") + " run",
		a.theme.StatusKey.Render("n") + " step",
		a.theme.StatusKey.Render("r") + " reset",
		a.theme.StatusKey.Render("+/-") + " speed",
		a.theme.StatusKey.Render("?") + " help",
		a.theme.StatusKey.Render("q") + " quit",
	}
	line := strings.Join(hints, a.theme.StatusValue.Render("  ·  "))
	if a.lastErr != "" {
		line += "   " + a.theme.Reason.Render(a.lastErr)
	}
	return a.theme.StatusBar.Width(a.width).Render(line)
}

// formatPriority renders a computed priority with fixed precision, clamping
// display of runaway overdue values.
func formatPriority(p float64) string {
	if p > 999 {
		return ">999"
	}
	return fmt.Sprintf("%.3f", p)
}

// truncate cuts s to at most width runes, appending an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// RunTUI wires the simulation into a snapshot channel, creates a full-screen
// tea.Program, and runs it to completion.
func RunTUI(cfg AppConfig) error {
	logger := logging.New("tui")
	logger.Info("starting board", "version", cfg.Version, "workspace", cfg.WorkspaceName)

	snapshots := make(chan board.Snapshot, 64)
	cfg.Sim.Subscribe(func(s board.Snapshot) {
		select {
		case snapshots <- s:
		default:
			// A full channel means the UI is behind; dropping an
			// intermediate snapshot is fine because the next one
			// carries the whole state.
		}
	})
	cfg.snapshots = snapshots

	p := tea.NewProgram(
		NewApp(cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board UI: %w", err)
	}
	return nil
}
