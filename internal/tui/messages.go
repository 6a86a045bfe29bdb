package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftlock/kestrel/internal/board"
)

// SimSnapshotMsg carries a simulation state change into the update loop.
type SimSnapshotMsg struct {
	Snapshot board.Snapshot
}

// TickMsg is sent periodically to refresh wall-clock-dependent values such
// as deadline-driven urgency.
type TickMsg struct {
	Time time.Time
}

// ErrorMsg represents a non-fatal error to show in the status bar. Fatal
// errors should quit via tea.Quit instead.
type ErrorMsg struct {
	Source string
	Detail string
}

// SnapshotCmd returns a tea.Cmd that reads a single Snapshot from ch and
// converts it to a SimSnapshotMsg. The command sends nil when the channel is
// closed or ctx is done.
//
// Call it again after handling each SimSnapshotMsg to keep draining the
// channel:
//
//	case SimSnapshotMsg:
//	    // handle...
//	    return a, SnapshotCmd(ctx, ch)
func SnapshotCmd(ctx context.Context, ch <-chan board.Snapshot) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-ch:
			if !ok {
				return nil
			}
			return SimSnapshotMsg{Snapshot: snap}
		}
	}
}

// TickEvery returns a tea.Cmd that sends a TickMsg after duration d. The
// Update handler should call TickEvery again upon receiving a TickMsg to
// create recurring ticks.
func TickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
