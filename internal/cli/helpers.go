package cli

import (
	"fmt"
	"time"

	"github.com/driftlock/kestrel/internal/board"
	"github.com/driftlock/kestrel/internal/config"
	"github.com/driftlock/kestrel/internal/workspace"
)

// loadedBoard bundles everything a command needs to work on one workspace.
type loadedBoard struct {
	Config     *config.Config
	Store      *workspace.Store
	Workspaces []*workspace.Workspace
	Workspace  *workspace.Workspace
}

// loadBoard resolves configuration, loads every board file, and selects the
// workspace named by --workspace (falling back to the configured default,
// then the first board).
func loadBoard(workspaceKey string) (*loadedBoard, error) {
	cfg, _, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store := workspace.NewStore(cfg.Board.BoardsDir, cfg.Board.Pattern)
	workspaces, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading boards: %w", err)
	}

	key := workspaceKey
	if key == "" {
		key = cfg.Board.DefaultWorkspace
	}
	ws, err := workspace.Find(workspaces, key)
	if err != nil {
		return nil, err
	}

	return &loadedBoard{
		Config:     cfg,
		Store:      store,
		Workspaces: workspaces,
		Workspace:  ws,
	}, nil
}

// annotatedTasks runs the engine's evaluation pass over the selected
// workspace as of now.
func (lb *loadedBoard) annotatedTasks(now time.Time) []board.Annotated {
	return board.Annotate(lb.Workspace.Tasks(now), nil)
}

// sourceFor builds a simulation source that re-reads the workspace's board
// file on every call, so a running simulation picks up external edits.
func (lb *loadedBoard) sourceFor(ws *workspace.Workspace) board.SourceFunc {
	store := lb.Store
	path := ws.Path
	return func() []board.Task {
		fresh, err := store.Load(path)
		if err != nil {
			// A transiently unreadable board yields the last-known
			// in-memory records rather than an empty order.
			return ws.Tasks(time.Now())
		}
		return fresh.Tasks(time.Now())
	}
}
