package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/driftlock/kestrel/internal/board"
	"github.com/driftlock/kestrel/internal/buildinfo"
	"github.com/driftlock/kestrel/internal/logging"
	"github.com/driftlock/kestrel/internal/tui"
)

var boardWorkspace string

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Launch the interactive task board",
		Long: `Launch the interactive Kestrel board.

The board shows the ranked task list with live priorities, a detail panel
for the selected task, and an execution simulator. Press ? inside the board
for keyboard shortcuts. Running kestrel with no subcommand opens the board
as well.`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}

	cmd.Flags().StringVarP(&boardWorkspace, "workspace", "w", "", "Workspace ID or name")

	return cmd
}

func init() {
	rootCmd.AddCommand(newBoardCmd())
}

// runBoard loads the selected workspace, builds a simulation over a source
// that re-reads the board file, and hands both to the TUI. It is also the
// root command's RunE.
func runBoard(cmd *cobra.Command, _ []string) error {
	logger := logging.New("board")

	lb, err := loadBoard(boardWorkspace)
	if err != nil {
		return err
	}
	ws := lb.Workspace

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sims := board.NewSimStore()
	sim := sims.Get(ws.ID, lb.sourceFor(ws))
	sim.SetTickRate(lb.Config.Simulation.TickRate())
	defer sims.Dispose(ws.ID)

	info := buildinfo.GetInfo()
	logger.Info("launching board",
		"version", info.Version,
		"workspace", ws.ID,
		"tasks", len(ws.Records),
	)

	return tui.RunTUI(tui.AppConfig{
		Version:       info.Version,
		WorkspaceName: ws.Name,
		Sim:           sim,
		Source:        lb.sourceFor(ws),
		Ctx:           ctx,
	})
}
