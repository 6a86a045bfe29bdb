package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/driftlock/kestrel/internal/board"
	"github.com/driftlock/kestrel/internal/logging"
)

func newAdvanceCmd() *cobra.Command {
	var (
		workspaceKey string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "advance <task>",
		Short: "Advance a task to its next status",
		Long: `Advance a task through its lifecycle: todo -> ongoing -> done.

The task may be named by ID or by title. A task whose dependencies are
unmet is refused unless --force is given; done tasks cannot be advanced.`,
		Example: `  kestrel advance t3
  kestrel advance "Water plants" --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(cmd, workspaceKey, args[0], force)
		},
	}

	cmd.Flags().StringVarP(&workspaceKey, "workspace", "w", "", "Workspace ID or name")
	cmd.Flags().BoolVar(&force, "force", false, "Advance even when dependencies are unmet")

	return cmd
}

func init() {
	rootCmd.AddCommand(newAdvanceCmd())
}

func runAdvance(cmd *cobra.Command, workspaceKey, taskKey string, force bool) error {
	logger := logging.New("advance")

	lb, err := loadBoard(workspaceKey)
	if err != nil {
		return err
	}
	ws := lb.Workspace

	rec := ws.Lookup(taskKey)
	if rec == nil {
		return fmt.Errorf("no task %q in workspace %q", taskKey, ws.ID)
	}

	if !force {
		for _, a := range lb.annotatedTasks(time.Now()) {
			if a.Task.ID == rec.ID && a.Blocked() {
				return fmt.Errorf("task %q is %s: %s (use --force to advance anyway)",
					rec.Title, board.StatusRestricted, a.BlockedReason)
			}
		}
	}

	prev := rec.Status
	next, err := ws.Advance(rec.ID)
	if err != nil {
		return err
	}
	if err := lb.Store.Save(ws); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}

	logger.Info("task advanced", "workspace", ws.ID, "task", rec.ID, "from", prev, "to", next)
	nextLabel := string(next)
	if next == board.StatusDone {
		nextLabel = lipgloss.NewStyle().Foreground(colorSuccess).Render(nextLabel)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", rec.Title, board.NormalizeStatus(prev), nextLabel)
	return nil
}
