package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/driftlock/kestrel/internal/board"
	"github.com/driftlock/kestrel/internal/logging"
)

// planFlags holds the flag values for the plan command.
type planFlags struct {
	Workspace string // --workspace <id|name>
	JSON      bool   // --json for structured output
}

// planOutput is the JSON shape of a completed plan run.
type planOutput struct {
	Workspace        string   `json:"workspace"`
	CompletionOrder  []string `json:"completion_order"`
	InitiallyBlocked []string `json:"initially_blocked"`
	Unreachable      []string `json:"unreachable,omitempty"`
}

func newPlanCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Simulate the board and print the completion order",
		Long: `Run the execution simulator to exhaustion: repeatedly complete the
highest-priority eligible task in a shadow overlay, re-resolving blocked
tasks after each completion. Real task state is never modified.

The output shows the completion order, which tasks were blocked before the
run, and any tasks that can never complete (dependency cycles).`,
		Example: `  # Plan the default workspace
  kestrel plan

  # Plan a specific workspace as JSON
  kestrel plan --workspace home --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Workspace, "workspace", "w", "", "Workspace ID or name (default: configured default, then first board)")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output structured JSON to stdout")

	return cmd
}

func init() {
	rootCmd.AddCommand(newPlanCmd())
}

func runPlan(cmd *cobra.Command, flags planFlags) error {
	logger := logging.New("plan")

	lb, err := loadBoard(flags.Workspace)
	if err != nil {
		return err
	}

	ws := lb.Workspace
	tasks := ws.Tasks(time.Now())
	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.DisplayTitle()
	}

	sim := board.NewSimulation(func() []board.Task { return tasks })
	order := sim.Run()
	logger.Debug("plan complete", "workspace", ws.ID, "completed", len(order))

	out := planOutput{
		Workspace:        ws.Name,
		CompletionOrder:  order,
		InitiallyBlocked: sim.InitiallyBlocked(),
		Unreachable:      unreachable(tasks, order),
	}

	if flags.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := cmd.OutOrStdout()
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	muted := lipgloss.NewStyle().Foreground(colorMuted)
	warn := lipgloss.NewStyle().Foreground(colorWarning)

	fmt.Fprintln(w, title.Render("Plan for "+ws.Name))
	if len(out.CompletionOrder) == 0 {
		fmt.Fprintln(w, muted.Render("  nothing to do"))
	}
	for i, id := range out.CompletionOrder {
		line := fmt.Sprintf("  %2d. %s", i+1, titles[id])
		if wasBlocked(out.InitiallyBlocked, id) {
			line += muted.Render("  (unblocked during the run)")
		}
		fmt.Fprintln(w, line)
	}
	if len(out.Unreachable) > 0 {
		fmt.Fprintln(w, warn.Render("Never completes (dependency cycle?):"))
		for _, id := range out.Unreachable {
			fmt.Fprintf(w, "  - %s\n", titles[id])
		}
	}
	return nil
}

// unreachable lists tasks that were neither done at the start nor completed
// by the run: members of dependency cycles, or tasks gated on them.
func unreachable(tasks []board.Task, order []string) []string {
	completed := make(map[string]bool, len(order))
	for _, id := range order {
		completed[id] = true
	}

	var stuck []string
	for _, t := range tasks {
		if !t.IsDone() && !completed[t.ID] {
			stuck = append(stuck, t.ID)
		}
	}
	return stuck
}

func wasBlocked(blocked []string, id string) bool {
	for _, b := range blocked {
		if b == id {
			return true
		}
	}
	return false
}
