package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/driftlock/kestrel/internal/board"
	"github.com/driftlock/kestrel/internal/workspace"
)

// statusFlags holds the flag values for the status command.
type statusFlags struct {
	Workspace string // --workspace, empty means every board
	JSON      bool   // --json for structured output
}

// workspaceStatus is the aggregate view of one workspace.
type workspaceStatus struct {
	Workspace  string  `json:"workspace"`
	Total      int     `json:"total"`
	Done       int     `json:"done"`
	Ongoing    int     `json:"ongoing"`
	Todo       int     `json:"todo"`
	Restricted int     `json:"restricted"`
	Percent    float64 `json:"percent"`
}

func newStatusCmd() *cobra.Command {
	var flags statusFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-workspace progress with progress bars",
		Long: `Display aggregate task counts for every workspace, or one workspace with
--workspace. Each board shows a progress bar, the done fraction, and a
breakdown by effective status (restricted means blocked on dependencies).`,
		Example: `  # All workspaces
  kestrel status

  # One workspace
  kestrel status --workspace home

  # Structured output
  kestrel status --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Workspace, "workspace", "w", "", "Workspace ID or name (default: all)")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output structured JSON to stdout")

	return cmd
}

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func runStatus(cmd *cobra.Command, flags statusFlags) error {
	lb, err := loadBoard(flags.Workspace)
	if err != nil {
		return err
	}

	targets := lb.Workspaces
	if flags.Workspace != "" {
		targets = []*workspace.Workspace{lb.Workspace}
	}

	now := time.Now()
	statuses := make([]workspaceStatus, len(targets))
	for i, ws := range targets {
		statuses[i] = summarize(ws, now)
	}

	if flags.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30

	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	countStyle := lipgloss.NewStyle().Foreground(colorMuted)

	out := cmd.OutOrStdout()
	for _, st := range statuses {
		fmt.Fprintln(out, nameStyle.Render(st.Workspace))
		fmt.Fprintf(out, "  %s %d/%d done\n", bar.ViewAs(st.Percent), st.Done, st.Total)
		fmt.Fprintln(out, "  "+countStyle.Render(fmt.Sprintf(
			"todo %d · ongoing %d · restricted %d", st.Todo, st.Ongoing, st.Restricted)))
		fmt.Fprintln(out)
	}
	return nil
}

// summarize computes aggregate effective-status counts for one workspace.
func summarize(ws *workspace.Workspace, now time.Time) workspaceStatus {
	st := workspaceStatus{Workspace: ws.Name}

	for _, a := range board.Annotate(ws.Tasks(now), nil) {
		st.Total++
		switch a.Effective {
		case board.StatusDone:
			st.Done++
		case board.StatusOngoing:
			st.Ongoing++
		case board.StatusRestricted:
			st.Restricted++
		default:
			st.Todo++
		}
	}

	if st.Total > 0 {
		st.Percent = float64(st.Done) / float64(st.Total)
	}
	return st
}
