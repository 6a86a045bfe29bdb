package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/driftlock/kestrel/internal/board"
)

// listFlags holds the flag values for the list command.
type listFlags struct {
	Workspace string // --workspace <id|name>
	Status    string // --status <todo|ongoing|done|restricted>
	Blocked   bool   // --blocked: only restricted tasks
	JSON      bool   // --json for structured output
}

func newListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the ranked task list for a workspace",
		Long: `Rank a workspace's tasks by computed priority and print them.

Unblocked tasks come first, highest priority at the top; restricted tasks
follow with the dependencies they are waiting on. Use --json for structured
output suitable for scripting.`,
		Example: `  # Rank the default workspace
  kestrel list

  # Rank a specific workspace
  kestrel list --workspace home

  # Only tasks blocked on dependencies
  kestrel list --blocked

  # Structured output
  kestrel list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Workspace, "workspace", "w", "", "Workspace ID or name (default: configured default, then first board)")
	cmd.Flags().StringVar(&flags.Status, "status", "", "Filter by effective status (todo|ongoing|done|restricted)")
	cmd.Flags().BoolVar(&flags.Blocked, "blocked", false, "Show only tasks blocked on dependencies")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output structured JSON to stdout")

	return cmd
}

func init() {
	rootCmd.AddCommand(newListCmd())
}

func runList(cmd *cobra.Command, flags listFlags) error {
	lb, err := loadBoard(flags.Workspace)
	if err != nil {
		return err
	}

	ranked := board.Rank(lb.annotatedTasks(time.Now()))
	ranked = filterTasks(ranked, flags)

	if flags.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No matching tasks.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTaskTable(lb.Workspace.Name, ranked))
	return nil
}

// filterTasks applies --status and --blocked.
func filterTasks(tasks []board.Annotated, flags listFlags) []board.Annotated {
	if flags.Status == "" && !flags.Blocked {
		return tasks
	}

	want := board.NormalizeStatus(flags.Status)
	var out []board.Annotated
	for _, a := range tasks {
		if flags.Blocked && !a.Blocked() {
			continue
		}
		if flags.Status != "" && a.Effective != want {
			continue
		}
		out = append(out, a)
	}
	return out
}

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	listCellStyle   = lipgloss.NewStyle().PaddingRight(2)
	listMutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// renderTaskTable renders ranked tasks as an aligned text table with a
// workspace title line.
func renderTaskTable(workspaceName string, tasks []board.Annotated) string {
	var b strings.Builder

	b.WriteString(listHeaderStyle.Render(workspaceName))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(tasks)+1)
	rows = append(rows, []string{"PRIORITY", "STATUS", "TITLE", "WAITING ON"})
	for _, a := range tasks {
		rows = append(rows, []string{
			formatPriority(a.ComputedPriority),
			string(a.Effective),
			a.DisplayTitle(),
			a.BlockedReason,
		})
	}

	widths := columnWidths(rows)
	for i, row := range rows {
		var line strings.Builder
		for col, cell := range row {
			padded := cell + strings.Repeat(" ", widths[col]-len([]rune(cell)))
			line.WriteString(listCellStyle.Render(padded))
		}
		rendered := strings.TrimRight(line.String(), " ")
		if i == 0 {
			rendered = listMutedStyle.Render(rendered)
		}
		b.WriteString(rendered)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// columnWidths computes the max rune width per column.
func columnWidths(rows [][]string) []int {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for col, cell := range row {
			if n := len([]rune(cell)); n > widths[col] {
				widths[col] = n
			}
		}
	}
	return widths
}

// formatPriority renders a computed priority for display. Values are
// unbounded above, so very large ones are clamped for presentation only.
func formatPriority(p float64) string {
	if p > 999 {
		return ">999"
	}
	return fmt.Sprintf("%.3f", p)
}
