package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/driftlock/kestrel/internal/logging"
	"github.com/driftlock/kestrel/internal/workspace"
)

// addFlags holds the flag values for the add command. When --title is given
// the interactive form is skipped entirely.
type addFlags struct {
	Workspace  string
	Title      string
	Importance float64
	Effort     float64
	Deadline   string
	DependsOn  []string
}

func newAddCmd() *cobra.Command {
	var flags addFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a workspace",
		Long: `Add a task to a workspace board.

Without flags this opens an interactive form. With --title the task is
created directly from flags, which suits scripting. Deadlines accept either
a duration from now ("36h", "7d" is not supported -- use "168h") or an
RFC 3339 timestamp.`,
		Example: `  # Interactive form
  kestrel add

  # Scripted
  kestrel add --title "Water plants" --importance 2 --deadline 48h --depends-on t1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Workspace, "workspace", "w", "", "Workspace ID or name")
	cmd.Flags().StringVar(&flags.Title, "title", "", "Task title (skips the interactive form)")
	cmd.Flags().Float64Var(&flags.Importance, "importance", 3, "Importance 0-5")
	cmd.Flags().Float64Var(&flags.Effort, "effort", 1, "Effort 0-5")
	cmd.Flags().StringVar(&flags.Deadline, "deadline", "", "Deadline: duration from now (36h) or RFC 3339 timestamp")
	cmd.Flags().StringSliceVar(&flags.DependsOn, "depends-on", nil, "Dependency task IDs or titles")

	return cmd
}

func init() {
	rootCmd.AddCommand(newAddCmd())
}

func runAdd(cmd *cobra.Command, flags addFlags) error {
	logger := logging.New("add")

	lb, err := loadBoard(flags.Workspace)
	if err != nil {
		return err
	}
	ws := lb.Workspace

	rec := workspace.TaskRecord{
		Title:     flags.Title,
		DependsOn: flags.DependsOn,
	}
	importance := flags.Importance
	effort := flags.Effort
	deadlineInput := flags.Deadline

	if flags.Title == "" {
		importance, effort, deadlineInput, err = promptTask(ws, &rec)
		if err != nil {
			return fmt.Errorf("collecting task details: %w", err)
		}
	}

	rec.Importance = &importance
	rec.Effort = &effort

	if deadlineInput != "" {
		deadline, err := parseDeadline(deadlineInput, time.Now())
		if err != nil {
			return err
		}
		rec.Deadline = &deadline
	}

	added := ws.Add(rec)
	if err := lb.Store.Save(ws); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}

	logger.Info("task added", "workspace", ws.ID, "task", added.ID, "title", added.Title)
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Title, added.ID)
	return nil
}

// promptTask runs the interactive form, filling rec and returning the
// numeric and deadline inputs.
func promptTask(ws *workspace.Workspace, rec *workspace.TaskRecord) (importance, effort float64, deadline string, err error) {
	impStr := "3"
	effStr := "1"

	scale := func(label string) []huh.Option[string] {
		opts := make([]huh.Option[string], 0, 6)
		for i := 0; i <= 5; i++ {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d — %s", i, label), strconv.Itoa(i)))
		}
		return opts
	}

	depOptions := make([]huh.Option[string], 0, len(ws.Records))
	for _, r := range ws.Records {
		title := r.Title
		if title == "" {
			title = r.ID
		}
		depOptions = append(depOptions, huh.NewOption(title, r.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title must not be empty")
					}
					return nil
				}).
				Value(&rec.Title),
			huh.NewSelect[string]().
				Title("Importance").
				Options(scale("importance")...).
				Value(&impStr),
			huh.NewSelect[string]().
				Title("Effort").
				Options(scale("effort")...).
				Value(&effStr),
			huh.NewInput().
				Title("Deadline (36h, 2026-09-01T09:00:00Z, or empty)").
				Value(&deadline),
			huh.NewMultiSelect[string]().
				Title("Depends on").
				Options(depOptions...).
				Value(&rec.DependsOn),
		),
	).WithTheme(huh.ThemeCharm())

	if err = form.Run(); err != nil {
		return 0, 0, "", err
	}

	importance, _ = strconv.ParseFloat(impStr, 64)
	effort, _ = strconv.ParseFloat(effStr, 64)
	return importance, effort, deadline, nil
}

// parseDeadline accepts a duration offset from now ("36h") or an RFC 3339
// timestamp.
func parseDeadline(input string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(input); err == nil {
		return now.Add(d), nil
	}
	if ts, err := time.Parse(time.RFC3339, input); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("deadline %q is neither a duration nor an RFC 3339 timestamp", input)
}
