// Package cli wires Kestrel's cobra command tree: the interactive board,
// list/status/plan views, and the task mutation commands.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/driftlock/kestrel/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagDir     string
	flagNoColor bool
)

// rootCmd is the base command for Kestrel.
var rootCmd = &cobra.Command{
	Use:   "kestrel",
	Short: "A priority-driven terminal task board",
	Long: `Kestrel is a terminal task board. Tasks carry importance, effort,
deadlines, and dependencies; Kestrel ranks them by computed priority,
explains what is blocked on what, and can simulate the order in which the
board would drain if you always picked the top eligible task.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// When invoked with no subcommand, launch the interactive board.
	// Help is still available via `kestrel --help` / `kestrel -h`.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd, args)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("KESTREL_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("KESTREL_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("KESTREL_NO_COLOR") != "") {
			flagNoColor = true
		}

		jsonFormat := os.Getenv("KESTREL_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)

		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		if flagDir != "" {
			if err := os.Chdir(flagDir); err != nil {
				return fmt.Errorf("changing directory to %s: %w", flagDir, err)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: KESTREL_VERBOSE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: KESTREL_QUIET)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to kestrel.toml config file")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Override working directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: KESTREL_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd exposes the root command tree for external tools such as the
// completion and man page generators.
func NewRootCmd() *cobra.Command {
	return rootCmd
}
