package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

// resetRootCmd resets all global flag values and Cobra's internal "Changed"
// tracking to pristine state. This must be called at the start of every test
// that invokes Execute() or manipulates rootCmd.
func resetRootCmd(t *testing.T) {
	t.Helper()
	flagVerbose = false
	flagQuiet = false
	flagConfig = ""
	flagDir = ""
	flagNoColor = false
	boardWorkspace = ""
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "kestrel", rootCmd.Use)
}

func TestRootCmd_Short(t *testing.T) {
	assert.Equal(t, "A priority-driven terminal task board", rootCmd.Short)
}

func TestRootCmd_Long(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "computed priority")
	assert.Contains(t, rootCmd.Long, "dependencies")
}

func TestRootCmd_SilenceUsage(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage, "SilenceUsage must be true")
}

func TestRootCmd_SilenceErrors(t *testing.T) {
	assert.True(t, rootCmd.SilenceErrors, "SilenceErrors must be true")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "config", "dir", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	want := map[string]bool{
		"board":      false,
		"list":       false,
		"status":     false,
		"plan":       false,
		"add":        false,
		"advance":    false,
		"version":    false,
		"completion": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "subcommand %s not registered", name)
	}
}

func TestNewRootCmd_ReturnsRoot(t *testing.T) {
	assert.Same(t, rootCmd, NewRootCmd())
}
