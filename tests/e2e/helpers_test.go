package e2e_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// testBoard is an isolated directory with a boards/ tree and a built kestrel
// binary.
type testBoard struct {
	Dir        string
	BinaryPath string
	t          *testing.T
}

// newTestBoard builds the kestrel binary into a fresh temp directory and
// returns a testBoard ready for use.
func newTestBoard(t *testing.T) *testBoard {
	t.Helper()

	dir := t.TempDir()

	binary := filepath.Join(dir, "kestrel")
	build := exec.Command("go", "build", "-o", binary, "./cmd/kestrel")
	build.Dir = projectRoot()
	out, err := build.CombinedOutput()
	require.NoError(t, err, "building kestrel: %s", string(out))

	return &testBoard{Dir: dir, BinaryPath: binary, t: t}
}

// projectRoot returns the absolute path to the repository root. It uses
// runtime.Caller(0) to find this source file and navigates two directories up
// (tests/e2e/ -> tests/ -> repo root).
func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

// writeConfig writes content to kestrel.toml in tb.Dir.
func (tb *testBoard) writeConfig(content string) {
	tb.t.Helper()
	err := os.WriteFile(filepath.Join(tb.Dir, "kestrel.toml"), []byte(content), 0o644)
	require.NoError(tb.t, err)
}

// writeBoard writes a board TOML file to boards/<name>.toml.
func (tb *testBoard) writeBoard(name, content string) string {
	tb.t.Helper()
	boardsDir := filepath.Join(tb.Dir, "boards")
	require.NoError(tb.t, os.MkdirAll(boardsDir, 0o755))
	path := filepath.Join(boardsDir, name+".toml")
	require.NoError(tb.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run creates an exec.Cmd for kestrel with color disabled.
func (tb *testBoard) run(args ...string) *exec.Cmd {
	cmd := exec.Command(tb.BinaryPath, args...)
	cmd.Dir = tb.Dir
	cmd.Env = append(os.Environ(),
		"NO_COLOR=1",
		"KESTREL_LOG_FORMAT=json",
	)
	return cmd
}

// runExpectSuccess runs kestrel and asserts exit code 0. Returns combined
// stdout+stderr output.
func (tb *testBoard) runExpectSuccess(args ...string) string {
	tb.t.Helper()
	cmd := tb.run(args...)
	out, err := cmd.CombinedOutput()
	require.NoError(tb.t, err, "kestrel %v failed:\n%s", args, string(out))
	return string(out)
}

// runExpectFailure runs kestrel and asserts a non-zero exit code. Returns
// combined output and the exit code.
func (tb *testBoard) runExpectFailure(args ...string) (string, int) {
	tb.t.Helper()
	cmd := tb.run(args...)
	out, err := cmd.CombinedOutput()
	require.Error(tb.t, err, "kestrel %v expected to fail but succeeded:\n%s", args, string(out))
	var exitErr *exec.ExitError
	require.True(tb.t, errors.As(err, &exitErr), "expected *exec.ExitError, got %T: %v", err, err)
	return string(out), exitErr.ExitCode()
}
