package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes content as kestrel.toml in a fresh temp dir and returns
// the file path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewDefaults()
	assert.Equal(t, "boards", cfg.Board.BoardsDir)
	assert.Equal(t, "**/*.toml", cfg.Board.Pattern)
	assert.Equal(t, 800, cfg.Simulation.TickRateMS)
	require.NoError(t, Validate(cfg))
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[board]
boards_dir = "my-boards"
default_workspace = "home"

[simulation]
tick_rate_ms = 250
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "my-boards", cfg.Board.BoardsDir)
	assert.Equal(t, "home", cfg.Board.DefaultWorkspace)
	assert.Equal(t, 250, cfg.Simulation.TickRateMS)
	// Unset keys keep their defaults.
	assert.Equal(t, "**/*.toml", cfg.Board.Pattern)
}

func TestLoadFromFile_BadTOML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `[board` + "\n")
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(""), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ConfigFileName), found)
}

func TestFindConfigFile_NotFound(t *testing.T) {
	t.Parallel()

	found, err := FindConfigFile(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KESTREL_BOARDS_DIR", "/tmp/env-boards")
	t.Setenv("KESTREL_TICK_RATE_MS", "125")

	path := writeConfig(t, `
[board]
boards_dir = "file-boards"
`)

	cfg, usedPath, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, usedPath)
	// Environment beats file.
	assert.Equal(t, "/tmp/env-boards", cfg.Board.BoardsDir)
	assert.Equal(t, 125, cfg.Simulation.TickRateMS)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty boards dir",
			mutate:  func(c *Config) { c.Board.BoardsDir = "  " },
			wantErr: "boards_dir",
		},
		{
			name:    "empty pattern",
			mutate:  func(c *Config) { c.Board.Pattern = "" },
			wantErr: "pattern",
		},
		{
			name:    "invalid glob",
			mutate:  func(c *Config) { c.Board.Pattern = "[" },
			wantErr: "not a valid glob",
		},
		{
			name:    "non-positive tick rate",
			mutate:  func(c *Config) { c.Simulation.TickRateMS = 0 },
			wantErr: "tick_rate_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaults()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSimulationConfig_TickRate(t *testing.T) {
	t.Parallel()

	cfg := SimulationConfig{TickRateMS: 250}
	assert.Equal(t, "250ms", cfg.TickRate().String())
}
