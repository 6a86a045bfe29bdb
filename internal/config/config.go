// Package config loads and validates kestrel.toml, layering environment
// overrides (KESTREL_*) on top of file values and built-in defaults.
package config

import "time"

// Config is the top-level configuration structure mapping to kestrel.toml.
type Config struct {
	Board      BoardConfig      `toml:"board"`
	Simulation SimulationConfig `toml:"simulation"`
}

// BoardConfig maps to the [board] section in kestrel.toml.
type BoardConfig struct {
	// BoardsDir is the directory holding workspace board files.
	BoardsDir string `toml:"boards_dir"`

	// Pattern is the doublestar glob, relative to BoardsDir, that selects
	// board files.
	Pattern string `toml:"pattern"`

	// DefaultWorkspace is the workspace ID or name opened when none is
	// given on the command line. Empty means the first discovered board.
	DefaultWorkspace string `toml:"default_workspace"`
}

// SimulationConfig maps to the [simulation] section in kestrel.toml.
type SimulationConfig struct {
	// TickRateMS is the interval in milliseconds between automatic
	// simulation steps.
	TickRateMS int `toml:"tick_rate_ms"`
}

// TickRate returns the configured tick rate as a duration.
func (s SimulationConfig) TickRate() time.Duration {
	return time.Duration(s.TickRateMS) * time.Millisecond
}

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		Board: BoardConfig{
			BoardsDir: "boards",
			Pattern:   "**/*.toml",
		},
		Simulation: SimulationConfig{
			TickRateMS: 800,
		},
	}
}
