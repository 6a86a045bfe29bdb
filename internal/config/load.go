package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/driftlock/kestrel/internal/logging"
)

// ConfigFileName is the name of the Kestrel configuration file.
const ConfigFileName = "kestrel.toml"

// envPrefix is the prefix for environment overrides, e.g.
// KESTREL_BOARDS_DIR.
const envPrefix = "kestrel"

// envOverrides mirrors the configurable fields exposed through the
// environment. Zero values mean "not set".
type envOverrides struct {
	BoardsDir        string `envconfig:"BOARDS_DIR"`
	Pattern          string `envconfig:"PATTERN"`
	DefaultWorkspace string `envconfig:"DEFAULT_WORKSPACE"`
	TickRateMS       int    `envconfig:"TICK_RATE_MS"`
}

// FindConfigFile walks up from the given directory to find kestrel.toml.
// Returns the absolute path to the config file, or an empty string if not
// found. Stops at the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", nil
		}
		dir = parent
	}
}

// LoadFromFile parses the TOML file at the given path over the built-in
// defaults. Unknown keys are logged as warnings rather than rejected.
func LoadFromFile(path string) (*Config, error) {
	cfg := NewDefaults()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger := logging.New("config")
		for _, key := range undecoded {
			logger.Warn("unknown config key", "key", key.String(), "file", path)
		}
	}
	return cfg, nil
}

// applyEnv overlays KESTREL_* environment variables onto cfg.
func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("reading environment overrides: %w", err)
	}

	if env.BoardsDir != "" {
		cfg.Board.BoardsDir = env.BoardsDir
	}
	if env.Pattern != "" {
		cfg.Board.Pattern = env.Pattern
	}
	if env.DefaultWorkspace != "" {
		cfg.Board.DefaultWorkspace = env.DefaultWorkspace
	}
	if env.TickRateMS != 0 {
		cfg.Simulation.TickRateMS = env.TickRateMS
	}
	return nil
}

// Load resolves the effective configuration: built-in defaults, overlaid by
// kestrel.toml (explicit path, or discovered by walking up from the working
// directory), overlaid by KESTREL_* environment variables, then validated.
// A missing config file is not an error; defaults plus environment apply.
func Load(explicitPath string) (*Config, string, error) {
	path := explicitPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("getting working directory: %w", err)
		}
		path, err = FindConfigFile(wd)
		if err != nil {
			return nil, "", err
		}
	}

	var cfg *Config
	if path == "" {
		cfg = NewDefaults()
	} else {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return nil, "", err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, "", err
	}
	if err := Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
