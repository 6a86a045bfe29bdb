package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks cfg for unusable values, accumulating every problem into a
// single error so users can fix their config in one pass.
func Validate(cfg *Config) error {
	var problems []string

	if strings.TrimSpace(cfg.Board.BoardsDir) == "" {
		problems = append(problems, "board.boards_dir must not be empty")
	}

	if strings.TrimSpace(cfg.Board.Pattern) == "" {
		problems = append(problems, "board.pattern must not be empty")
	} else if !doublestar.ValidatePattern(cfg.Board.Pattern) {
		problems = append(problems, fmt.Sprintf("board.pattern %q is not a valid glob", cfg.Board.Pattern))
	}

	if cfg.Simulation.TickRateMS <= 0 {
		problems = append(problems, fmt.Sprintf("simulation.tick_rate_ms must be positive, got %d", cfg.Simulation.TickRateMS))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
