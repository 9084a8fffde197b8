// Package config provides YAML-based configuration loading and search
// presets for the game and its computer player.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid value")

// CustomHeuristic selects the weights of the heuristic section instead of
// a registered preset.
const CustomHeuristic = "custom"

// Config contains the complete configuration.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Solver    SolverConfig    `yaml:"solver"`
	Heuristic HeuristicConfig `yaml:"heuristic"`
	UI        UIConfig        `yaml:"ui"`
}

// GameConfig defines the rules of a match.
type GameConfig struct {
	ChanceTwo    float64 `yaml:"chance_two"`    // Probability that a spawned tile is a 2
	WinThreshold int     `yaml:"win_threshold"` // Tile value that signals a win
}

// SolverConfig defines the computer player's search.
type SolverConfig struct {
	Depth             int     `yaml:"depth"`
	MaxSpawnCells     int     `yaml:"max_spawn_cells"`
	ProbabilityCutoff float64 `yaml:"probability_cutoff"`
	Parallel          bool    `yaml:"parallel"`
	DelaySeconds      float64 `yaml:"delay_seconds"` // Pause after each computed move
	Heuristic         string  `yaml:"heuristic"`     // Preset id or "custom"
}

// HeuristicConfig holds the weights used when solver.heuristic is "custom".
type HeuristicConfig struct {
	Empty        float64 `yaml:"empty"`
	Monotonicity float64 `yaml:"monotonicity"`
	Smoothness   float64 `yaml:"smoothness"`
	Merges       float64 `yaml:"merges"`
	MaxTile      float64 `yaml:"max_tile"`
	Corner       float64 `yaml:"corner"`
}

// UIConfig defines terminal front end timing.
type UIConfig struct {
	TickRate       int `yaml:"tick_rate"`         // Frames per second
	AiTicksPerMove int `yaml:"ai_ticks_per_move"` // Frames between computer moves
}

// Validate checks every section.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case !(g.ChanceTwo > 0 && g.ChanceTwo <= 1):
		return fmt.Errorf("%w: game.chance_two must be in (0, 1], got %v", ErrInvalid, g.ChanceTwo)
	case g.WinThreshold < 4 || g.WinThreshold&(g.WinThreshold-1) != 0:
		return fmt.Errorf("%w: game.win_threshold must be a power of two >= 4, got %d", ErrInvalid, g.WinThreshold)
	}

	s := c.Solver
	switch {
	case s.Depth < 1:
		return fmt.Errorf("%w: solver.depth must be at least 1, got %d", ErrInvalid, s.Depth)
	case s.MaxSpawnCells < 1:
		return fmt.Errorf("%w: solver.max_spawn_cells must be at least 1, got %d", ErrInvalid, s.MaxSpawnCells)
	case s.ProbabilityCutoff < 0 || s.ProbabilityCutoff >= 1:
		return fmt.Errorf("%w: solver.probability_cutoff must be in [0, 1), got %v", ErrInvalid, s.ProbabilityCutoff)
	case s.DelaySeconds < 0:
		return fmt.Errorf("%w: solver.delay_seconds must not be negative, got %v", ErrInvalid, s.DelaySeconds)
	case s.Heuristic == "":
		return fmt.Errorf("%w: solver.heuristic is empty", ErrInvalid)
	}

	if s.Heuristic == CustomHeuristic && !(c.Heuristic.Empty > 0) {
		return fmt.Errorf("%w: heuristic.empty must be positive, got %v", ErrInvalid, c.Heuristic.Empty)
	}

	u := c.UI
	switch {
	case u.TickRate < 1:
		return fmt.Errorf("%w: ui.tick_rate must be at least 1, got %d", ErrInvalid, u.TickRate)
	case u.AiTicksPerMove < 1:
		return fmt.Errorf("%w: ui.ai_ticks_per_move must be at least 1, got %d", ErrInvalid, u.AiTicksPerMove)
	}
	return nil
}
