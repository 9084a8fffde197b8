package game

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/ai"
	"github.com/vovakirdan/tui-2048/internal/config"
)

// NewSolver builds the expectimax solver described by cfg.
func NewSolver(cfg config.Config, opts ...ai.Option) (*ai.Expectimax, error) {
	eval, err := evaluator(cfg)
	if err != nil {
		return nil, err
	}

	return ai.NewExpectimax(ai.SolverConfig{
		Depth:             cfg.Solver.Depth,
		ChanceTwo:         cfg.Game.ChanceTwo,
		MaxSpawnCells:     cfg.Solver.MaxSpawnCells,
		ProbabilityCutoff: cfg.Solver.ProbabilityCutoff,
		Parallel:          cfg.Solver.Parallel,
	}, eval, opts...)
}

func evaluator(cfg config.Config) (ai.Evaluator, error) {
	if cfg.Solver.Heuristic != config.CustomHeuristic {
		return ai.Create(cfg.Solver.Heuristic)
	}

	h := cfg.Heuristic
	return ai.NewHeuristic(ai.Weights{
		Empty:        h.Empty,
		Monotonicity: h.Monotonicity,
		Smoothness:   h.Smoothness,
		Merges:       h.Merges,
		MaxTile:      h.MaxTile,
		Corner:       h.Corner,
	})
}

// FromConfig creates an empty game for mode using cfg. Options passed
// after the config override it.
func FromConfig(cfg config.Config, mode Mode, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []Option{
		WithChanceTwo(cfg.Game.ChanceTwo),
		WithWinThreshold(cfg.Game.WinThreshold),
	}
	opts = append(base, opts...)

	switch mode {
	case ModeHuman:
		return NewHumanGame(opts...), nil
	case ModeAI:
		solver, err := NewSolver(cfg, ai.WithLogger(resolveLogger(opts)))
		if err != nil {
			return nil, err
		}
		return NewAiGame(solver, seconds(cfg.Solver.DelaySeconds), opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidMode, mode)
	}
}
