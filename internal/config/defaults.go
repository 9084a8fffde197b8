package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			ChanceTwo:    0.9,
			WinThreshold: 2048,
		},
		Solver: SolverConfig{
			Depth:             5,
			MaxSpawnCells:     4,
			ProbabilityCutoff: 0.0001,
			Parallel:          true,
			DelaySeconds:      0.005,
			Heuristic:         "balanced",
		},
		Heuristic: HeuristicConfig{
			Empty:        270,
			Monotonicity: 47,
			Smoothness:   11,
			Merges:       700,
			MaxTile:      30,
			Corner:       200,
		},
		UI: UIConfig{
			TickRate:       30,
			AiTicksPerMove: 3,
		},
	}
}
