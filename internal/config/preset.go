package config

import (
	"fmt"
	"slices"
)

// SearchPreset represents a named search strength.
type SearchPreset string

const (
	PresetFast   SearchPreset = "fast"
	PresetNormal SearchPreset = "normal"
	PresetDeep   SearchPreset = "deep"
)

// Presets returns the known presets, weakest first.
func Presets() []SearchPreset {
	return []SearchPreset{PresetFast, PresetNormal, PresetDeep}
}

// ParsePreset validates a preset name. The empty string is PresetNormal.
func ParsePreset(s string) (SearchPreset, error) {
	if s == "" {
		return PresetNormal, nil
	}
	p := SearchPreset(s)
	if !slices.Contains(Presets(), p) {
		return "", fmt.Errorf("%w: unknown search preset %q", ErrInvalid, s)
	}
	return p, nil
}

// Describe returns a one-line summary of what the preset sets.
func (p SearchPreset) Describe() string {
	var s SolverConfig
	p.apply(&s)
	return fmt.Sprintf("depth %d, %d spawn cells, cutoff %g", s.Depth, s.MaxSpawnCells, s.ProbabilityCutoff)
}

func (p SearchPreset) apply(s *SolverConfig) {
	switch p {
	case PresetFast:
		s.Depth = 3
		s.MaxSpawnCells = 2
		s.ProbabilityCutoff = 0.001
	case PresetDeep:
		s.Depth = 6
		s.MaxSpawnCells = 6
		s.ProbabilityCutoff = 0.00005
	default:
		s.Depth = 5
		s.MaxSpawnCells = 4
		s.ProbabilityCutoff = 0.0001
	}
}

// ApplyPreset modifies the solver section based on a search preset.
func ApplyPreset(cfg *Config, preset SearchPreset) {
	preset.apply(&cfg.Solver)
}
