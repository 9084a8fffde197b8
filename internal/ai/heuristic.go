// Package ai implements the computer player: a heuristic board evaluator
// and a depth-limited expectimax search over it.
package ai

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// ErrInvalidWeights is returned when heuristic weights cannot guarantee
// that more empty cells score higher.
var ErrInvalidWeights = errors.New("ai: invalid heuristic weights")

// Evaluator scores a position without search. Implementations must be
// deterministic and free of side effects.
type Evaluator interface {
	Evaluate(g board.Grid) float64
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(g board.Grid) float64

// Evaluate calls f(g).
func (f EvaluatorFunc) Evaluate(g board.Grid) float64 {
	return f(g)
}

// Weights are the coefficients of the heuristic terms.
type Weights struct {
	Empty        float64 // per empty cell, must be > 0
	Monotonicity float64 // applied to a non-positive penalty
	Smoothness   float64 // applied to a non-positive penalty
	Merges       float64 // per adjacent equal pair
	MaxTile      float64 // per log2 of the largest tile
	Corner       float64 // bonus when the largest tile sits in a corner
}

// DefaultWeights returns the weights of the "balanced" preset.
func DefaultWeights() Weights {
	return Weights{
		Empty:        270,
		Monotonicity: 47,
		Smoothness:   11,
		Merges:       700,
		MaxTile:      30,
		Corner:       200,
	}
}

// Validate checks the weights.
func (w Weights) Validate() error {
	if !(w.Empty > 0) {
		return fmt.Errorf("%w: empty weight must be positive, got %v", ErrInvalidWeights, w.Empty)
	}
	for name, v := range map[string]float64{
		"monotonicity": w.Monotonicity,
		"smoothness":   w.Smoothness,
		"merges":       w.Merges,
		"max_tile":     w.MaxTile,
		"corner":       w.Corner,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s weight must be a non-negative number, got %v", ErrInvalidWeights, name, v)
		}
	}
	return nil
}

// Heuristic is the leaf evaluator used by the solver: a weighted sum of
// mobility, monotonicity, smoothness, merge potential and max tile placement.
type Heuristic struct {
	w Weights
}

// NewHeuristic creates a heuristic with the given weights.
func NewHeuristic(w Weights) (*Heuristic, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Heuristic{w: w}, nil
}

// Weights returns the heuristic's coefficients.
func (h *Heuristic) Weights() Weights {
	return h.w
}

// Evaluate scores g.
func (h *Heuristic) Evaluate(g board.Grid) float64 {
	logs := logGrid(g)

	score := h.w.Empty * float64(board.CountEmpty(g))
	score += h.w.Monotonicity * monotonicity(logs)
	score += h.w.Smoothness * smoothness(logs)
	score += h.w.Merges * float64(mergePairs(g))

	maxLog, inCorner := maxTilePlacement(logs)
	score += h.w.MaxTile * maxLog
	if inCorner {
		score += h.w.Corner
	}

	return score
}

// logGrid converts tile values to their log2 (0 stays 0).
func logGrid(g board.Grid) [board.Size][board.Size]float64 {
	var out [board.Size][board.Size]float64
	for r := range board.Size {
		for c := range board.Size {
			if g[r][c] > 0 {
				out[r][c] = math.Log2(float64(g[r][c]))
			}
		}
	}
	return out
}

// monotonicity returns minus the smaller of the increasing and decreasing
// penalties, summed over every row and column.
func monotonicity(logs [board.Size][board.Size]float64) float64 {
	penalty := 0.0
	for i := range board.Size {
		var row, col [board.Size]float64
		for j := range board.Size {
			row[j] = logs[i][j]
			col[j] = logs[j][i]
		}
		penalty += linePenalty(row)
		penalty += linePenalty(col)
	}
	return -penalty
}

func linePenalty(line [board.Size]float64) float64 {
	inc, dec := 0.0, 0.0
	for i := 0; i < board.Size-1; i++ {
		a, b := line[i], line[i+1]
		if a > b {
			inc += a - b
		} else {
			dec += b - a
		}
	}
	return math.Min(inc, dec)
}

// smoothness is minus the log difference between adjacent non-empty tiles.
func smoothness(logs [board.Size][board.Size]float64) float64 {
	penalty := 0.0
	for r := range board.Size {
		for c := range board.Size {
			v := logs[r][c]
			if v == 0 {
				continue
			}
			if c < board.Size-1 && logs[r][c+1] != 0 {
				penalty += math.Abs(v - logs[r][c+1])
			}
			if r < board.Size-1 && logs[r+1][c] != 0 {
				penalty += math.Abs(v - logs[r+1][c])
			}
		}
	}
	return -penalty
}

func mergePairs(g board.Grid) int {
	count := 0
	for r := range board.Size {
		for c := range board.Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if c < board.Size-1 && g[r][c+1] == v {
				count++
			}
			if r < board.Size-1 && g[r+1][c] == v {
				count++
			}
		}
	}
	return count
}

// maxTilePlacement returns log2 of the largest tile and whether one copy of
// it sits in a corner.
func maxTilePlacement(logs [board.Size][board.Size]float64) (float64, bool) {
	maxLog := 0.0
	for r := range board.Size {
		for c := range board.Size {
			maxLog = math.Max(maxLog, logs[r][c])
		}
	}
	if maxLog == 0 {
		return 0, false
	}

	last := board.Size - 1
	for _, corner := range [4]board.Cell{{Row: 0, Col: 0}, {Row: 0, Col: last}, {Row: last, Col: 0}, {Row: last, Col: last}} {
		if logs[corner.Row][corner.Col] == maxLog {
			return maxLog, true
		}
	}
	return maxLog, false
}
