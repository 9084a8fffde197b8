package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// ErrInvalidConfig is returned by NewExpectimax for unusable settings.
var ErrInvalidConfig = errors.New("ai: invalid solver config")

// SolverConfig controls the search.
type SolverConfig struct {
	Depth             int     // Player moves looked ahead, >= 1
	ChanceTwo         float64 // Probability that a spawn is a 2
	MaxSpawnCells     int     // Spawn cells considered per chance node
	ProbabilityCutoff float64 // Chance branches below this probability become leaves
	Parallel          bool    // Search the top-level moves concurrently
}

// DefaultSolverConfig returns the reference search settings.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Depth:             5,
		ChanceTwo:         board.DefaultChanceTwo,
		MaxSpawnCells:     4,
		ProbabilityCutoff: 0.0001,
		Parallel:          true,
	}
}

// Validate checks the settings.
func (c SolverConfig) Validate() error {
	switch {
	case c.Depth < 1:
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalidConfig, c.Depth)
	case !(c.ChanceTwo > 0 && c.ChanceTwo <= 1):
		return fmt.Errorf("%w: chance of two must be in (0, 1], got %v", ErrInvalidConfig, c.ChanceTwo)
	case c.MaxSpawnCells < 1:
		return fmt.Errorf("%w: max spawn cells must be at least 1, got %d", ErrInvalidConfig, c.MaxSpawnCells)
	case c.ProbabilityCutoff < 0 || c.ProbabilityCutoff >= 1:
		return fmt.Errorf("%w: probability cutoff must be in [0, 1), got %v", ErrInvalidConfig, c.ProbabilityCutoff)
	}
	return nil
}

// Decision is the result of a search.
type Decision struct {
	Direction board.Direction
	Score     float64 // Expected value of the chosen move
	Viable    bool    // False when no direction changes the board
}

// Stats counts the work done by one search.
type Stats struct {
	Nodes     int
	Leaves    int
	CacheHits int
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Leaves += o.Leaves
	s.CacheHits += o.CacheHits
}

// Expectimax searches alternating player (max) and spawn (chance) layers.
// It never mutates its input; every node works on its own grid value.
type Expectimax struct {
	cfg    SolverConfig
	eval   Evaluator
	logger *log.Logger
}

// Option configures an Expectimax solver.
type Option func(*Expectimax)

// WithLogger sets the logger used for per-search debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Expectimax) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewExpectimax creates a solver.
func NewExpectimax(cfg SolverConfig, eval Evaluator, opts ...Option) (*Expectimax, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, fmt.Errorf("%w: evaluator is nil", ErrInvalidConfig)
	}

	s := &Expectimax{
		cfg:    cfg,
		eval:   eval,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the solver settings.
func (s *Expectimax) Config() SolverConfig {
	return s.cfg
}

type branchResult struct {
	value  float64
	viable bool
	stats  Stats
}

// NextMove returns the direction with the highest expected value.
// Ties go to the direction listed first in board.Directions. When no
// direction changes the grid the decision is not viable and names Up.
func (s *Expectimax) NextMove(ctx context.Context, g board.Grid) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	var results [len(board.Directions)]branchResult

	if s.cfg.Parallel {
		grp, gctx := errgroup.WithContext(ctx)
		for i, dir := range board.Directions {
			grp.Go(func() error {
				res, err := s.searchBranch(gctx, g, dir)
				results[i] = res
				return err
			})
		}
		if err := grp.Wait(); err != nil {
			return Decision{}, err
		}
	} else {
		for i, dir := range board.Directions {
			res, err := s.searchBranch(ctx, g, dir)
			if err != nil {
				return Decision{}, err
			}
			results[i] = res
		}
	}

	decision := Decision{Direction: board.Up}
	var total Stats
	for i, res := range results {
		total.add(res.stats)
		if !res.viable {
			continue
		}
		if !decision.Viable || res.value > decision.Score {
			decision = Decision{Direction: board.Directions[i], Score: res.value, Viable: true}
		}
	}

	s.logger.Debug("search finished",
		"move", decision.Direction,
		"score", decision.Score,
		"viable", decision.Viable,
		"nodes", total.Nodes,
		"leaves", total.Leaves,
		"cache_hits", total.CacheHits,
	)

	return decision, nil
}

// searchBranch evaluates one top-level move with its own search state.
func (s *Expectimax) searchBranch(ctx context.Context, g board.Grid, dir board.Direction) (branchResult, error) {
	child, points, changed := board.Slide(g, dir)
	if !changed {
		return branchResult{}, nil
	}

	sr := &search{
		ctx:   ctx,
		cfg:   s.cfg,
		eval:  s.eval,
		cache: make(map[cacheKey]float64),
	}
	value, err := sr.chance(child, s.cfg.Depth-1, 1)
	if err != nil {
		return branchResult{}, err
	}

	return branchResult{
		value:  float64(points) + value,
		viable: true,
		stats:  sr.stats,
	}, nil
}

type cacheKey struct {
	grid  board.Grid
	depth int
}

// search holds the state of one top-level branch. It is never shared
// between goroutines.
type search struct {
	ctx   context.Context
	cfg   SolverConfig
	eval  Evaluator
	cache map[cacheKey]float64
	stats Stats
}

func (sr *search) leaf(g board.Grid) float64 {
	sr.stats.Leaves++
	return sr.eval.Evaluate(g)
}

// player is the max layer: the best of points plus expected value over
// every move that changes the grid.
func (sr *search) player(g board.Grid, depth int, prob float64) (float64, error) {
	sr.stats.Nodes++
	if sr.stats.Nodes&1023 == 0 {
		if err := sr.ctx.Err(); err != nil {
			return 0, err
		}
	}

	if depth <= 0 {
		return sr.leaf(g), nil
	}

	best, moved := 0.0, false
	for _, dir := range board.Directions {
		child, points, changed := board.Slide(g, dir)
		if !changed {
			continue
		}
		v, err := sr.chance(child, depth-1, prob)
		if err != nil {
			return 0, err
		}
		v += float64(points)
		if !moved || v > best {
			best, moved = v, true
		}
	}

	if !moved {
		return sr.leaf(g), nil
	}
	return best, nil
}

// chance is the spawn layer: the probability-weighted mean over every
// considered spawn, each followed by a player layer at the same depth.
func (sr *search) chance(g board.Grid, depth int, prob float64) (float64, error) {
	sr.stats.Nodes++

	if depth <= 0 || prob < sr.cfg.ProbabilityCutoff {
		return sr.leaf(g), nil
	}

	key := cacheKey{grid: g, depth: depth}
	if v, ok := sr.cache[key]; ok {
		sr.stats.CacheHits++
		return v, nil
	}

	outcomes := spawnOutcomes(g, sr.cfg)
	if len(outcomes) == 0 {
		return sr.leaf(g), nil
	}

	total := 0.0
	for _, o := range outcomes {
		v, err := sr.player(o.grid, depth, prob*o.prob)
		if err != nil {
			return 0, err
		}
		total += o.prob * v
	}

	sr.cache[key] = total
	return total, nil
}

type outcome struct {
	grid board.Grid
	prob float64
}

// spawnOutcomes enumerates the spawns considered at a chance node.
// Their probabilities sum to 1.
func spawnOutcomes(g board.Grid, cfg SolverConfig) []outcome {
	cells := sampleCells(board.EmptyCells(g), cfg.MaxSpawnCells)
	if len(cells) == 0 {
		return nil
	}

	perCell := 1 / float64(len(cells))
	outcomes := make([]outcome, 0, 2*len(cells))
	for _, cell := range cells {
		two := g
		two[cell.Row][cell.Col] = 2
		outcomes = append(outcomes, outcome{grid: two, prob: perCell * cfg.ChanceTwo})

		if cfg.ChanceTwo < 1 {
			four := g
			four[cell.Row][cell.Col] = 4
			outcomes = append(outcomes, outcome{grid: four, prob: perCell * (1 - cfg.ChanceTwo)})
		}
	}
	return outcomes
}

// sampleCells picks at most limit cells, evenly spaced through the list.
func sampleCells(cells []board.Cell, limit int) []board.Cell {
	n := len(cells)
	if n <= limit {
		return cells
	}

	sample := make([]board.Cell, limit)
	for i := range limit {
		sample[i] = cells[i*n/limit]
	}
	return sample
}
