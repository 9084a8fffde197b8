package ai

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"

	"github.com/vovakirdan/tui-2048/internal/board"
)

func testSolver(t *testing.T, mutate func(*SolverConfig)) *Expectimax {
	t.Helper()
	cfg := DefaultSolverConfig()
	cfg.Depth = 2
	if mutate != nil {
		mutate(&cfg)
	}
	eval, err := Create(DefaultPreset)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", DefaultPreset, err)
	}
	s, err := NewExpectimax(cfg, eval)
	if err != nil {
		t.Fatalf("NewExpectimax() failed: %v", err)
	}
	return s
}

var midGame = board.Grid{
	{2, 8, 16, 4},
	{0, 4, 32, 2},
	{0, 0, 8, 64},
	{2, 0, 0, 128},
}

func TestNextMoveDeterministic(t *testing.T) {
	is := is.New(t)
	s := testSolver(t, func(c *SolverConfig) { c.Depth = 3 })

	first, err := s.NextMove(context.Background(), midGame)
	is.NoErr(err)
	is.True(first.Viable)

	for range 5 {
		again, err := s.NextMove(context.Background(), midGame)
		is.NoErr(err)
		is.Equal(again, first)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	is := is.New(t)
	par := testSolver(t, func(c *SolverConfig) { c.Depth = 3; c.Parallel = true })
	seq := testSolver(t, func(c *SolverConfig) { c.Depth = 3; c.Parallel = false })

	a, err := par.NextMove(context.Background(), midGame)
	is.NoErr(err)
	b, err := seq.NextMove(context.Background(), midGame)
	is.NoErr(err)
	is.Equal(a, b)
}

func TestNextMoveDoesNotMutateInput(t *testing.T) {
	is := is.New(t)
	s := testSolver(t, nil)

	g := midGame
	_, err := s.NextMove(context.Background(), g)
	is.NoErr(err)
	is.Equal(g, midGame)
}

func TestNextMoveNoViableMove(t *testing.T) {
	is := is.New(t)
	s := testSolver(t, nil)

	dead := board.Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	d, err := s.NextMove(context.Background(), dead)
	is.NoErr(err)
	is.True(!d.Viable)
	is.Equal(d.Direction, board.Up)
}

func TestNextMoveSkipsNoOpMoves(t *testing.T) {
	is := is.New(t)
	s := testSolver(t, nil)

	// Only moving up or down changes anything here.
	g := board.Grid{
		{2, 4, 8, 16},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	d, err := s.NextMove(context.Background(), g)
	is.NoErr(err)
	is.True(d.Viable)
	is.Equal(d.Direction, board.Down)
}

func TestNextMoveTakesTheWinningMerge(t *testing.T) {
	is := is.New(t)
	s := testSolver(t, nil)

	g := board.Grid{
		{1024, 1024, 0, 0},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	d, err := s.NextMove(context.Background(), g)
	is.NoErr(err)
	is.True(d.Direction == board.Left || d.Direction == board.Right)
}

func TestTieBreakPrefersFirstDirection(t *testing.T) {
	is := is.New(t)
	cfg := DefaultSolverConfig()
	cfg.Depth = 1
	flat := EvaluatorFunc(func(board.Grid) float64 { return 0 })
	s, err := NewExpectimax(cfg, flat)
	is.NoErr(err)

	// Every direction moves the lone tile and earns nothing.
	g := board.Grid{
		{0, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	d, err := s.NextMove(context.Background(), g)
	is.NoErr(err)
	is.Equal(d.Direction, board.Up)
}

func TestNextMoveCanceled(t *testing.T) {
	is := is.New(t)
	s := testSolver(t, func(c *SolverConfig) { c.Depth = 6; c.ProbabilityCutoff = 0 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.NextMove(ctx, midGame)
	is.True(errors.Is(err, context.Canceled))
}

func TestSpawnOutcomesSumToOne(t *testing.T) {
	grids := []board.Grid{
		midGame,
		{},
		{{2, 4, 8, 16}, {32, 64, 128, 256}, {512, 1024, 2048, 4096}, {8, 16, 32, 0}},
	}

	for _, limit := range []int{1, 3, 4, 16} {
		cfg := DefaultSolverConfig()
		cfg.MaxSpawnCells = limit
		for _, g := range grids {
			total := 0.0
			outs := spawnOutcomes(g, cfg)
			for _, o := range outs {
				total += o.prob
			}
			if math.Abs(total-1) > 1e-9 {
				t.Errorf("limit %d: probabilities sum to %v, want 1", limit, total)
			}
			if len(outs) > 2*limit {
				t.Errorf("limit %d: %d outcomes exceed the cap", limit, len(outs))
			}
		}
	}
}

func TestSampleCellsSpreadsOverList(t *testing.T) {
	is := is.New(t)

	// Four cells in row 0, three in row 1.
	g := board.Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 2},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
	}
	cells := board.EmptyCells(g)
	is.Equal(len(cells), 7)

	got := sampleCells(cells, 4)
	is.Equal(got, []board.Cell{cells[0], cells[1], cells[3], cells[5]})
	is.Equal(got[3].Row, 1)

	is.Equal(len(sampleCells(cells, 7)), 7)
	is.Equal(sampleCells(cells, 1), []board.Cell{cells[0]})
}

func TestSpawnOutcomesOnlyTwos(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.ChanceTwo = 1
	outs := spawnOutcomes(board.Grid{{2, 0, 0, 0}}, cfg)
	for _, o := range outs {
		if board.MaxTile(o.grid) != 2 {
			t.Fatalf("spawned a 4 with chance of two 1:\n%v", o.grid)
		}
	}
}

func TestSolverConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SolverConfig)
	}{
		{"zero depth", func(c *SolverConfig) { c.Depth = 0 }},
		{"zero chance", func(c *SolverConfig) { c.ChanceTwo = 0 }},
		{"chance above one", func(c *SolverConfig) { c.ChanceTwo = 1.5 }},
		{"no spawn cells", func(c *SolverConfig) { c.MaxSpawnCells = 0 }},
		{"cutoff of one", func(c *SolverConfig) { c.ProbabilityCutoff = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSolverConfig()
			tt.mutate(&cfg)
			_, err := NewExpectimax(cfg, &Heuristic{w: DefaultWeights()})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := NewExpectimax(DefaultSolverConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil evaluator: err = %v, want ErrInvalidConfig", err)
	}
}

func TestDeeperSearchIsSupported(t *testing.T) {
	is := is.New(t)
	s := testSolver(t, func(c *SolverConfig) { c.Depth = 4; c.MaxSpawnCells = 2 })

	d, err := s.NextMove(context.Background(), midGame)
	is.NoErr(err)
	is.True(d.Viable)
	is.True(d.Direction.Valid())
}
