package autoplay

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type memRecorder struct {
	mu      sync.Mutex
	results []storage.Result
	err     error
}

func (m *memRecorder) SaveResult(r storage.Result) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.results = append(m.results, r)
	return int64(len(m.results)), nil
}

func quickConfig() config.Config {
	cfg := config.Default()
	cfg.Solver.Depth = 1
	cfg.Solver.MaxSpawnCells = 2
	cfg.Solver.Parallel = false
	return cfg
}

func TestRunRecordsEveryGame(t *testing.T) {
	is := is.New(t)
	rec := &memRecorder{}

	sum, err := Run(context.Background(), Options{
		Config:      quickConfig(),
		Games:       4,
		Concurrency: 2,
		Seed:        7,
		Recorder:    rec,
	})
	is.NoErr(err)
	is.Equal(sum.Games, 4)
	is.Equal(len(sum.Results), 4)
	is.Equal(len(rec.results), 4)

	best, total := 0, 0
	for _, r := range sum.Results {
		is.Equal(r.Mode, "ai")
		is.Equal(r.SearchDepth, 1)
		is.True(r.Moves > 0)
		is.True(r.MaxTile >= 4)
		best = max(best, r.Score)
		total += r.Score
	}
	is.Equal(sum.BestScore, best)
	is.Equal(sum.MeanScore, float64(total)/4)
}

func TestRunIsReproducible(t *testing.T) {
	is := is.New(t)
	opts := Options{Config: quickConfig(), Games: 3, Concurrency: 3, Seed: 99}

	a, err := Run(context.Background(), opts)
	is.NoErr(err)
	b, err := Run(context.Background(), opts)
	is.NoErr(err)
	is.Equal(a.Results, b.Results)
}

func TestRunSurvivesRecorderErrors(t *testing.T) {
	is := is.New(t)
	rec := &memRecorder{err: errors.New("disk full")}

	sum, err := Run(context.Background(), Options{Config: quickConfig(), Games: 2, Recorder: rec})
	is.NoErr(err)
	is.Equal(sum.Games, 2)
}

func TestRunCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Config: quickConfig(), Games: 2})
	is.True(errors.Is(err, context.Canceled))
}

func TestRunRejectsBadOptions(t *testing.T) {
	is := is.New(t)

	_, err := Run(context.Background(), Options{Config: quickConfig()})
	is.True(err != nil) // no games

	cfg := quickConfig()
	cfg.Solver.Depth = 0
	_, err = Run(context.Background(), Options{Config: cfg, Games: 1})
	is.True(errors.Is(err, config.ErrInvalid))
}

func TestSummaryWinRate(t *testing.T) {
	is := is.New(t)
	sum := summarize([]storage.Result{
		{Score: 10, MaxTile: 2048, Won: true},
		{Score: 30, MaxTile: 512},
	})
	is.Equal(sum.WinRate(), 0.5)
	is.Equal(sum.BestTile, 2048)
	is.Equal(sum.MeanScore, 20.0)
	is.Equal(Summary{}.WinRate(), 0.0)
}
