// Package autoplay plays batches of computer games without a terminal.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Recorder stores finished games. *storage.Store satisfies it.
type Recorder interface {
	SaveResult(r storage.Result) (int64, error)
}

// Options configures a batch.
type Options struct {
	Config      config.Config
	Games       int   // Number of games, >= 1
	Concurrency int   // Games played at once; 0 means GOMAXPROCS
	Seed        int64 // Game i spawns tiles from Seed+i
	Verbose     bool  // Log every move at debug level
	Logger      *log.Logger
	Recorder    Recorder // Optional
}

// Summary aggregates a batch.
type Summary struct {
	Results   []storage.Result // In game order
	Games     int
	Wins      int
	BestScore int
	MeanScore float64
	BestTile  int
	Moves     int
	Elapsed   time.Duration
}

// WinRate returns the fraction of games that reached the win tile.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Run plays opts.Games games and returns their summary. It stops at the
// first game error or when ctx is done.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Games < 1 {
		return Summary{}, fmt.Errorf("autoplay: games must be at least 1, got %d", opts.Games)
	}
	if err := opts.Config.Validate(); err != nil {
		return Summary{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	results := make([]storage.Result, opts.Games)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(limit)
	for i := range opts.Games {
		grp.Go(func() error {
			r, err := playOne(gctx, opts, opts.Seed+int64(i), logger.With("game", i+1))
			if err != nil {
				return fmt.Errorf("autoplay: game %d: %w", i+1, err)
			}
			results[i] = r

			logger.Info("game finished", "game", i+1, "score", r.Score, "max_tile", r.MaxTile, "moves", r.Moves, "won", r.Won)

			if opts.Recorder != nil {
				if _, err := opts.Recorder.SaveResult(r); err != nil {
					logger.Warn("result not saved", "game", i+1, "err", err)
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Summary{}, err
	}

	sum := summarize(results)
	sum.Elapsed = time.Since(start)
	return sum, nil
}

func playOne(ctx context.Context, opts Options, seed int64, logger *log.Logger) (storage.Result, error) {
	gameOpts := []game.Option{
		game.WithSeed(seed),
		game.WithSleeper(game.NoDelay),
	}
	if opts.Verbose {
		gameOpts = append(gameOpts, game.WithLogger(logger))
	}

	g, err := game.FromConfig(opts.Config, game.ModeAI, gameOpts...)
	if err != nil {
		return storage.Result{}, err
	}
	g.InitGame()

	for {
		ok, err := g.PerformAiMove(ctx)
		if err != nil {
			return storage.Result{}, err
		}
		if !ok {
			break
		}
		if g.State() == game.StateWon {
			g.AcknowledgeWin()
		}
	}
	if err := g.Stop(); err != nil && !errors.Is(err, game.ErrNotOver) {
		return storage.Result{}, err
	}

	s := g.Snapshot()
	return storage.Result{
		Mode:        string(game.ModeAI),
		Score:       s.Score,
		MaxTile:     s.MaxTile,
		Moves:       s.Moves,
		Won:         s.MaxTile >= g.WinThreshold(),
		SearchDepth: opts.Config.Solver.Depth,
	}, nil
}

func summarize(results []storage.Result) Summary {
	sum := Summary{Results: results, Games: len(results)}
	total := 0
	for _, r := range results {
		total += r.Score
		sum.Moves += r.Moves
		if r.Won {
			sum.Wins++
		}
		sum.BestScore = max(sum.BestScore, r.Score)
		sum.BestTile = max(sum.BestTile, r.MaxTile)
	}
	if len(results) > 0 {
		sum.MeanScore = float64(total) / float64(len(results))
	}
	return sum
}
