package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/autoplay"
)

var (
	flagGames       int
	flagConcurrency int
	flagDepth       int
	flagVerbose     bool
	flagNoSave      bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play computer games without a terminal",
	Long: `Play a batch of computer games headless and print a summary.
Game i uses seed --seed + i, so a fixed seed replays the same batch.

Examples:
  t2048 autoplay --games 10
  t2048 autoplay --games 50 --concurrency 8 --preset fast
  t2048 autoplay --depth 3 --seed 7 --no-save`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games")
	autoplayCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Games played at once (0 = GOMAXPROCS)")
	autoplayCmd.Flags().IntVar(&flagDepth, "depth", 0, "Search depth (0 = from config)")
	autoplayCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every move")
	autoplayCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results")
}

func runAutoplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDepth > 0 {
		cfg.Solver.Depth = flagDepth
	}

	opts := autoplay.Options{
		Config:      cfg,
		Games:       flagGames,
		Concurrency: flagConcurrency,
		Seed:        seed(),
		Verbose:     flagVerbose,
		Logger:      logger,
	}
	if !flagNoSave {
		if store := openStore(); store != nil {
			defer store.Close()
			opts.Recorder = store
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("autoplay starting", "games", opts.Games, "depth", cfg.Solver.Depth, "seed", opts.Seed)
	summary, err := autoplay.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Games:      %d\n", summary.Games)
	fmt.Printf("Wins:       %d (%.1f%%)\n", summary.Wins, 100*summary.WinRate())
	fmt.Printf("Best score: %d\n", summary.BestScore)
	fmt.Printf("Mean score: %.0f\n", summary.MeanScore)
	fmt.Printf("Best tile:  %d\n", summary.BestTile)
	fmt.Printf("Moves:      %d\n", summary.Moves)
	fmt.Printf("Elapsed:    %s\n", summary.Elapsed.Round(time.Millisecond))
	return nil
}
