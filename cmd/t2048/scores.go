package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [human|ai]",
	Short: "Show recorded results",
	Long: `Display the top 10 results, for one mode or for both.

Examples:
  t2048 scores
  t2048 scores ai
  t2048 scores --interactive
  t2048 scores human --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(game.ModeHuman), string(game.ModeAI)},
	RunE:      runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse results in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded results (one mode, or all)")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		m, err := game.ParseMode(args[0])
		if err != nil {
			return err
		}
		mode = string(m)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(mode); err != nil {
			return err
		}
		logger.Info("results cleared", "mode", mode)
		fmt.Println("Results cleared.")
		return nil
	}

	if flagInteractive {
		start := game.ModeHuman
		if mode != "" {
			start = game.Mode(mode)
		}
		rc := runtimeConfig()
		_, err := tui.RunScoreboard(store, start, rc.ScreenW, rc.ScreenH)
		return err
	}

	results, err := store.TopResults(mode, 10)
	if err != nil {
		return err
	}

	title := "all modes"
	if mode != "" {
		title = mode
	}
	fmt.Printf("High Scores - %s\n\n", title)

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Run 't2048 play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-8s  %-6s  %-5s  %-5s  %s\n", "Rank", "Mode", "Score", "Max", "Moves", "Depth", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %-6s  %-5s  %-5s  %s\n", "----", "----", "-----", "---", "-----", "-----", "----")
	for i, r := range results {
		depth := "-"
		if r.SearchDepth > 0 {
			depth = fmt.Sprint(r.SearchDepth)
		}
		fmt.Printf("  %-4d  %-5s  %-8d  %-6d  %-5d  %-5s  %s\n",
			i+1, r.Mode, r.Score, r.MaxTile, r.Moves, depth, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllStats()
	if err != nil {
		return err
	}
	fmt.Println()
	for _, m := range []game.Mode{game.ModeHuman, game.ModeAI} {
		s, ok := stats[string(m)]
		if !ok || (mode != "" && mode != string(m)) {
			continue
		}
		fmt.Printf("%-5s  %d games, best %d, wins %.0f%%\n", m, s.Games, s.HighScore, 100*s.WinRate())
	}
	return nil
}
