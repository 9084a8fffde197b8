package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [human|ai]",
	Short: "Play a game",
	Long: `Start a game. Without a mode a menu asks who plays.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  Enter            - Keep playing after 2048, dismiss game over
  P/Space          - Pause the computer
  Tab              - Switch between you and the computer
  R                - Restart
  Esc/B            - Back to the menu
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play human --seed 42
  t2048 play ai --preset fast`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(game.ModeHuman), string(game.ModeAI)},
	RunE:      runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rc := runtimeConfig()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var mode game.Mode
	if len(args) == 1 {
		if mode, err = game.ParseMode(args[0]); err != nil {
			return err
		}
	}

	for {
		if mode == "" {
			choice, err := tui.RunMenu(rc.ScreenW, rc.ScreenH)
			if err != nil || choice.Quit {
				return err
			}

			if choice.WantsScoreboard {
				back, err := tui.RunScoreboard(store, game.ModeHuman, rc.ScreenW, rc.ScreenH)
				if err != nil || !back {
					return err
				}
				continue
			}
			mode = choice.Mode
		}

		logger.Debug("starting game", "mode", mode, "seed", rc.Seed)
		back, err := tui.Run(cfg, mode, store, rc)
		if err != nil || !back {
			return err
		}
		mode = ""
	}
}
