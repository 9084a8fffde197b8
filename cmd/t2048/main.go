// t2048 is the 2048 sliding-tile game for the terminal, with an
// expectimax computer player.
//
// Usage:
//
//	t2048 play [human|ai]   - Play, or watch the computer play
//	t2048 autoplay          - Play computer games headless and print a summary
//	t2048 scores [human|ai] - Show recorded results
//	t2048 presets           - List heuristic and search presets
//
// Global flags:
//
//	--config <path>    - Config YAML (default: ~/.t2048/config.yaml, then configs/t2048.yaml)
//	--preset <name>    - Search preset: fast, normal, deep
//	--seed <value>     - RNG seed for reproducible games
//	--fps <rate>       - Tick rate (default: from config)
//	--db <path>        - Results database (default: ~/.t2048/results.db)
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"lukechampine.com/frand"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal, with a computer player",
	Long: `t2048 is the 2048 sliding-tile game for the terminal. Play it yourself
or watch an expectimax search play it for you.

Available commands:
  play      - Play a game (menu when no mode is given)
  autoplay  - Play computer games without a terminal
  scores    - View recorded results
  presets   - List heuristic and search presets

Examples:
  t2048 play
  t2048 play ai --preset deep
  t2048 autoplay --games 20 --concurrency 4
  t2048 scores ai`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Search preset: fast, normal, deep")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
}

// loadConfig reads the config and applies --preset when given.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return config.Config{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// seed returns --seed, or a random non-zero seed when it is unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return int64(frand.Uint64n(1<<62)) + 1
}

func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = flagFPS
	rc.Seed = seed()
	return rc
}

// openStore opens the results database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
