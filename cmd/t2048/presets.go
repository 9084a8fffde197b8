package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/ai"
	"github.com/vovakirdan/tui-2048/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List heuristic and search presets",
	Long:  `Shows the heuristic presets usable as solver.heuristic and the search presets usable with --preset.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runPresets(cmd *cobra.Command, args []string) {
	heuristics := ai.List()

	maxIDLen := len(config.CustomHeuristic)
	for _, p := range heuristics {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Println("Heuristics:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range heuristics {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, config.CustomHeuristic, "Weights from the heuristic section of the config")

	fmt.Println()
	fmt.Println("Search presets:")
	fmt.Println()
	for _, p := range config.Presets() {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p, p.Describe())
	}

	fmt.Println()
	fmt.Println("Run 't2048 play ai --preset <name>' to use a search preset.")
}
