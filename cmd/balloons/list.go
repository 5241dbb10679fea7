package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balloonpop/internal/config"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/layouts"
	"github.com/vovakirdan/balloonpop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games and puzzles",
	Long:  `Shows the registered games and the puzzle layouts that can be played.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	cfg, err := config.LoadBalloon(flagConfig)
	if err != nil {
		cfg = config.DefaultBalloonConfig()
	}
	ls, err := layouts.Load(config.ExpandHome(cfg.Layouts.Dir))
	if err != nil {
		fmt.Printf("\nCould not load puzzles: %v\n", err)
	} else if len(ls) > 0 {
		fmt.Println()
		fmt.Println("Puzzles:")
		fmt.Println()

		maxIDLen = 2
		for _, l := range ls {
			maxIDLen = max(maxIDLen, len(l.ID))
		}
		fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Size", "Name")
		fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "----", "----")
		for _, l := range ls {
			fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, l.ID, fmt.Sprintf("%dx%d", l.Rows, l.Cols), l.Name)
		}
	}

	fmt.Println()
	fmt.Println("Run 'balloons play' for a random board or 'balloons play --layout <id>' for a puzzle.")
}
