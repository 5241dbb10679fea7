package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balloonpop/internal/games/balloonpop"
	"github.com/vovakirdan/balloonpop/internal/platform/tui"
	"github.com/vovakirdan/balloonpop/internal/registry"
	"github.com/vovakirdan/balloonpop/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the game menu and scoreboard",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a round you return to the menu with Esc.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  balloons menu
  balloons menu --fps 60
  balloons menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		store = nil
	}

	applyGameFlags()
	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		if gameID == balloonpop.GameID && flagDifficulty == "" {
			selected, updatedCfg, ok, selErr := selectBoard(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			cfg = updatedCfg

			// User pressed back or quit
			if !ok {
				continue
			}
			gameID = selected
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh board for each round unless a seed was given
		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("round started", "game", gameID, "seed", cfg.Seed)
		back, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			logger.Error("game loop failed", "err", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			break
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
