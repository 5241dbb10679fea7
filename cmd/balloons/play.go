package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balloonpop/internal/config"
	"github.com/vovakirdan/balloonpop/internal/core"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/layouts"
	"github.com/vovakirdan/balloonpop/internal/platform/tui"
	"github.com/vovakirdan/balloonpop/internal/registry"
	"github.com/vovakirdan/balloonpop/internal/storage"
)

var flagLayout string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a random board or a puzzle",
	Long: `Start playing Balloon Pop.

Without --difficulty or --layout a board picker is shown first.

Controls:
  Arrows/WASD/hjkl  - Move cursor
  Space/Enter       - Pop the group under the cursor
  U/Backspace       - Undo the last pop
  P                 - Pause
  R                 - Restart (after the round ends)
  Esc               - Back
  Q/Ctrl+C          - Quit
  ?                 - Toggle help

Difficulty options:
  easy   - Small board
  normal - Classic board
  hard   - Large board

Examples:
  balloons play
  balloons play --difficulty hard
  balloons play --seed 42
  balloons play --layout 02-stripes
  balloons play --config ./my-balloons.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Puzzle layout ID to play")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := balloonpop.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'balloons list' to see available games.")
		os.Exit(1)
	}

	applyGameFlags()
	cfg := runtimeConfig()

	switch {
	case flagLayout != "":
		gameID = balloonpop.LayoutGameID
		balloonpop.SetLayout(flagLayout)
	case flagDifficulty == "" && gameID == balloonpop.GameID:
		selected, updatedCfg, ok, err := selectBoard(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if !ok {
			return
		}
		gameID = selected
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Info("round started", "game", gameID, "seed", cfg.Seed)
	_, runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game loop failed", "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}

// selectBoard shows the board picker and prepares the game package for the
// choice. It returns the game ID to create; ok is false when the user went
// back or quit.
func selectBoard(cfg core.RuntimeConfig) (gameID string, updated core.RuntimeConfig, ok bool, err error) {
	gameCfg, loadErr := config.LoadBalloon(flagConfig)
	if loadErr != nil {
		gameCfg = config.DefaultBalloonConfig()
	}
	ls, loadErr := layouts.Load(config.ExpandHome(gameCfg.Layouts.Dir))
	if loadErr != nil {
		// The picker still offers random boards.
		ls = nil
	}

	selection, updated, err := tui.RunBalloonModeSelector(cfg, gameCfg, ls)
	if err != nil || selection == nil {
		return "", updated, false, err
	}

	if selection.Mode == tui.BalloonModeLayout {
		balloonpop.SetLayout(selection.LayoutID)
		return balloonpop.LayoutGameID, updated, true, nil
	}
	balloonpop.SetDifficultyPreset(string(selection.Difficulty))
	return balloonpop.GameID, updated, true, nil
}
