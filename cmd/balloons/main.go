// balloons is a terminal balloon pop puzzle game.
//
// Usage:
//
//	balloons list              - List available games
//	balloons play [game]       - Play a board or puzzle
//	balloons menu              - Start menu with scoreboard
//	balloons classic           - Line-driven play on stdin/stdout
//	balloons scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.balloons/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Board preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Log destination (default: ~/.balloons/balloons.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/balloonpop/internal/config"
	"github.com/vovakirdan/balloonpop/internal/core"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "balloons",
	Short: "Balloons - pop clusters of matching balloons in your terminal",
	Long: `Balloons is a puzzle game played on a grid of colored balloons.
Pop a group of two or more touching balloons of the same color to score
n*(n-1) points; the balloons below float up to fill the gap.

Available commands:
  list     - Show all available games
  play     - Play a random board or a puzzle layout
  menu     - Interactive menu with scoreboard
  classic  - Line-driven play without the full-screen UI
  scores   - View high scores

Examples:
  balloons play
  balloons play --difficulty hard --seed 42
  balloons play --layout 01-warmup
  balloons classic --difficulty easy
  balloons scores balloonpop`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
			return err
		}
		_, err := log.ParseLevel(flagLogLevel)
		return err
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.balloons/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Board preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.balloons/balloons.log", "Log file path (empty = stderr)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(classicCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the application logger. Full-screen commands must not
// write to the terminal, so logs go to a file unless --log-file is empty.
// The returned closer releases the file.
func newLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if flagLogFile != "" {
		path := config.ExpandHome(flagLogFile)
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr == nil {
			f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if openErr == nil {
				w = f
				closer = func() { f.Close() }
			} else {
				w = io.Discard
			}
		} else {
			w = io.Discard
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "balloons",
		Level:           level,
	})
	return logger, closer
}

// runtimeConfig returns the runtime config sized to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyGameFlags hands the config and difficulty flags to the game package
// before a game instance is created.
func applyGameFlags() {
	balloonpop.SetConfigPath(flagConfig)
	balloonpop.SetDifficultyPreset(flagDifficulty)
}
