package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balloonpop/internal/registry"
	"github.com/vovakirdan/balloonpop/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game.

Examples:
  balloons scores balloonpop
  balloons scores balloonpop_layout
  balloons scores balloonpop --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'balloons list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("Scores for %s cleared.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'balloons play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-14s  %-5s  %s\n", "Rank", "Score", "Pops", "Board", "Puzzle", "Clear", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-14s  %-5s  %s\n", "----", "-----", "----", "-----", "------", "-----", "----")

	for i, entry := range scores {
		puzzle := entry.Layout
		if puzzle == "" {
			puzzle = "-"
		}
		cleared := "no"
		if entry.Cleared {
			cleared = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-6s  %-14s  %-5s  %s\n",
			i+1, entry.Score, entry.Pops, fmt.Sprintf("%dx%d", entry.Rows, entry.Cols),
			puzzle, cleared, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Rounds: %d  Cleared: %d  Average: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.ClearedCount, stats.AvgScore)
	}
}
