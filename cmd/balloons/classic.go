package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balloonpop/internal/config"
	"github.com/vovakirdan/balloonpop/internal/console"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/engine"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/layouts"
	"github.com/vovakirdan/balloonpop/internal/storage"
)

var classicCmd = &cobra.Command{
	Use:   "classic",
	Short: "Play on plain stdin/stdout",
	Long: `Play without the full-screen interface. The board is printed after
every move, including each step of the balloons floating up.

At the row prompt enter a row number, 'u' to undo or 'q' to quit.
Input can be piped in, which makes rounds scriptable.

Examples:
  balloons classic
  balloons classic --difficulty easy --seed 7
  balloons classic --layout 01-warmup < moves.txt`,
	Args: cobra.NoArgs,
	Run:  runClassic,
}

func init() {
	classicCmd.Flags().StringVar(&flagLayout, "layout", "", "Puzzle layout ID to play")
}

// classicResult summarizes a finished line-driven round.
type classicResult struct {
	Score   int
	Pops    int
	Undos   int
	Cleared bool
	Quit    bool
}

func runClassic(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	gameCfg, err := config.LoadBalloon(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		gameCfg = config.DefaultBalloonConfig()
	}
	preset, _ := config.ParseDifficultyPreset(flagDifficulty)
	if flagDifficulty != "" {
		config.ApplyBalloonPreset(&gameCfg, preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess, layoutID, err := newClassicSession(gameCfg, flagLayout, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	gameID := balloonpop.GameID
	if layoutID != "" {
		gameID = balloonpop.LayoutGameID
	}
	logger.Info("classic round started", "game", gameID, "layout", layoutID, "seed", seed)

	res := playClassic(sess, os.Stdin, os.Stdout)

	if res.Pops == 0 && !res.Cleared {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		return
	}
	defer store.Close()

	rec := storage.ScoreRecord{
		GameID:  gameID,
		Layout:  layoutID,
		Score:   res.Score,
		Pops:    res.Pops,
		Undos:   res.Undos,
		Rows:    sess.Rows(),
		Cols:    sess.Cols(),
		Cleared: res.Cleared,
	}
	if _, err := store.SaveScore(rec); err != nil {
		logger.Warn("could not save score", "err", err)
		return
	}
	logger.Info("score saved", "game", gameID, "score", res.Score)
}

// newClassicSession creates a random board from the config, or the named
// layout when layoutID is set. It returns the ID of the layout actually used.
func newClassicSession(cfg config.BalloonConfig, layoutID string, seed int64) (*engine.Session, string, error) {
	limits := engine.Limits{MaxRows: cfg.Board.MaxRows, MaxCols: cfg.Board.MaxCols}

	if layoutID == "" {
		rng := rand.New(rand.NewSource(seed))
		sess, err := engine.NewSession(limits, cfg.Board.Rows, cfg.Board.Cols, rng)
		return sess, "", err
	}

	all, err := layouts.Load(config.ExpandHome(cfg.Layouts.Dir))
	if err != nil {
		return nil, "", err
	}
	l, ok := layouts.Find(all, layoutID)
	if !ok {
		return nil, "", fmt.Errorf("unknown layout %q", layoutID)
	}
	sess, err := l.NewSession(limits)
	return sess, l.ID, err
}

// playClassic runs the line-driven loop until no move is left, the input
// ends or the player quits.
func playClassic(sess *engine.Session, in io.Reader, out io.Writer) classicResult {
	r := console.NewReader(in, out)
	var res classicResult

	settle(sess, out)

	for {
		engine.Display(out, sess)
		fmt.Fprintf(out, "Score: %d  Left: %d\n", sess.Score(), sess.Remaining())

		if sess.Remaining() == 0 {
			res.Cleared = true
			fmt.Fprintln(out, "Board cleared!")
			break
		}
		if !sess.CanPop() {
			fmt.Fprintln(out, "No more moves.")
			break
		}

		row, cmd := readRow(r, out, sess.Rows())
		switch cmd {
		case "q":
			res.Quit = true
		case "u":
			if sess.Undo() {
				res.Undos++
				res.Pops--
			} else {
				fmt.Fprintln(out, "Nothing to undo.")
			}
			continue
		}
		if res.Quit {
			break
		}

		fmt.Fprint(out, "Column: ")
		col := r.ReadInt()
		if col == console.IntEOF {
			res.Quit = true
			break
		}

		n := sess.Pop(row, col)
		if n == 0 {
			fmt.Fprintf(out, "Cannot pop at (%d, %d).\n", row, col)
			continue
		}
		res.Pops++
		fmt.Fprintf(out, "Popped %d balloons for %d points.\n", n, n*(n-1))
		settle(sess, out)
	}

	res.Score = sess.Score()
	fmt.Fprintf(out, "Final score: %d\n", res.Score)
	return res
}

// readRow prompts until it gets a row in range or a command. End of input
// reads as "q".
func readRow(r *console.Reader, out io.Writer, rows int) (row int, cmd string) {
	fmt.Fprint(out, "Row (u = undo, q = quit): ")
	for {
		line, ok := r.ReadString()
		if !ok {
			return 0, "q"
		}
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "u" || line == "q" {
			return 0, line
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 0 && n < rows {
			return n, ""
		}
		fmt.Fprint(out, console.RetryPrompt)
	}
}

// settle floats the board one step at a time, printing each frame.
func settle(sess *engine.Session, out io.Writer) {
	for !sess.IsCompact() {
		sess.FloatOneStep()
		if !sess.IsCompact() {
			engine.Display(out, sess)
		}
	}
}
