package balloonpop

import (
	"strings"

	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateFloating    GameStateType = "floating"
	StatePaused      GameStateType = "paused"
	StateCleared     GameStateType = "cleared"
	StateNoMoves     GameStateType = "no_moves"
	StatePausedSmall GameStateType = "paused_small_window"
	StateError       GameStateType = "error"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Layout    string   // layout ID, empty for random boards
	Board     []string // one string per row, in token symbols
	Score     int
	Pops      int
	Undos     int
	Depth     int // undo levels available
	Remaining int
	CursorRow int
	CursorCol int
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Pops:      g.pops,
		Undos:     g.undos,
		CursorRow: g.cursorR,
		CursorCol: g.cursorC,
		State:     g.stateType(),
	}
	if g.mode == ModeLayout {
		snap.Layout = g.layoutID
	}
	if g.session == nil {
		return snap
	}

	snap.Score = g.session.Score()
	snap.Depth = g.session.Depth()
	snap.Remaining = g.session.Remaining()

	var sb strings.Builder
	if err := engine.DisplayRaw(&sb, g.session.Current()); err == nil {
		snap.Board = strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	}
	return snap
}

func (g *Game) stateType() GameStateType {
	switch {
	case g.loadErr != nil:
		return StateError
	case g.tooSmall:
		return StatePausedSmall
	case g.cleared:
		return StateCleared
	case g.gameOver:
		return StateNoMoves
	case g.paused:
		return StatePaused
	case g.animating:
		return StateFloating
	}
	return StatePlaying
}
