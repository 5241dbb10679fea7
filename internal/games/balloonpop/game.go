// Package balloonpop implements the Balloon Pop puzzle for the terminal
// game loop: random boards sized by difficulty, and fixed puzzle layouts.
package balloonpop

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/balloonpop/internal/config"
	"github.com/vovakirdan/balloonpop/internal/core"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/engine"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/layouts"
	"github.com/vovakirdan/balloonpop/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeRandom Mode = "random"
	ModeLayout Mode = "layout"
)

// Registry IDs.
const (
	GameID       = "balloonpop"
	LayoutGameID = "balloonpop_layout"
)

var errNoLayouts = errors.New("balloonpop: no layouts available")

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	selectedLayout   string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLayout selects the layout played by the next layout-mode game.
func SetLayout(id string) {
	selectedLayout = id
}

// Game implements Balloon Pop.
type Game struct {
	mode   Mode
	cfg    config.BalloonConfig
	limits engine.Limits
	rng    *rand.Rand
	tick   uint64

	session  *engine.Session
	layout   layouts.Layout // ModeLayout only
	layoutID string

	cursorR, cursorC int

	// Gravity animation after a pop
	animating  bool
	floatTicks int

	pops    int
	undos   int
	lastPop int
	message string

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver     bool
	cleared      bool
	clearedTicks int
	paused       bool
	tooSmall     bool
	loadErr      error
}

// New creates a game on a random board.
func New() *Game {
	return &Game{mode: ModeRandom}
}

// NewLayout creates a game on a fixed puzzle layout.
func NewLayout() *Game {
	return &Game{mode: ModeLayout}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(LayoutGameID, func() registry.Game {
		return NewLayout()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeLayout {
		return LayoutGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeLayout {
		return "Balloon Pop (Puzzles)"
	}
	return "Balloon Pop"
}

// Reset starts a new round.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadBalloon(configPath)
	if err != nil {
		cfg = config.DefaultBalloonConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBalloonPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.limits = engine.Limits{MaxRows: cfg.Board.MaxRows, MaxCols: cfg.Board.MaxCols}
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	g.pops = 0
	g.undos = 0
	g.lastPop = 0
	g.message = ""
	g.gameOver = false
	g.cleared = false
	g.clearedTicks = 0
	g.paused = false
	g.loadErr = nil

	// Keep the chosen layout across restarts
	if selectedLayout != "" {
		g.layoutID = selectedLayout
		selectedLayout = ""
	}

	g.session, g.loadErr = g.newSession()
	g.cursorR, g.cursorC = 0, 0
	g.animating = g.session != nil && !g.session.IsCompact()
	g.floatTicks = 0

	g.checkScreenSize()
}

// newSession builds the board for the current mode.
func (g *Game) newSession() (*engine.Session, error) {
	if g.mode == ModeRandom {
		return engine.NewSession(g.limits, g.cfg.Board.Rows, g.cfg.Board.Cols, g.rng)
	}

	all, err := layouts.Load(config.ExpandHome(g.cfg.Layouts.Dir))
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errNoLayouts
	}

	l, ok := layouts.Find(all, g.layoutID)
	if !ok {
		l = all[0]
	}
	g.layout = l
	g.layoutID = l.ID
	return l.NewSession(g.limits)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.loadErr != nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver && !g.cleared {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Board cleared banner
	if g.cleared {
		g.clearedTicks++
		if g.clearedTicks >= g.cfg.Animation.ClearedTicks {
			g.gameOver = true
		}
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	switch {
	case in.Has(core.ActionUndo):
		g.undo()
	case in.Has(core.ActionConfirm):
		g.pop()
	}

	if g.animating {
		g.advanceAnimation()
	}
	if !g.animating {
		g.checkEnd()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursorR--
	case in.Has(core.ActionDown):
		g.cursorR++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursorC--
	case in.Has(core.ActionRight):
		g.cursorC++
	}
	g.cursorR = core.Clamp(g.cursorR, 0, g.session.Rows()-1)
	g.cursorC = core.Clamp(g.cursorC, 0, g.session.Cols()-1)
}

// pop pops the cluster under the cursor. Ignored while balloons float.
func (g *Game) pop() {
	if g.animating {
		return
	}

	gained := g.session.Pop(g.cursorR, g.cursorC)
	if gained == 0 {
		if g.session.Balloon(g.cursorR, g.cursorC).IsBalloon() {
			g.message = "Need 2+ connected balloons"
		} else {
			g.message = "Nothing to pop here"
		}
		return
	}

	g.pops++
	g.lastPop = gained
	g.message = ""
	g.animating = !g.session.IsCompact()
	g.floatTicks = 0
}

// undo restores the board before the last pop. Refused mid-animation so
// the restored board is never a half-floated one.
func (g *Game) undo() {
	if g.animating {
		g.message = "Wait for balloons to settle"
		return
	}
	if !g.session.Undo() {
		g.message = "Nothing to undo"
		return
	}
	g.undos++
	g.lastPop = 0
	g.message = "Undone"
	g.animating = !g.session.IsCompact()
}

func (g *Game) advanceAnimation() {
	if g.cfg.Animation.FloatEveryTicks <= 0 {
		g.session.Compact()
		g.animating = false
		return
	}

	g.floatTicks++
	if g.floatTicks < g.cfg.Animation.FloatEveryTicks {
		return
	}
	g.floatTicks = 0
	g.session.FloatOneStep()
	g.animating = !g.session.IsCompact()
}

func (g *Game) checkEnd() {
	switch {
	case g.session.Remaining() == 0:
		g.cleared = true
		g.clearedTicks = 0
		if g.cfg.Animation.ClearedTicks <= 0 {
			g.gameOver = true
		}
	case !g.session.CanPop():
		g.gameOver = true
	}
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	if g.session == nil {
		g.tooSmall = false
		return
	}
	w, h := boardSize(g.session.Rows(), g.session.Cols())
	g.tooSmall = g.screenW < core.Max(w, minHUDWidth) || g.screenH < hudHeight+h+footerHeight
}

// Resize updates the screen size and keeps the round in progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.session != nil {
		score = g.session.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver || g.loadErr != nil,
		Paused:   g.paused || g.tooSmall || (g.cleared && !g.gameOver),
	}
}

// Summary reports round details for the score table.
func (g *Game) Summary() core.RunSummary {
	s := core.RunSummary{
		Pops:    g.pops,
		Undos:   g.undos,
		Cleared: g.cleared,
	}
	if g.mode == ModeLayout {
		s.Layout = g.layoutID
	}
	if g.session != nil {
		s.Rows = g.session.Rows()
		s.Cols = g.session.Cols()
	}
	return s
}
