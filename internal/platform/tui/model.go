package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/balloonpop/internal/core"
	"github.com/vovakirdan/balloonpop/internal/registry"
	"github.com/vovakirdan/balloonpop/internal/storage"
)

// helpHeight is the number of rows below the game screen used by the
// key help line.
const helpHeight = 1

// ScoreSaver persists finished rounds. *storage.Store implements it.
type ScoreSaver interface {
	SaveScore(rec storage.ScoreRecord) (int64, error)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	saver      ScoreSaver
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      string
	quitting   bool
	back       bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// saver and logger may be nil.
func NewModel(game registry.Game, saver ScoreSaver, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		saver:      saver,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		runID:      storage.NewRunID(),
	}
}

func gameHeight(screenH int) int {
	return core.Max(screenH-helpHeight, 0)
}

// gameConfig is the runtime config as seen by the game: the help line is
// not part of its screen.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Debug("round started", "game", m.game.ID(), "run", m.runID, "seed", m.config.Seed)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.back = true
		return m, tea.Quit
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
		return m, nil
	}

	// Games without resize support start over
	if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.runID = storage.NewRunID()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.logger.Debug("round restarted", "game", m.game.ID(), "run", m.runID)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// record builds the score entry for the current round.
func (m Model) record() storage.ScoreRecord {
	rec := storage.ScoreRecord{
		RunID:  m.runID,
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
	}
	if s, ok := m.game.(registry.Summarizer); ok {
		sum := s.Summary()
		rec.Layout = sum.Layout
		rec.Pops = sum.Pops
		rec.Undos = sum.Undos
		rec.Rows = sum.Rows
		rec.Cols = sum.Cols
		rec.Cleared = sum.Cleared
	}
	return rec
}

// saveScore stores the finished round. Rounds with no score that did not
// clear the board are skipped.
func (m Model) saveScore() {
	rec := m.record()
	if rec.Score == 0 && !rec.Cleared {
		return
	}
	if m.saver == nil {
		m.logger.Debug("no score store, skipping save", "game", rec.GameID, "score", rec.Score)
		return
	}

	if _, err := m.saver.SaveScore(rec); err != nil {
		m.logger.Warn("could not save score", "game", rec.GameID, "run", rec.RunID, "error", err)
		return
	}
	m.logger.Info("score saved", "game", rec.GameID, "run", rec.RunID,
		"score", rec.Score, "pops", rec.Pops, "cleared", rec.Cleared)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".balloons", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: cannot create directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: cannot write file", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// WantsBack reports whether the user left the game for the menu.
func (m Model) WantsBack() bool {
	return m.back
}

// Run starts the Bubble Tea program with the given game.
// It returns true if the user went back to the menu rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	var saver ScoreSaver
	if store != nil {
		saver = store
	}
	model := NewModel(game, saver, cfg, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.WantsBack(), nil
}
