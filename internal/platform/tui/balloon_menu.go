package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/balloonpop/internal/config"
	"github.com/vovakirdan/balloonpop/internal/core"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/layouts"
)

// BalloonMode represents the selected board source.
type BalloonMode int

const (
	BalloonModeRandom BalloonMode = iota
	BalloonModeLayout
)

// BalloonSelection holds the user's choice from the Balloon Pop menu.
type BalloonSelection struct {
	Mode       BalloonMode
	Difficulty config.DifficultyPreset // BalloonModeRandom only
	LayoutID   string                  // BalloonModeLayout only
}

var balloonDifficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// BalloonModeModel lets users pick a random board size or a puzzle layout.
type BalloonModeModel struct {
	presets        map[config.DifficultyPreset]config.BoardSize
	layouts        []layouts.Layout
	cursor         int
	layoutCursor   int
	inLayoutSelect bool
	width          int
	height         int
	keyMapper      *KeyMapper
	selection      BalloonSelection
	choosing       bool
	quitting       bool
	back           bool
}

// NewBalloonModeModel creates the mode selection model. The cursor starts
// on the normal preset.
func NewBalloonModeModel(cfg config.BalloonConfig, ls []layouts.Layout, width, height int) BalloonModeModel {
	return BalloonModeModel{
		presets:   cfg.Presets,
		layouts:   ls,
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m BalloonModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BalloonModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m BalloonModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLayoutSelect {
		return m.handleLayoutSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

// optionCount counts the difficulties plus the puzzles entry.
func (m BalloonModeModel) optionCount() int {
	return len(balloonDifficulties) + 1
}

func (m BalloonModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor < len(balloonDifficulties) {
			m.choosing = false
			m.selection = BalloonSelection{
				Mode:       BalloonModeRandom,
				Difficulty: balloonDifficulties[m.cursor],
			}
			return m, tea.Quit
		}
		if len(m.layouts) > 0 {
			m.inLayoutSelect = true
			m.layoutCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m BalloonModeModel) handleLayoutSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.layoutCursor > 0 {
			m.layoutCursor--
		}
	case MenuActionDown:
		if m.layoutCursor < len(m.layouts)-1 {
			m.layoutCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = BalloonSelection{
			Mode:     BalloonModeLayout,
			LayoutID: m.layouts[m.layoutCursor].ID,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLayoutSelect = false
	}

	return m, nil
}

// View renders the mode/layout selection.
func (m BalloonModeModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	if m.inLayoutSelect {
		return m.viewLayoutSelect()
	}
	return m.viewModeSelect()
}

func (m BalloonModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B A L L O O N   P O P", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board:", m.width))
	b.WriteString("\n\n")

	for i := range m.optionCount() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var label string
		if i < len(balloonDifficulties) {
			d := balloonDifficulties[i]
			size := m.presets[d]
			label = fmt.Sprintf("%-8s %dx%d", strings.ToUpper(string(d[:1]))+string(d[1:]), size.Rows, size.Cols)
		} else {
			label = fmt.Sprintf("Puzzles (%d)...", len(m.layouts))
		}
		b.WriteString(centerText(cursor+label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m BalloonModeModel) viewLayoutSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT PUZZLE", m.width))
	b.WriteString("\n\n")

	for i, l := range m.layouts {
		cursor := "  "
		if i == m.layoutCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-16s %2dx%-2d", cursor, l.Name, l.Rows, l.Cols)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if hint := m.layouts[m.layoutCursor].Metadata["hint"]; hint != "" {
		b.WriteString("\n")
		b.WriteString(centerText(hint, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m BalloonModeModel) Selected() *BalloonSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m BalloonModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BalloonModeModel) WantsBack() bool {
	return m.back
}

// RunBalloonModeSelector runs the Balloon Pop board selection.
// A nil selection means the user went back or quit.
func RunBalloonModeSelector(cfg core.RuntimeConfig, gameCfg config.BalloonConfig, ls []layouts.Layout) (*BalloonSelection, core.RuntimeConfig, error) {
	model := NewBalloonModeModel(gameCfg, ls, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(BalloonModeModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.width, m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
