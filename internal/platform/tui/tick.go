// Package tui runs games in the terminal with Bubble Tea: the game loop,
// key mapping, the game picker, the balloon mode picker and the scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after one tick interval.
// Rates below 1 fall back to the default.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

const defaultTickRate = 30
