package balloonpop

import (
	"fmt"

	"github.com/vovakirdan/balloonpop/internal/core"
	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/engine"
)

const (
	cellWidth    = 2 // balloon plus a gap
	hudHeight    = 4
	footerHeight = 2
	minHUDWidth  = 36
)

// boardSize returns the size of the boxed board in screen cells.
func boardSize(rows, cols int) (w, h int) {
	return cols*cellWidth + 3, rows + 2
}

// balloonColors maps each token to its color: dim when idle, bright when
// part of the cluster under the cursor.
var balloonColors = map[engine.Token][2]core.Color{
	engine.Red:    {core.ColorRed, core.ColorBrightRed},
	engine.Blue:   {core.ColorBlue, core.ColorBrightBlue},
	engine.Green:  {core.ColorGreen, core.ColorBrightGreen},
	engine.Yellow: {core.ColorYellow, core.ColorBrightYellow},
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.drawOverlay(dst, g.screenW/2, g.screenH/2, "CANNOT START", g.loadErr.Error(), "Press B to go back")
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.session.Rows(), g.session.Cols())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	hudX := core.Max((g.screenW-core.Max(boardW, minHUDWidth))/2, 0)
	hudW := core.Max(boardW, minHUDWidth)

	selected := g.selection()
	g.renderHUD(dst, hudX, hudW, len(selected))
	g.renderBoard(dst, boardX, boardY, boardW, boardH, selected)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")

	w, h := boardSize(g.session.Rows(), g.session.Cols())
	need := fmt.Sprintf("Need %dx%d", core.Max(w, minHUDWidth), hudHeight+h+footerHeight)
	dst.DrawTextCentered(y+1, need)
}

// selection returns the cells of the cluster under the cursor, or nil if
// popping there would do nothing.
func (g *Game) selection() map[[2]int]bool {
	if g.animating {
		return nil
	}
	t := g.session.Balloon(g.cursorR, g.cursorC)
	if !t.IsBalloon() {
		return nil
	}

	board := g.session.Current()
	if board.PopCluster(g.cursorR, g.cursorC, t) < engine.MinCluster {
		return nil
	}

	cells := make(map[[2]int]bool)
	for r := range g.session.Rows() {
		for c := range g.session.Cols() {
			if board.Get(r, c) == engine.None && g.session.Balloon(r, c) != engine.None {
				cells[[2]int{r, c}] = true
			}
		}
	}
	return cells
}

// renderHUD draws the title, score and board info.
func (g *Game) renderHUD(dst *core.Screen, x, w, selected int) {
	title := g.Title()
	if g.mode == ModeLayout && g.layout.Name != "" {
		title = g.layout.Name
	}
	dst.DrawTextColor(x+(w-len(title))/2, 0, title, core.ColorBrightWhite)

	dst.DrawText(x, 1, fmt.Sprintf("Score: %d", g.session.Score()))
	if g.lastPop > 0 {
		last := fmt.Sprintf("Last: %d (+%d)", g.lastPop, g.lastPop*(g.lastPop-1))
		dst.DrawText(x+w-len(last), 1, last)
	}

	dst.DrawText(x, 2, fmt.Sprintf("Left: %d  Undo: %d", g.session.Remaining(), g.session.Depth()))
	if selected > 0 {
		sel := fmt.Sprintf("Pick: %d (+%d)", selected, selected*(selected-1))
		dst.DrawTextColor(x+w-len(sel), 2, sel, core.ColorBrightCyan)
	}
}

// renderBoard draws the boxed grid with the cursor.
func (g *Game) renderBoard(dst *core.Screen, x, y, w, h int, selected map[[2]int]bool) {
	dst.DrawBox(core.NewRect(x, y, w, h))

	for r := range g.session.Rows() {
		for c := range g.session.Cols() {
			px := x + 2 + c*cellWidth
			py := y + 1 + r
			t := g.session.Balloon(r, c)

			color := core.ColorGray
			if pair, ok := balloonColors[t]; ok {
				color = pair[0]
				if selected[[2]int{r, c}] {
					color = pair[1]
				}
			}
			dst.SetColor(px, py, t.Char(), color)
		}
	}

	if g.gameOver || g.cleared {
		return
	}
	cx := x + 2 + g.cursorC*cellWidth
	cy := y + 1 + g.cursorR
	dst.SetColor(cx-1, cy, '[', core.ColorBrightWhite)
	dst.SetColor(cx+1, cy, ']', core.ColorBrightWhite)
}

// renderFooter draws the status message.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCentered(y, g.message)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.cleared:
		score := fmt.Sprintf("Score: %d in %d pops", g.session.Score(), g.pops)
		if g.gameOver {
			g.drawOverlay(dst, centerX, centerY, "BOARD CLEARED!", score, "Press R to restart")
		} else {
			g.drawOverlay(dst, centerX, centerY, "BOARD CLEARED!", score)
		}
	case g.gameOver:
		left := fmt.Sprintf("%d balloons left", g.session.Remaining())
		g.drawOverlay(dst, centerX, centerY, "NO MORE MOVES", left, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Pop | U: Undo | P: Pause | R: Restart | Q: Quit"
}
