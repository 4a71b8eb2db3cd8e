package recall

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/recall/internal/core"
	"github.com/vovakirdan/recall/internal/memory"
)

// Visual characters for rendering
const (
	TileChar    = '░'
	LitChar     = '█'
	ErrorChar   = '▓'
	HeartChar   = '♥'
	EmptyHeart  = '♡'
	BorderHoriz = '─'
)

const (
	hudRows    = 2 // stats line and separator
	footerRows = 2 // spacer and message line
	maxTileW   = 9
	maxTileH   = 4
)

// layout maps grid cells to screen rectangles. Tiles are separated by a
// one-character gap in both directions.
type layout struct {
	originX, originY int
	tileW, tileH     int
	cols, rows       int
}

// tileRect returns the screen area of cell c.
func (l layout) tileRect(c memory.Cell) core.Rect {
	return core.NewRect(
		l.originX+c.X*(l.tileW+1),
		l.originY+c.Y*(l.tileH+1),
		l.tileW,
		l.tileH,
	)
}

// cellAt hit-tests a screen position. Gaps between tiles hit nothing.
func (l layout) cellAt(x, y int) (memory.Cell, bool) {
	if l.tileW <= 0 || l.tileH <= 0 {
		return memory.Cell{}, false
	}
	dx, dy := x-l.originX, y-l.originY
	if dx < 0 || dy < 0 {
		return memory.Cell{}, false
	}
	if dx%(l.tileW+1) == l.tileW || dy%(l.tileH+1) == l.tileH {
		return memory.Cell{}, false
	}
	c := memory.C(dx/(l.tileW+1), dy/(l.tileH+1))
	if !c.In(l.cols, l.rows) {
		return memory.Cell{}, false
	}
	return c, true
}

// relayout fits the current board into the screen.
func (g *Game) relayout() {
	w, h := g.runtime.ScreenW, g.runtime.ScreenH
	g.tooSmall = w < g.minW || h < g.minH
	if g.tooSmall || g.gridW <= 0 || g.gridH <= 0 {
		g.layout = layout{}
		return
	}

	availW := w - 2
	availH := h - hudRows - footerRows

	tileW := core.Clamp((availW+1)/g.gridW-1, 1, maxTileW)
	tileH := core.Clamp((availH+1)/g.gridH-1, 1, maxTileH)
	boardW := g.gridW*(tileW+1) - 1
	boardH := g.gridH*(tileH+1) - 1

	g.layout = layout{
		originX: (w - boardW) / 2,
		originY: hudRows + max(0, (availH-boardH)/2),
		tileW:   tileW,
		tileH:   tileH,
		cols:    g.gridW,
		rows:    g.gridH,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.tooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minW, g.minH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	dst.DrawTextCenteredColored(dst.Height()-1, g.message, g.msgColor)
	g.renderOverlay(dst)
}

// renderHUD draws level, lives and round counters.
func (g *Game) renderHUD(dst *core.Screen) {
	levelText := fmt.Sprintf("Level: %d", g.level)
	if g.mode == ModeEndless {
		levelText = "Endless"
	}
	dst.DrawText(1, 0, levelText)

	hearts := strings.Repeat(string(HeartChar), g.lives) +
		strings.Repeat(string(EmptyHeart), max(0, g.cfg.Lives.Max-g.lives))
	dst.DrawTextCenteredColored(0, "Lives: "+hearts, core.ColorRed)

	snap := g.session.Snapshot()
	roundText := fmt.Sprintf("Pattern: %d/%d  Rounds: %d", len(snap.Progress), len(snap.Pattern), snap.RoundsCompleted)
	dst.DrawText(dst.Width()-len(roundText)-1, 0, roundText)

	for x := range dst.Width() {
		dst.SetColored(x, 1, BorderHoriz, core.ColorGray)
	}
}

// renderBoard draws every tile plus the cursor brackets.
func (g *Game) renderBoard(dst *core.Screen) {
	for y := range g.gridH {
		for x := range g.gridW {
			c := memory.C(x, y)
			glyph, color := TileChar, core.ColorGray
			switch {
			case g.errCell != nil && *g.errCell == c:
				glyph, color = ErrorChar, core.ColorBrightRed
			case g.lit != nil && *g.lit == c:
				glyph, color = LitChar, core.ColorBrightYellow
			}
			dst.DrawRect(g.layout.tileRect(c), glyph, color)
		}
	}

	if g.session.InputEnabled() {
		r := g.layout.tileRect(g.cursor)
		mid := r.Y + r.H/2
		dst.SetColored(r.X, mid, '[', core.ColorCyan)
		dst.SetColored(r.Right()-1, mid, ']', core.ColorCyan)
	}
}

// renderOverlay draws pause and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.overlay:
		subtitle := fmt.Sprintf("Reached level %d  |  Press R to restart", g.reached)
		g.drawCenteredBox(dst, "GAME OVER", subtitle, core.ColorBrightRed)
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawBox(box, c)
	dst.DrawRect(box.Inset(1), ' ', core.ColorDefault)

	dst.DrawTextColored(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, c)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
