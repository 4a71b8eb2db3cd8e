package recall

import (
	"github.com/vovakirdan/recall/internal/core"
	"github.com/vovakirdan/recall/internal/memory"
)

// Error flash length in seconds.
const flashSeconds = 0.4

var _ memory.Surface = (*Game)(nil)

// HighlightCell lights a tile during the reveal.
func (g *Game) HighlightCell(c memory.Cell) {
	g.lit = &c
}

// UnhighlightCell clears the lit tile.
func (g *Game) UnhighlightCell(c memory.Cell) {
	if g.lit != nil && *g.lit == c {
		g.lit = nil
	}
}

// FlashError marks a wrongly selected tile for a short moment.
func (g *Game) FlashError(c memory.Cell) {
	g.errCell = &c
	g.errTicks = max(1, int(flashSeconds*float64(g.runtime.TickRate)))
}

// UpdateDisplay refreshes the HUD counters.
func (g *Game) UpdateDisplay(level, lives int) {
	g.level = level
	g.lives = lives
}

// ShowMessage sets the status line, colored by the round outcome.
func (g *Game) ShowMessage(text string) {
	g.message = text
	g.msgColor = core.ColorDefault
	if g.session == nil {
		return
	}
	switch g.session.State() {
	case memory.StateRoundSucceeded:
		g.msgColor = core.ColorGreen
	case memory.StateRoundFailed:
		g.msgColor = core.ColorBrightRed
	case memory.StateAwaitingInput:
		g.msgColor = core.ColorCyan
	}
}

// ShowGameOverOverlay shows the final box until a restart.
func (g *Game) ShowGameOverOverlay(reachedLevel int) {
	g.overlay = true
	g.reached = reachedLevel
}

// HideGameOverOverlay removes the final box.
func (g *Game) HideGameOverOverlay() {
	g.overlay = false
}

// RebuildGrid resizes the board and keeps the cursor on it.
func (g *Game) RebuildGrid(w, h int) {
	g.gridW, g.gridH = w, h
	g.lit = nil
	g.errCell = nil
	g.errTicks = 0
	g.cursor.X = core.Clamp(g.cursor.X, 0, w-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, h-1)
	g.relayout()
}
