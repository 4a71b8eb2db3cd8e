package memory

// Surface is the presentation port. The session drives it with discrete
// commands and never reads anything back from it.
type Surface interface {
	HighlightCell(c Cell)
	UnhighlightCell(c Cell)
	FlashError(c Cell)
	UpdateDisplay(level, lives int)
	ShowMessage(text string)
	// ShowGameOverOverlay is issued once per game over; the presentation
	// answers with Session.Restart when the player asks for another game.
	ShowGameOverOverlay(reachedLevel int)
	HideGameOverOverlay()
	RebuildGrid(w, h int)
}
