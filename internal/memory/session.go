package memory

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/recall/internal/schedule"
)

// Options configure a Session.
type Options struct {
	Rules  Rules
	Timing Timing
	Rand   Source      // defaults to a time-seeded *rand.Rand
	Logger *log.Logger // defaults to a discarding logger
	// Strict turns misuse (clicks while input is disabled, clicks outside
	// the grid) into panics instead of silent no-ops.
	Strict bool
}

// Session owns one player's game: the pattern, the verifier, the timeline
// and the level/lives/grid state. It is not safe for concurrent use; all
// calls, including Advance, must come from the same goroutine.
type Session struct {
	surface Surface
	rules   Rules
	timing  Timing
	rng     Source
	logger  *log.Logger
	strict  bool

	sched    *schedule.Scheduler
	pattern  Pattern
	verifier Verifier

	state    RoundState
	level    int
	lives    int
	width    int
	height   int
	gameOver bool

	extendNext      bool // grow the pattern at the next round start
	roundsInLevel   int
	roundsCompleted int
	longest         int
	lit             *Cell // cell currently highlighted by a reveal
}

// NewSession creates a session in the Idle state. Call Start to begin.
func NewSession(surface Surface, opts Options) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Session{
		surface: surface,
		rules:   opts.Rules,
		timing:  opts.Timing,
		rng:     rng,
		logger:  logger,
		strict:  opts.Strict,
		sched:   schedule.New(),
		state:   StateIdle,
		level:   1,
		lives:   opts.Rules.MaxLives,
		width:   opts.Rules.InitialWidth,
		height:  opts.Rules.InitialHeight,
	}
}

// Start begins level 1. Calls after the first are ignored.
func (s *Session) Start() {
	if s.state != StateIdle {
		return
	}
	s.logger.Info("session started",
		"grid", fmt.Sprintf("%dx%d", s.width, s.height),
		"lives", s.lives,
	)
	s.beginLevel(true)
}

// Advance moves session time forward by dt, firing due reveal steps and delays.
func (s *Session) Advance(dt time.Duration) {
	s.sched.Advance(dt)
}

// OnCellClicked feeds one player selection into the verifier.
// Clicks are only accepted while awaiting input; anything else is a no-op
// that returns OutcomeIgnored.
func (s *Session) OnCellClicked(x, y int) Outcome {
	c := C(x, y)
	if s.state != StateAwaitingInput || !s.verifier.Enabled() {
		return s.misuse(c, ErrInputDisabled)
	}
	if !c.In(s.width, s.height) {
		return s.misuse(c, ErrOutsideGrid)
	}

	s.setState(StateEvaluating)
	outcome, err := s.verifier.Submit(&s.pattern, c)
	if err != nil {
		// Progress ran past the pattern; end the attempt as a failure.
		s.logger.Warn("verifier rejected click", "cell", c, "err", err)
		outcome = OutcomeIncorrect
	}

	switch outcome {
	case OutcomeCorrect:
		s.setState(StateAwaitingInput)
	case OutcomeComplete:
		s.succeedRound()
	case OutcomeIncorrect:
		s.failRound(c)
	}
	return outcome
}

// NextLevel advances to the next level immediately, abandoning any round in
// flight. Ignored after game over.
func (s *Session) NextLevel() {
	if s.gameOver || s.state == StateIdle {
		s.logger.Debug("next level ignored", "state", s.state, "game_over", s.gameOver)
		return
	}
	s.advanceLevel()
}

// Restart abandons the current game and starts again from level 1.
func (s *Session) Restart() {
	wasOver := s.gameOver
	s.abandon()

	s.gameOver = false
	s.level = 1
	s.lives = s.rules.MaxLives
	s.width, s.height = s.rules.InitialWidth, s.rules.InitialHeight
	s.roundsCompleted = 0
	s.longest = 0

	if wasOver {
		s.surface.HideGameOverOverlay()
	}
	s.logger.Info("session restarted")
	s.beginLevel(true)
}

// beginLevel resets the board for a level attempt. A fresh level discards
// the pattern; a retry keeps it so the same sequence is replayed.
func (s *Session) beginLevel(fresh bool) {
	s.abandon()
	if fresh {
		s.pattern.Reset()
		s.extendNext = true
		s.roundsInLevel = 0
	}
	s.verifier.ResetProgress()

	s.surface.RebuildGrid(s.width, s.height)
	s.surface.UpdateDisplay(s.level, s.lives)
	s.surface.ShowMessage(fmt.Sprintf("Level %d — %dx%d", s.level, s.width, s.height))

	s.logger.Debug("level start",
		"level", s.level,
		"fresh", fresh,
		"lives", s.lives,
		"pattern_len", s.pattern.Len(),
	)
	s.beginRound()
}

// beginRound extends the pattern when due and schedules its reveal.
func (s *Session) beginRound() {
	if s.extendNext || s.pattern.Len() == 0 {
		c := s.pattern.Extend(s.rng, s.width, s.height)
		s.extendNext = false
		s.logger.Debug("pattern extended", "cell", c, "pattern_len", s.pattern.Len())
	}
	s.verifier.Disable()
	s.verifier.ResetProgress()
	s.setState(StateRevealing)
	s.logger.Debug("reveal scheduled",
		"pattern_len", s.pattern.Len(),
		"duration", RevealDuration(s.pattern.Len(), s.timing),
	)

	for _, ev := range PlanReveal(s.pattern.Cells(), s.timing) {
		s.sched.After(ev.At, func() { s.applyReveal(ev) })
	}
}

func (s *Session) applyReveal(ev RevealEvent) {
	switch ev.Kind {
	case RevealActivate:
		c := ev.Cell
		s.lit = &c
		s.surface.HighlightCell(c)
	case RevealDeactivate:
		s.lit = nil
		s.surface.UnhighlightCell(ev.Cell)
	case RevealDone:
		s.verifier.Enable()
		s.setState(StateAwaitingInput)
		s.surface.ShowMessage("Your turn")
	}
}

func (s *Session) succeedRound() {
	s.setState(StateRoundSucceeded)
	s.roundsCompleted++
	s.roundsInLevel++
	s.longest = max(s.longest, s.pattern.Len())

	if s.rules.RoundsPerLevel > 0 && s.roundsInLevel >= s.rules.RoundsPerLevel {
		s.surface.ShowMessage(fmt.Sprintf("Level %d complete!", s.level))
		s.sched.After(s.timing.BetweenRounds, s.advanceLevel)
		return
	}

	s.surface.ShowMessage(fmt.Sprintf("Correct! %d in a row", s.pattern.Len()))
	s.extendNext = true
	s.sched.After(s.timing.BetweenRounds, s.beginRound)
}

func (s *Session) failRound(c Cell) {
	s.setState(StateRoundFailed)
	s.surface.FlashError(c)

	s.lives = max(s.lives-1, 0)
	s.surface.UpdateDisplay(s.level, s.lives)

	if s.lives == 0 {
		s.gameOver = true
		s.surface.ShowMessage(fmt.Sprintf("Game Over! You reached level %d", s.level))
		s.surface.ShowGameOverOverlay(s.level)
		s.logger.Info("game over",
			"level", s.level,
			"rounds", s.roundsCompleted,
			"longest", s.longest,
		)
		return
	}

	s.surface.ShowMessage(fmt.Sprintf("Wrong! %d lives left", s.lives))
	s.sched.After(s.timing.RetryDelay, s.retryLevel)
}

func (s *Session) retryLevel() {
	if s.rules.RefillLivesOnRetry {
		s.lives = s.rules.MaxLives
	}
	s.beginLevel(false)
}

func (s *Session) advanceLevel() {
	s.level++
	s.width, s.height = s.rules.GridForLevel(s.level)
	s.lives = s.rules.MaxLives
	s.logger.Debug("level advance", "level", s.level, "grid", fmt.Sprintf("%dx%d", s.width, s.height))
	s.beginLevel(true)
}

// abandon invalidates the pending timeline and clears any lit cell.
func (s *Session) abandon() {
	s.sched.Cancel()
	s.verifier.Disable()
	if s.lit != nil {
		s.surface.UnhighlightCell(*s.lit)
		s.lit = nil
	}
}

func (s *Session) misuse(c Cell, err error) Outcome {
	if s.strict {
		panic(fmt.Errorf("click %v in state %s: %w", c, s.state, err))
	}
	s.logger.Debug("click ignored", "cell", c, "state", s.state, "err", err)
	return OutcomeIgnored
}

func (s *Session) setState(st RoundState) {
	if s.state != st {
		s.logger.Debug("round state", "from", s.state, "to", st)
	}
	s.state = st
}

// State returns the current round state.
func (s *Session) State() RoundState { return s.state }

// Level returns the current level number, starting at 1.
func (s *Session) Level() int { return s.level }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Grid returns the current grid dimensions.
func (s *Session) Grid() (w, h int) { return s.width, s.height }

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// Pattern returns a copy of the current pattern.
func (s *Session) Pattern() []Cell { return s.pattern.Cells() }

// Progress returns a copy of the cells entered in the current attempt.
func (s *Session) Progress() []Cell { return s.verifier.Progress() }

// RoundsCompleted returns the number of rounds completed since the last restart.
func (s *Session) RoundsCompleted() int { return s.roundsCompleted }

// InputEnabled reports whether a click would currently be evaluated.
func (s *Session) InputEnabled() bool {
	return s.state == StateAwaitingInput && s.verifier.Enabled()
}

// Snapshot returns the full session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:           s.state,
		Level:           s.level,
		Lives:           s.lives,
		Width:           s.width,
		Height:          s.height,
		GameOver:        s.gameOver,
		Pattern:         s.pattern.Cells(),
		Progress:        s.verifier.Progress(),
		RoundsCompleted: s.roundsCompleted,
		RoundsInLevel:   s.roundsInLevel,
		Longest:         s.longest,
		Epoch:           s.sched.Epoch(),
	}
}
