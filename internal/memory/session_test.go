package memory

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

// scriptedSource replays fixed values, modulo n.
type scriptedSource struct {
	vals []int
	i    int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

// recorder is a Surface that logs every command it receives.
type recorder struct {
	events   []string
	messages []string
	lit      map[Cell]bool
	maxLit   int
	level    int
	lives    int
	w, h     int
	overlays int
	hidden   int
}

func newRecorder() *recorder {
	return &recorder{lit: make(map[Cell]bool)}
}

func (r *recorder) HighlightCell(c Cell) {
	r.events = append(r.events, "highlight "+c.String())
	r.lit[c] = true
	r.maxLit = max(r.maxLit, len(r.lit))
}

func (r *recorder) UnhighlightCell(c Cell) {
	r.events = append(r.events, "unhighlight "+c.String())
	delete(r.lit, c)
}

func (r *recorder) FlashError(c Cell) {
	r.events = append(r.events, "error "+c.String())
}

func (r *recorder) UpdateDisplay(level, lives int) {
	r.level, r.lives = level, lives
}

func (r *recorder) ShowMessage(text string) {
	r.messages = append(r.messages, text)
}

func (r *recorder) ShowGameOverOverlay(int) { r.overlays++ }
func (r *recorder) HideGameOverOverlay()    { r.hidden++ }

func (r *recorder) RebuildGrid(w, h int) {
	r.w, r.h = w, h
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, rules Rules, src Source) (*Session, *recorder) {
	t.Helper()
	rec := newRecorder()
	s := NewSession(rec, Options{
		Rules:  rules,
		Timing: DefaultTiming(),
		Rand:   src,
	})
	return s, rec
}

// waitForInput advances in frame-sized steps until the reveal finishes.
func waitForInput(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 100000 && !s.InputEnabled(); i++ {
		s.Advance(frame)
	}
	if !s.InputEnabled() {
		t.Fatalf("input never enabled, state %s", s.State())
	}
}

// replay clicks the whole pattern and returns the last outcome.
func replay(t *testing.T, s *Session) Outcome {
	t.Helper()
	var out Outcome
	for _, c := range s.Pattern() {
		out = s.OnCellClicked(c.X, c.Y)
	}
	return out
}

func TestFirstRoundSingleCell(t *testing.T) {
	rules := DefaultRules()
	s, rec := newTestSession(t, rules, &scriptedSource{vals: []int{2, 1}})
	s.Start()

	if w, h := s.Grid(); w != 4 || h != 4 {
		t.Fatalf("Grid() = %dx%d, want 4x4", w, h)
	}
	if got := s.Pattern(); len(got) != 1 || got[0] != C(2, 1) {
		t.Fatalf("Pattern() = %v, want [(2,1)]", got)
	}
	if s.State() != StateRevealing {
		t.Fatalf("State() = %s, want revealing", s.State())
	}
	if rec.messages[0] != "Level 1 — 4x4" {
		t.Errorf("first message = %q", rec.messages[0])
	}

	waitForInput(t, s)
	if got := strings.Join(rec.events, ","); got != "highlight (2,1),unhighlight (2,1)" {
		t.Errorf("reveal events = %s", got)
	}

	if out := s.OnCellClicked(2, 1); out != OutcomeComplete {
		t.Fatalf("OnCellClicked(2,1) = %v, want Complete", out)
	}
	if s.Lives() != 3 || rec.lives != 3 {
		t.Errorf("lives = %d (display %d), want 3", s.Lives(), rec.lives)
	}
	if s.State() != StateRoundSucceeded {
		t.Errorf("State() = %s, want round_succeeded", s.State())
	}
}

func TestRevealTimingAndSettle(t *testing.T) {
	s, rec := newTestSession(t, DefaultRules(), &scriptedSource{vals: []int{1, 1}})
	s.Start()

	s.Advance(499 * time.Millisecond)
	if len(rec.events) != 0 {
		t.Fatalf("nothing should light before the settle delay, got %v", rec.events)
	}
	s.Advance(time.Millisecond)
	if rec.count("highlight") != 1 {
		t.Fatalf("cell should light at 0.5s, events %v", rec.events)
	}
	s.Advance(1499 * time.Millisecond)
	if rec.count("unhighlight") != 0 {
		t.Fatal("cell should stay lit for the full display time")
	}
	s.Advance(time.Millisecond)
	if rec.count("unhighlight") != 1 {
		t.Fatal("cell should go dark at 2.0s")
	}
	if s.InputEnabled() {
		t.Fatal("input must stay disabled through the trailing pause")
	}
	s.Advance(300 * time.Millisecond)
	if !s.InputEnabled() {
		t.Fatal("input should be enabled once the reveal is done")
	}
}

func TestPatternGrowsEveryRound(t *testing.T) {
	rules := DefaultRules()
	rules.RoundsPerLevel = 0
	s, rec := newTestSession(t, rules, rand.New(rand.NewSource(42)))
	s.Start()

	for n := 1; n <= 8; n++ {
		if got := len(s.Pattern()); got != n {
			t.Fatalf("round %d: pattern length %d", n, got)
		}
		waitForInput(t, s)
		if out := replay(t, s); out != OutcomeComplete {
			t.Fatalf("round %d: replay ended with %v", n, out)
		}
		if got := s.RoundsCompleted(); got != n {
			t.Fatalf("RoundsCompleted() = %d, want %d", got, n)
		}
		s.Advance(DefaultTiming().BetweenRounds)
	}

	if s.Level() != 1 {
		t.Errorf("level should not advance with RoundsPerLevel=0, got %d", s.Level())
	}
	if rec.maxLit > 1 {
		t.Errorf("at most one cell may be lit at once, saw %d", rec.maxLit)
	}
}

func TestWrongClickRetriesSamePattern(t *testing.T) {
	for _, refill := range []bool{true, false} {
		t.Run(fmt.Sprintf("refill=%v", refill), func(t *testing.T) {
			rules := DefaultRules()
			rules.RefillLivesOnRetry = refill
			s, rec := newTestSession(t, rules, &scriptedSource{vals: []int{0, 0, 3, 3}})
			s.Start()

			waitForInput(t, s)
			if out := s.OnCellClicked(0, 0); out != OutcomeComplete {
				t.Fatalf("first round = %v, want Complete", out)
			}
			s.Advance(DefaultTiming().BetweenRounds)

			want := []Cell{C(0, 0), C(3, 3)}
			if got := s.Pattern(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
				t.Fatalf("Pattern() = %v, want %v", got, want)
			}

			waitForInput(t, s)
			if out := s.OnCellClicked(0, 0); out != OutcomeCorrect {
				t.Fatalf("click (0,0) = %v, want Correct", out)
			}
			if out := s.OnCellClicked(1, 1); out != OutcomeIncorrect {
				t.Fatalf("click (1,1) = %v, want Incorrect", out)
			}
			if s.Lives() != 2 || rec.lives != 2 {
				t.Fatalf("lives = %d (display %d), want 2", s.Lives(), rec.lives)
			}
			if rec.count("error (1,1)") != 1 {
				t.Errorf("expected one error flash on (1,1), events %v", rec.events)
			}
			if s.OnCellClicked(3, 3) != OutcomeIgnored {
				t.Error("clicks after Incorrect must be ignored")
			}

			s.Advance(DefaultTiming().RetryDelay)

			if got := s.Pattern(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
				t.Fatalf("retry changed the pattern to %v", got)
			}
			if len(s.Progress()) != 0 {
				t.Errorf("Progress() = %v, want empty after retry", s.Progress())
			}
			if s.State() != StateRevealing {
				t.Errorf("retry should replay the reveal, state %s", s.State())
			}

			wantLives := 2
			if refill {
				wantLives = 3
			}
			if s.Lives() != wantLives {
				t.Errorf("lives after retry = %d, want %d", s.Lives(), wantLives)
			}

			waitForInput(t, s)
			if out := replay(t, s); out != OutcomeComplete {
				t.Errorf("replaying the same pattern after retry = %v, want Complete", out)
			}
		})
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	rules := DefaultRules()
	rules.MaxLives = 1
	s, rec := newTestSession(t, rules, &scriptedSource{vals: []int{1, 2}})
	s.Start()
	waitForInput(t, s)

	if out := s.OnCellClicked(0, 0); out != OutcomeIncorrect {
		t.Fatalf("wrong click = %v, want Incorrect", out)
	}
	if !s.GameOver() {
		t.Fatal("GameOver() should be true")
	}
	if s.Lives() != 0 {
		t.Errorf("Lives() = %d, want 0", s.Lives())
	}
	if rec.overlays != 1 {
		t.Errorf("overlay shown %d times, want 1", rec.overlays)
	}

	before := s.Snapshot()
	s.Advance(time.Minute)
	s.NextLevel()
	if out := s.OnCellClicked(1, 2); out != OutcomeIgnored {
		t.Errorf("click after game over = %v, want Ignored", out)
	}
	after := s.Snapshot()
	if after.Level != before.Level || len(after.Pattern) != len(before.Pattern) || !after.GameOver {
		t.Errorf("game over state changed: before %+v after %+v", before, after)
	}
	if rec.overlays != 1 {
		t.Errorf("overlay shown %d times, want exactly 1", rec.overlays)
	}

	s.Restart()
	if rec.hidden != 1 {
		t.Errorf("overlay hidden %d times, want 1", rec.hidden)
	}
	if s.GameOver() || s.Level() != 1 || s.Lives() != 1 {
		t.Errorf("after restart: over=%v level=%d lives=%d", s.GameOver(), s.Level(), s.Lives())
	}
	if len(s.Pattern()) != 1 {
		t.Errorf("restart should begin with a fresh one-cell pattern, got %v", s.Pattern())
	}
}

func TestLivesRunOutWithoutRefill(t *testing.T) {
	rules := DefaultRules()
	rules.RefillLivesOnRetry = false
	s, rec := newTestSession(t, rules, &scriptedSource{vals: []int{3, 3}})
	s.Start()

	for i := 3; i > 0; i-- {
		waitForInput(t, s)
		s.OnCellClicked(0, 0)
		if s.Lives() != i-1 {
			t.Fatalf("lives = %d, want %d", s.Lives(), i-1)
		}
		s.Advance(DefaultTiming().RetryDelay)
	}

	if !s.GameOver() || rec.overlays != 1 {
		t.Errorf("expected game over with one overlay, over=%v overlays=%d", s.GameOver(), rec.overlays)
	}
}

func TestGridGrowsEveryThirdLevel(t *testing.T) {
	s, rec := newTestSession(t, DefaultRules(), rand.New(rand.NewSource(3)))
	s.Start()

	want := map[int]int{1: 4, 2: 4, 3: 4, 4: 5, 5: 5, 6: 5, 7: 6, 9: 6, 10: 6, 13: 6}
	for level := 1; level <= 13; level++ {
		if s.Level() != level {
			t.Fatalf("Level() = %d, want %d", s.Level(), level)
		}
		w, h := s.Grid()
		if size, ok := want[level]; ok && (w != size || h != size) {
			t.Errorf("level %d grid = %dx%d, want %dx%d", level, w, h, size, size)
		}
		if rec.w != w || rec.h != h {
			t.Errorf("level %d: surface grid %dx%d, session %dx%d", level, rec.w, rec.h, w, h)
		}
		if gw, gh := DefaultRules().GridForLevel(level); gw != w || gh != h {
			t.Errorf("GridForLevel(%d) = %dx%d, session %dx%d", level, gw, gh, w, h)
		}
		s.NextLevel()
	}
}

func TestLevelAdvancesAfterRoundsPerLevel(t *testing.T) {
	rules := DefaultRules()
	rules.RoundsPerLevel = 2
	s, _ := newTestSession(t, rules, rand.New(rand.NewSource(9)))
	s.Start()

	for round := 0; round < 2; round++ {
		waitForInput(t, s)
		if out := replay(t, s); out != OutcomeComplete {
			t.Fatalf("round %d = %v", round, out)
		}
		s.Advance(DefaultTiming().BetweenRounds)
	}

	if s.Level() != 2 {
		t.Fatalf("Level() = %d, want 2", s.Level())
	}
	if len(s.Pattern()) != 1 {
		t.Errorf("new level should start with a fresh pattern, got %v", s.Pattern())
	}
	if s.Lives() != rules.MaxLives {
		t.Errorf("Lives() = %d, want %d", s.Lives(), rules.MaxLives)
	}
}

func TestClicksIgnoredWhileRevealing(t *testing.T) {
	s, _ := newTestSession(t, DefaultRules(), &scriptedSource{vals: []int{2, 2}})
	s.Start()
	s.Advance(700 * time.Millisecond) // cell is lit

	before := s.Snapshot()
	for i := 0; i < 5; i++ {
		if out := s.OnCellClicked(2, 2); out != OutcomeIgnored {
			t.Fatalf("click during reveal = %v, want Ignored", out)
		}
	}
	after := s.Snapshot()
	if len(after.Progress) != 0 || len(after.Pattern) != len(before.Pattern) || after.State != StateRevealing {
		t.Errorf("ignored clicks mutated state: %+v", after)
	}
}

func TestClickOutsideGridIgnored(t *testing.T) {
	s, _ := newTestSession(t, DefaultRules(), &scriptedSource{vals: []int{0, 0}})
	s.Start()
	waitForInput(t, s)

	for _, c := range []Cell{C(-1, 0), C(4, 0), C(0, 4)} {
		if out := s.OnCellClicked(c.X, c.Y); out != OutcomeIgnored {
			t.Errorf("click %v = %v, want Ignored", c, out)
		}
	}
	if !s.InputEnabled() || len(s.Progress()) != 0 {
		t.Error("out-of-grid clicks must not consume the attempt")
	}
}

func TestStrictModePanicsOnMisuse(t *testing.T) {
	s := NewSession(newRecorder(), Options{
		Rules:  DefaultRules(),
		Timing: DefaultTiming(),
		Rand:   &scriptedSource{vals: []int{0}},
		Strict: true,
	})
	s.Start()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for click during reveal in strict mode")
		}
	}()
	s.OnCellClicked(0, 0)
}

func TestNextLevelCancelsReveal(t *testing.T) {
	s, rec := newTestSession(t, DefaultRules(), &scriptedSource{vals: []int{1, 1, 2, 2}})
	s.Start()
	s.Advance(600 * time.Millisecond)
	if !rec.lit[C(1, 1)] {
		t.Fatal("(1,1) should be lit mid-reveal")
	}
	epoch := s.Snapshot().Epoch

	s.NextLevel()
	if len(rec.lit) != 0 {
		t.Errorf("abandoning a reveal must clear the lit cell, lit=%v", rec.lit)
	}
	if s.Snapshot().Epoch <= epoch {
		t.Error("NextLevel should bump the timeline epoch")
	}

	waitForInput(t, s)
	// Only the new level's cell may have been lit after the cancel.
	if got := rec.count("highlight (1,1)"); got != 1 {
		t.Errorf("stale reveal fired: highlight (1,1) seen %d times", got)
	}
	if got := s.Pattern(); len(got) != 1 || got[0] != C(2, 2) {
		t.Errorf("Pattern() = %v, want [(2,2)]", got)
	}
}

func TestRestartDuringDelayDropsStaleRound(t *testing.T) {
	rules := DefaultRules()
	rules.RoundsPerLevel = 0
	s, _ := newTestSession(t, rules, rand.New(rand.NewSource(5)))
	s.Start()
	waitForInput(t, s)
	replay(t, s)

	// A round start is pending; restarting must invalidate it.
	s.Restart()
	s.Advance(DefaultTiming().BetweenRounds + time.Second)

	if got := len(s.Pattern()); got != 1 {
		t.Errorf("stale round start extended the pattern to %d", got)
	}
	if s.RoundsCompleted() != 0 {
		t.Errorf("RoundsCompleted() = %d, want 0 after restart", s.RoundsCompleted())
	}
}

func TestReplayAlwaysCompletes(t *testing.T) {
	rules := DefaultRules()
	rules.RoundsPerLevel = 3
	for seed := int64(1); seed <= 20; seed++ {
		s, _ := newTestSession(t, rules, rand.New(rand.NewSource(seed)))
		s.Start()
		for round := 0; round < 7; round++ {
			waitForInput(t, s)
			if out := replay(t, s); out != OutcomeComplete {
				t.Fatalf("seed %d round %d: replay = %v", seed, round, out)
			}
			s.Advance(DefaultTiming().BetweenRounds)
		}
	}
}

func TestStartIsIdempotent(t *testing.T) {
	s, _ := newTestSession(t, DefaultRules(), rand.New(rand.NewSource(1)))
	if s.State() != StateIdle {
		t.Fatalf("new session state = %s, want idle", s.State())
	}
	s.NextLevel()
	if s.Level() != 1 {
		t.Error("NextLevel before Start should be ignored")
	}

	s.Start()
	s.Start()
	if got := len(s.Pattern()); got != 1 {
		t.Errorf("second Start extended pattern to %d", got)
	}
}
