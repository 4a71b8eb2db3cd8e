// Package recall adapts the memory session to the arcade game contract.
// The Game is both a registry.Game driven by the platform tick loop and
// the memory.Surface the session draws through.
package recall

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/recall/internal/config"
	"github.com/vovakirdan/recall/internal/core"
	"github.com/vovakirdan/recall/internal/memory"
	"github.com/vovakirdan/recall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign" // levels advance after a fixed number of rounds
	ModeEndless  Mode = "endless"  // one level, the pattern grows until lives run out
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives session events; discarded unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes session logging to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the Recall memory game.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.RecallConfig
	session *memory.Session

	// Surface state, written only by session callbacks
	gridW, gridH int
	lit          *memory.Cell
	errCell      *memory.Cell
	errTicks     int
	message      string
	msgColor     core.Color
	level        int
	lives        int
	overlay      bool
	reached      int

	preset config.DifficultyPreset // overrides the package preset when set

	cursor memory.Cell
	paused bool
	tick   uint64

	layout   layout
	tooSmall bool
	minW     int
	minH     int
}

// New creates a new campaign mode Recall game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode Recall game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("recall", func() registry.Game {
		return New()
	})
	registry.Register("recall_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "recall_endless"
	}
	return "recall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Recall (Endless)"
	}
	return "Recall"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "One board, one ever-growing pattern"
	}
	return "Watch the tiles light up, then repeat the pattern"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultTickRate
	}

	// Load game config
	cfg, err := config.LoadRecall(configPath)
	if err != nil {
		logger.Warn("using default recall config", "err", err)
		cfg = config.DefaultRecallConfig()
	}

	// Apply difficulty preset if set
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyRecallPreset(&cfg, preset)
	}
	g.cfg = cfg

	g.lit = nil
	g.errCell = nil
	g.errTicks = 0
	g.message = ""
	g.overlay = false
	g.paused = false
	g.tick = 0
	g.cursor = memory.C(0, 0)

	// Size the window for the largest board this config can reach
	g.minW = 4*cfg.Grid.MaxSize + 1
	g.minH = 2*cfg.Grid.MaxSize + 3

	g.session = memory.NewSession(g, memory.Options{
		Rules:  g.rules(),
		Timing: g.timing(),
		Rand:   rand.New(rand.NewSource(runtime.Seed)),
		Logger: logger.With("game", g.ID()),
	})
	g.session.Start()
	g.relayout()
}

// SetDifficulty selects a preset for this game only. It takes effect on
// the next Reset.
func (g *Game) SetDifficulty(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.relayout()
}

func (g *Game) rules() memory.Rules {
	rules := memory.Rules{
		InitialWidth:       g.cfg.Grid.InitialWidth,
		InitialHeight:      g.cfg.Grid.InitialHeight,
		MaxSize:            g.cfg.Grid.MaxSize,
		GrowEvery:          g.cfg.Grid.GrowEvery,
		GrowBy:             g.cfg.Grid.GrowBy,
		MaxLives:           g.cfg.Lives.Max,
		RoundsPerLevel:     g.cfg.Progression.RoundsPerLevel,
		RefillLivesOnRetry: g.cfg.Lives.RefillOnRetry,
	}
	if g.mode == ModeEndless {
		rules.RoundsPerLevel = 0
	}
	return rules
}

func (g *Game) timing() memory.Timing {
	t := g.cfg.Timing
	return memory.Timing{
		Settle:        config.Seconds(t.Settle),
		Display:       config.Seconds(t.Display),
		Pause:         config.Seconds(t.Pause),
		BetweenRounds: config.Seconds(t.BetweenRounds),
		RetryDelay:    config.Seconds(t.RetryDelay),
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.session.GameOver() {
		g.session.Restart()
		g.paused = false
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}

	// Don't update if paused or game over
	if g.paused || g.session.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.moveCursor(in)

	if in.Has(core.ActionSelect) {
		g.session.OnCellClicked(g.cursor.X, g.cursor.Y)
	}
	for _, p := range in.Clicks {
		c, ok := g.layout.cellAt(p.X, p.Y)
		if !ok {
			continue
		}
		g.cursor = c
		g.session.OnCellClicked(c.X, c.Y)
	}

	g.session.Advance(g.runtime.TickInterval())

	if g.errTicks > 0 {
		g.errTicks--
		if g.errTicks == 0 {
			g.errCell = nil
		}
	}

	return core.StepResult{State: g.State()}
}

// moveCursor handles arrow and WASD movement, clamped to the board.
func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, g.gridW-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, g.gridH-1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.RoundsCompleted,
		Level:    snap.Level,
		Longest:  snap.Longest,
		GameOver: snap.GameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the underlying session state.
func (g *Game) Snapshot() memory.Snapshot {
	return g.session.Snapshot()
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}
