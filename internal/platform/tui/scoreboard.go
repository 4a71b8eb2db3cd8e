package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/recall/internal/core"
	"github.com/vovakirdan/recall/internal/registry"
	"github.com/vovakirdan/recall/internal/storage"
)

const (
	minWidthForSidebar = 80 // narrower terminals get a mode switcher line instead
	sidebarWidth       = 22
	maxRuns            = 100
	boardChromeRows    = 9 // title, stats, switcher, borders, help
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the run history screen.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Mine     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Mine, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best runs per game mode, optionally filtered
// to the current player.
type ScoreboardModel struct {
	games    []registry.GameInfo
	current  int
	store    *storage.Store
	player   string
	mineOnly bool
	runs     []storage.Run
	stats    *storage.GameStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard. A nil store shows an empty board.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// newTable sizes the run table to the space left beside the sidebar.
func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 0}, // takes the spare width
		{Title: "Level", Width: 5},
		{Title: "Rounds", Width: 6},
		{Title: "Longest", Width: 7},
		{Title: "Played", Width: 12},
	}

	avail := m.width - 6 // frame border and padding
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2 // cell padding
	}
	columns[1].Width = core.Clamp(avail-used, 6, 24)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-boardChromeRows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches runs and stats for the current mode.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		gameID := m.games[m.current].ID
		m.runs, m.loadErr = m.fetchRuns(gameID)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(gameID)
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			m.playerLabel(r.Player),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Rounds),
			fmt.Sprintf("%d", r.LongestPattern),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) fetchRuns(gameID string) ([]storage.Run, error) {
	if !m.mineOnly || m.player == "" {
		return m.store.TopRuns(gameID, maxRuns)
	}

	// PlayerRuns spans every mode, newest first
	all, err := m.store.PlayerRuns(m.player, maxRuns)
	if err != nil {
		return nil, err
	}
	runs := all[:0]
	for _, r := range all {
		if r.GameID == gameID {
			runs = append(runs, r)
		}
	}
	return runs, nil
}

func (m ScoreboardModel) playerLabel(name string) string {
	switch {
	case name == "":
		return "-"
	case name == m.player && !m.mineOnly:
		return name + " *"
	}
	return name
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.switchGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.switchGame(-1)
			return m, nil

		case key.Matches(msg, m.keys.Mine):
			if m.player != "" {
				m.mineOnly = !m.mineOnly
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	title := "BEST RUNS"
	if m.mineOnly {
		title = "MY RUNS"
	}
	if len(m.games) > 0 {
		title += " - " + m.games[m.current].Title
	}
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardDimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", boardFrameStyle.Render(m.body())))
	} else {
		b.WriteString(centerText(m.switcher(), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(boardFrameStyle.Render(m.body()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no games played"
	}
	return fmt.Sprintf("%d games  |  best level %d  |  avg rounds %.1f  |  longest pattern %d",
		m.stats.GamesCount, m.stats.BestLevel, m.stats.AvgRounds, m.stats.LongestPattern)
}

// sidebar lists every mode with the current one highlighted.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Modes\n")
	b.WriteString(strings.Repeat("─", sidebarWidth-4))
	for i, g := range m.games {
		b.WriteString("\n")
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.current {
			b.WriteString(boardTitleStyle.Render("> " + name))
		} else {
			b.WriteString("  " + name)
		}
	}
	return boardFrameStyle.Width(sidebarWidth).Render(b.String())
}

// switcher is the narrow layout's one-line mode picker.
func (m ScoreboardModel) switcher() string {
	if len(m.games) == 0 {
		return ""
	}
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			parts[i] = boardActiveStyle.Render(g.Title)
		} else {
			parts[i] = boardDimStyle.Render(" " + g.Title + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.games[m.current].Title)
	}
	return line
}

// body is the run table, or a placeholder when there is nothing to list.
func (m ScoreboardModel) body() string {
	var msg string
	switch {
	case m.store == nil:
		msg = "Run history is unavailable."
	case m.loadErr != nil:
		msg = "Could not load runs."
	case len(m.runs) == 0 && m.mineOnly:
		msg = "You have no runs in this mode yet."
	case len(m.runs) == 0:
		msg = "No runs recorded yet.\nFinish a game to get on the board!"
	default:
		return m.table.View()
	}
	return boardDimStyle.Italic(true).Padding(1, 3).Render(msg)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Runs returns the runs currently listed.
func (m ScoreboardModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, player, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
