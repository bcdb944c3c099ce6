package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/modes"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/stats"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

// Options configures the game screen.
type Options struct {
	Session     *session.Session
	Stats       *stats.Tracker
	Leaderboard Leaderboard // nil disables result recording
	Modes       *modes.Registry

	// StartMode, when set and different from the resumed game's mode,
	// replaces that game with a new one in StartMode. The replaced game is
	// recorded like any abandoned game.
	StartMode modes.ID

	// Settings are the player preferences; changes made in game are
	// written back to SettingsKV when it is set.
	Settings   config.Settings
	SettingsKV config.KV

	Player        string
	TickInterval  time.Duration
	ScreenshotDir string // empty disables screenshots
	Renderer      *lipgloss.Renderer
	Logger        *log.Logger
}

// recordKey identifies the last result written to the leaderboard.
type recordKey struct {
	id     string
	moves  int
	status session.Status
}

// Model is the Bubble Tea model of the game screen.
type Model struct {
	session     *session.Session
	stats       *stats.Tracker
	leaderboard Leaderboard
	modes       *modes.Registry
	settings    config.Settings
	settingsKV  config.KV
	logger      *log.Logger

	player        string
	tickInterval  time.Duration
	screenshotDir string
	renderer      *lipgloss.Renderer
	theme         Theme
	keys          KeyMap
	help          help.Model

	scoreboard ScoreboardModel
	showScores bool

	recorded recordKey
	message  string
	width    int
	height   int
	quitting bool
}

// NewModel creates the game screen for an already opened session.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Stats == nil {
		opts.Stats = stats.NewTracker(storage.NewMemory(), opts.Logger)
	}
	if opts.Modes == nil {
		opts.Modes = modes.Default()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	m := Model{
		session:       opts.Session,
		stats:         opts.Stats,
		leaderboard:   opts.Leaderboard,
		modes:         opts.Modes,
		settings:      opts.Settings,
		settingsKV:    opts.SettingsKV,
		logger:        opts.Logger,
		player:        opts.Player,
		tickInterval:  opts.TickInterval,
		screenshotDir: opts.ScreenshotDir,
		renderer:      opts.Renderer,
		theme:         NewTheme(opts.Renderer, opts.Settings.Theme),
		keys:          DefaultKeyMap(),
		help:          help.New(),
	}
	// A resumed game that already ended is accounted for once.
	m.sync()
	if opts.StartMode != "" && opts.StartMode != m.session.State().Mode {
		m.abandon()
		m.restart(opts.StartMode)
	}
	return m
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showScores {
		return m.updateScores(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// updateScores routes messages to the scoreboard while it is open.
func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.handleTick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	updated, cmd := m.scoreboard.Update(msg)
	m.scoreboard = updated.(ScoreboardModel)
	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.showScores = false
		return m, nil
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if dir, ok := m.keys.Direction(msg); ok {
		if m.session.MakeMove(dir) {
			m.message = ""
			m.sync()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Undo):
		if m.session.Undo() {
			m.message = ""
			m.sync()
		} else {
			m.message = "Nothing to undo"
		}

	case key.Matches(msg, m.keys.Redo):
		if m.session.Redo() {
			m.message = ""
			m.sync()
		} else {
			m.message = "Nothing to redo"
		}

	case key.Matches(msg, m.keys.Restart):
		m.abandon()
		m.restart("")
		m.message = ""

	case key.Matches(msg, m.keys.Mode):
		m.cycleMode()

	case key.Matches(msg, m.keys.Bigger):
		m.resize(m.session.State().BoardSize + 1)

	case key.Matches(msg, m.keys.Smaller):
		m.resize(m.session.State().BoardSize - 1)

	case key.Matches(msg, m.keys.Theme):
		m.settings.Theme = NextTheme(m.theme.Name)
		m.theme = NewTheme(m.renderer, m.settings.Theme)
		m.saveSettings()
		m.message = "Theme: " + m.theme.Name

	case key.Matches(msg, m.keys.Scores):
		m.scoreboard = NewScoreboardModel(m.leaderboard, m.modes, m.session.State().Mode,
			m.player, m.renderer, m.width, m.height)
		m.showScores = true

	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
	}

	return m, nil
}

// handleTick refreshes the clock and keeps the tick loop running.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasFinished := m.session.Finished()
	m.session.Tick()
	if !wasFinished && m.session.Finished() {
		m.sync()
	}
	return m, tickCmd(m.tickInterval)
}

// cycleMode switches to the next mode. A game in progress keeps its board;
// a finished or untouched one is replaced.
func (m *Model) cycleMode() {
	st := m.session.State()
	next := m.modes.Next(st.Mode)
	if m.session.Finished() || st.MoveCount == 0 {
		m.restart(next)
	} else if err := m.session.SetGameMode(next); err != nil {
		m.logger.Warn("set mode", "mode", next, "err", err)
		return
	}
	m.message = "Mode: " + m.session.Mode().Name
}

// resize starts a game on a board of the given size and remembers it.
func (m *Model) resize(size int) {
	if !t2048.ValidBoardSize(size) {
		m.message = fmt.Sprintf("Board size must be %d-%d", t2048.MinBoardSize, t2048.MaxBoardSize)
		return
	}
	m.abandon()
	if err := m.session.SetBoardSize(size); err != nil {
		m.logger.Warn("set board size", "size", size, "err", err)
		return
	}
	m.settings.BoardSize = size
	m.saveSettings()
	m.message = fmt.Sprintf("Board: %dx%d", size, size)
}

// restart replaces the game, switching to mode unless it is empty.
func (m *Model) restart(mode modes.ID) {
	if err := m.session.RestartGame(mode); err != nil {
		m.logger.Warn("restart", "mode", mode, "err", err)
	}
}

// sync folds the live game into the statistics and, once it has
// finished, into the leaderboard.
func (m *Model) sync() {
	st := m.session.State()
	if st.MoveCount > 0 {
		m.stats.GameStarted(st.ID)
	}
	finished := m.session.Finished()
	m.stats.Observe(st, finished)
	if finished {
		m.record(st)
	}
}

// abandon closes the books on a game in progress that is about to be
// replaced.
func (m *Model) abandon() {
	st := m.session.State()
	if m.session.Finished() || st.MoveCount == 0 {
		return
	}
	m.stats.Observe(st, true)
	m.record(st)
}

// record writes st to the leaderboard unless it was the last one written.
func (m *Model) record(st session.GameState) {
	if m.leaderboard == nil || st.Score == 0 {
		return
	}
	k := recordKey{id: st.ID, moves: st.MoveCount, status: st.Status}
	if k == m.recorded {
		return
	}
	err := m.leaderboard.SaveResult(storage.Result{
		GameID:    st.ID,
		Player:    m.player,
		Mode:      string(st.Mode),
		BoardSize: st.BoardSize,
		Score:     st.Score,
		MaxTile:   st.MaxTile(),
		Moves:     st.MoveCount,
		Duration:  st.TimeElapsed,
		Won:       st.Status == session.StatusWon,
	})
	if err != nil {
		m.logger.Warn("record result", "id", st.ID, "err", err)
		return
	}
	m.recorded = k
}

func (m *Model) saveSettings() {
	if m.settingsKV == nil {
		return
	}
	if err := config.SaveSettings(m.settingsKV, m.settings); err != nil {
		m.logger.Warn("save settings", "err", err)
	}
}

// saveScreenshot writes the board as plain text to the screenshot directory.
func (m *Model) saveScreenshot() {
	if m.screenshotDir == "" {
		m.message = "Screenshots are disabled"
		return
	}
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("create screenshot dir", "err", err)
		return
	}

	st := m.session.State()
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", st.Mode, timestamp))
	text := fmt.Sprintf("2048 %s %dx%d  score %d  moves %d\n\n%s",
		st.Mode, st.BoardSize, st.BoardSize, st.Score, st.MoveCount, st.Board)

	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		m.logger.Warn("save screenshot", "err", err)
		return
	}
	m.message = "Saved " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	st := m.session.State()
	mode := m.session.Mode()
	remaining, timed := m.session.TimeRemaining()

	layout, ok := pickLayout(st.BoardSize, m.width, m.height)
	if !ok {
		w, h := boardDims(st.BoardSize, cellLayouts[len(cellLayouts)-1])
		return m.theme.Text.Render(fmt.Sprintf(
			"Terminal too small: need %dx%d, have %dx%d", w, h+chromeHeight, m.width, m.height))
	}

	parts := []string{
		renderHeader(m.theme, st, m.session.BestScore(), mode, remaining, timed, m.session.TimerPaused()),
		"",
		renderBoard(m.theme, st.Board, layout),
		"",
	}
	if banner := statusBanner(st, mode, m.session.WinReached(), remaining); banner != "" {
		parts = append(parts, m.theme.Banner.Render(banner))
	} else if m.message != "" {
		parts = append(parts, m.theme.Dim.Render(m.message))
	} else {
		parts = append(parts, "")
	}
	parts = append(parts, m.theme.Help.Render(m.help.View(m.keys)))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
