// Package session owns one live 2048 game: it runs the turn transaction
// (move, spawn, score, terminal check, persist), keeps the undo/redo history
// and accounts for elapsed play time.
package session

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/history"
	"github.com/vovakirdan/tui-2048/internal/modes"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

// Storage persists serialized values by key. Load returns nil data for a
// missing key. Failures on either side are absorbed by the session.
type Storage interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
}

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// ModeSource looks up mode rulesets.
type ModeSource interface {
	Lookup(id modes.ID) (modes.Config, bool)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type nopStorage struct{}

func (nopStorage) Save(string, []byte) error   { return nil }
func (nopStorage) Load(string) ([]byte, error) { return nil, nil }

// Options configures a Session. Zero values select defaults.
type Options struct {
	BoardSize         int
	Mode              modes.ID
	Modes             ModeSource
	HistorySize       int
	InactivityTimeout time.Duration
	FourProbability   float64

	// DisableAutoSave stops the game state from being persisted; the best
	// score is still saved.
	DisableAutoSave bool

	Storage Storage
	Random  t2048.Random
	Clock   Clock
	Logger  *log.Logger
}

// Session is a single-player game controller. It is not safe for concurrent use.
type Session struct {
	modes    ModeSource
	storage  Storage
	clock    Clock
	spawner  t2048.Spawner
	logger   *log.Logger
	autoSave bool

	size      int
	state     GameState
	best      int
	savedBest int
	history   *history.Manager[GameState]
	timer     timer
}

// New creates a session, resuming the stored game when it matches the
// requested board size and starting a fresh one otherwise.
func New(opts Options) (*Session, error) {
	if opts.BoardSize == 0 {
		opts.BoardSize = t2048.DefaultBoardSize
	}
	if !t2048.ValidBoardSize(opts.BoardSize) {
		return nil, fmt.Errorf("session: board size %d out of range %d-%d",
			opts.BoardSize, t2048.MinBoardSize, t2048.MaxBoardSize)
	}
	if opts.Modes == nil {
		opts.Modes = modes.Default()
	}
	if opts.Mode == "" {
		opts.Mode = modes.Classic
	}
	if _, ok := opts.Modes.Lookup(opts.Mode); !ok {
		return nil, fmt.Errorf("session: unknown mode %q", opts.Mode)
	}
	if opts.InactivityTimeout == 0 {
		opts.InactivityTimeout = DefaultInactivityTimeout
	}
	if opts.FourProbability <= 0 {
		opts.FourProbability = t2048.DefaultFourProbability
	}
	if opts.Storage == nil {
		opts.Storage = nopStorage{}
	}
	if opts.Random == nil {
		opts.Random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{
		modes:    opts.Modes,
		storage:  opts.Storage,
		clock:    opts.Clock,
		spawner:  t2048.Spawner{Rand: opts.Random, FourProbability: opts.FourProbability},
		logger:   opts.Logger,
		autoSave: !opts.DisableAutoSave,
		size:     opts.BoardSize,
		history:  history.New(opts.HistorySize, GameState.Clone),
		timer:    timer{timeout: opts.InactivityTimeout},
	}

	s.best = s.loadBestScore()
	s.savedBest = s.best
	now := s.clock.Now()

	if resumed, ok := s.loadGameState(); ok {
		s.logger.Debug("resuming saved game", "id", resumed.ID, "score", resumed.Score, "moves", resumed.MoveCount)
		s.timer.resumeFrom(now, resumed.TimeElapsed)
		s.commit(resumed)
		s.persist()
		return s, nil
	}

	s.timer.reset(now)
	s.commit(s.newGame(opts.Mode))
	s.persist()
	return s, nil
}

// newGame builds the start-of-game state.
func (s *Session) newGame(mode modes.ID) GameState {
	return GameState{
		ID:        uuid.NewString(),
		Board:     s.spawner.InitializeBoard(s.size),
		BestScore: s.best,
		Status:    StatusPlaying,
		BoardSize: s.size,
		Mode:      mode,
	}
}

// commit replaces the live state. Every state change goes through here so
// the best score can only grow.
func (s *Session) commit(next GameState) {
	if next.Score > s.best {
		s.best = next.Score
	}
	if next.BestScore > s.best {
		s.best = next.BestScore
	}
	next.BestScore = s.best
	s.state = next
}

// mode returns the ruleset of the current game.
func (s *Session) mode() modes.Config {
	if c, ok := s.modes.Lookup(s.state.Mode); ok {
		return c
	}
	return modes.Config{ID: s.state.Mode, AllowGameOver: true, WinBehavior: modes.WinEnd}
}

// acceptingMoves reports whether MakeMove can change the game.
func (s *Session) acceptingMoves() bool {
	switch s.state.Status {
	case StatusPlaying:
		return true
	case StatusWon:
		return s.mode().WinBehavior == modes.WinContinue
	}
	return false
}

// MakeMove plays one turn. It returns false, leaving everything untouched,
// when the game is not accepting moves or the board would not change.
func (s *Session) MakeMove(dir t2048.Direction) bool {
	if !s.acceptingMoves() {
		return false
	}

	now := s.clock.Now()
	if s.expire(now) {
		return false
	}

	result := t2048.Move(s.state.Board, dir)
	if !result.Moved {
		return false
	}

	s.timer.activity(now)
	s.history.Save(s.state)

	next := s.state.Clone()
	next.Board = s.spawner.AddRandomTile(result.Board)
	next.Score += result.ScoreGained
	next.MoveCount++
	next.TimeElapsed = s.timer.elapsed(now)
	s.commit(next)

	s.evaluate()
	s.persist()

	s.logger.Debug("move", "dir", dir, "gained", result.ScoreGained, "score", s.state.Score, "status", s.state.Status)
	return true
}

// evaluate applies win, game-over and time-limit transitions to the live state.
func (s *Session) evaluate() {
	mode := s.mode()

	if s.state.Status == StatusPlaying && t2048.CheckWin(s.state.Board, mode.WinThreshold) {
		switch mode.WinBehavior {
		case modes.WinEnd, modes.WinContinue:
			s.state.Status = StatusWon
			s.logger.Info("game won", "id", s.state.ID, "score", s.state.Score, "mode", mode.ID)
		case modes.WinReport:
		}
	}

	if !s.acceptingMoves() || !mode.AllowGameOver {
		return
	}
	if t2048.CheckGameOver(s.state.Board) || s.timeUp(mode) {
		s.state.Status = StatusOver
		s.logger.Info("game over", "id", s.state.ID, "score", s.state.Score, "mode", mode.ID)
	}
}

func (s *Session) timeUp(mode modes.Config) bool {
	return mode.Timed() && s.state.TimeElapsed >= mode.TimeLimit
}

// expire refreshes elapsed time and ends a timed game whose limit has passed.
func (s *Session) expire(now time.Time) bool {
	mode := s.mode()
	if !mode.Timed() || !mode.AllowGameOver {
		return false
	}
	next := s.state
	next.TimeElapsed = s.timer.elapsed(now)
	if next.TimeElapsed < mode.TimeLimit {
		return false
	}
	next.Status = StatusOver
	s.commit(next)
	s.persist()
	s.logger.Info("time limit reached", "id", s.state.ID, "score", s.state.Score)
	return true
}

// Tick refreshes elapsed time, applies the time limit and persists the game.
// Callers invoke it periodically; the cadence is up to them.
func (s *Session) Tick() {
	if !s.acceptingMoves() {
		return
	}
	now := s.clock.Now()
	if s.expire(now) {
		return
	}
	next := s.state
	next.TimeElapsed = s.timer.elapsed(now)
	s.commit(next)
	s.persist()
}

// Undo restores the previous snapshot from history. Permitted in any status.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(prev)
	return true
}

// Redo re-applies the next snapshot from history. Permitted in any status.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(next)
	return true
}

// restore replaces the live state with a snapshot, resuming a frozen timer.
func (s *Session) restore(snap GameState) {
	now := s.clock.Now()
	s.timer.activity(now)
	snap.TimeElapsed = s.timer.elapsed(now)
	s.commit(snap)
	s.persist()
}

// RestartGame replaces the game with a fresh one, optionally switching mode.
func (s *Session) RestartGame(mode ...modes.ID) error {
	m := s.state.Mode
	if len(mode) > 0 && mode[0] != "" {
		m = mode[0]
	}
	if _, ok := s.modes.Lookup(m); !ok {
		return fmt.Errorf("session: unknown mode %q", m)
	}

	s.history.Clear()
	s.timer.reset(s.clock.Now())
	s.commit(s.newGame(m))
	s.persist()
	s.logger.Debug("game restarted", "id", s.state.ID, "mode", m, "size", s.size)
	return nil
}

// SetGameMode changes the mode of the live game without touching the board.
func (s *Session) SetGameMode(mode modes.ID) error {
	if _, ok := s.modes.Lookup(mode); !ok {
		return fmt.Errorf("session: unknown mode %q", mode)
	}
	next := s.state
	next.Mode = mode
	s.commit(next)
	s.persist()
	return nil
}

// SetBoardSize starts a new game on a board of the given size.
func (s *Session) SetBoardSize(size int) error {
	if !t2048.ValidBoardSize(size) {
		return fmt.Errorf("session: board size %d out of range %d-%d",
			size, t2048.MinBoardSize, t2048.MaxBoardSize)
	}
	if size == s.size {
		return nil
	}
	s.size = size
	return s.RestartGame()
}

// State returns a copy of the live game state.
func (s *Session) State() GameState {
	return s.state.Clone()
}

// Mode returns the ruleset of the live game.
func (s *Session) Mode() modes.Config {
	return s.mode()
}

// BestScore returns the best score seen by this session.
func (s *Session) BestScore() int {
	return s.best
}

// Finished reports whether the game no longer accepts moves.
func (s *Session) Finished() bool {
	return !s.acceptingMoves()
}

// CanUndo reports whether Undo would change the game.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the game.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// CanMoveInDirection reports whether a move in dir would currently be accepted.
func (s *Session) CanMoveInDirection(dir t2048.Direction) bool {
	return s.acceptingMoves() && t2048.CanMoveInDirection(s.state.Board, dir)
}

// WinReached reports whether the board holds the mode's winning tile,
// regardless of how the mode treats a win.
func (s *Session) WinReached() bool {
	return t2048.CheckWin(s.state.Board, s.mode().WinThreshold)
}

// TimeRemaining returns the time left in a timed mode and false for untimed modes.
func (s *Session) TimeRemaining() (time.Duration, bool) {
	mode := s.mode()
	if !mode.Timed() {
		return 0, false
	}
	left := mode.TimeLimit - s.state.TimeElapsed
	if left < 0 {
		left = 0
	}
	return left, true
}

// TimerPaused reports whether elapsed time is frozen by inactivity.
func (s *Session) TimerPaused() bool {
	return s.state.Status == StatusPlaying && s.timer.idle(s.clock.Now())
}
