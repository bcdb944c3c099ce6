package session

import (
	"time"

	"github.com/vovakirdan/tui-2048/internal/modes"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

// Status is the lifecycle state of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusOver    Status = "over"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaying, StatusWon, StatusOver:
		return true
	}
	return false
}

// GameState is the complete state of one game. It doubles as the persisted
// snapshot and the unit stored in undo history.
type GameState struct {
	ID          string        `json:"id"`
	Board       t2048.Board   `json:"board"`
	Score       int           `json:"score"`
	BestScore   int           `json:"bestScore"`
	Status      Status        `json:"gameStatus"`
	BoardSize   int           `json:"boardSize"`
	MoveCount   int           `json:"moveCount"`
	TimeElapsed time.Duration `json:"timeElapsed"`
	Mode        modes.ID      `json:"mode"`
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	s.Board = s.Board.Clone()
	return s
}

// MaxTile returns the highest tile on the board.
func (s GameState) MaxTile() int {
	return t2048.HighestTile(s.Board)
}

// Ended reports whether the game reached a terminal status.
func (s GameState) Ended() bool {
	return s.Status != StatusPlaying
}

// valid reports whether a resumed state is consistent with the requested board size.
func (s GameState) valid(size int) bool {
	return s.BoardSize == size &&
		s.Board.Size() == size &&
		s.Board.Valid() &&
		s.Status.Valid() &&
		s.Score >= 0 &&
		s.MoveCount >= 0 &&
		s.TimeElapsed >= 0
}
