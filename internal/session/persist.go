package session

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Storage keys.
const (
	KeyCurrentGame = "current-game"
	KeyBestScore   = "best-score"
)

// persist writes the live state and best score. Failed saves are logged and dropped.
func (s *Session) persist() {
	if s.autoSave {
		data, err := json.Marshal(s.state)
		if err != nil {
			s.logger.Warn("encode game state", "err", err)
		} else if err := s.storage.Save(KeyCurrentGame, data); err != nil {
			s.logger.Warn("save game state", "err", err)
		}
	}

	if s.best == s.savedBest {
		return
	}
	if err := s.storage.Save(KeyBestScore, []byte(strconv.Itoa(s.best))); err != nil {
		s.logger.Warn("save best score", "err", err)
		return
	}
	s.savedBest = s.best
}

// loadBestScore returns the stored best score, 0 on a miss or malformed value.
func (s *Session) loadBestScore() int {
	data, err := s.storage.Load(KeyBestScore)
	if err != nil {
		s.logger.Debug("load best score", "err", err)
		return 0
	}
	if data == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		s.logger.Debug("malformed best score", "value", string(data))
		return 0
	}
	return n
}

// loadGameState returns the stored game when it is consistent with the
// session's board size and mode registry.
func (s *Session) loadGameState() (GameState, bool) {
	if !s.autoSave {
		return GameState{}, false
	}
	data, err := s.storage.Load(KeyCurrentGame)
	if err != nil {
		s.logger.Debug("load game state", "err", err)
		return GameState{}, false
	}
	if data == nil {
		return GameState{}, false
	}

	var st GameState
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Debug("malformed game state", "err", err)
		return GameState{}, false
	}
	if !st.valid(s.size) {
		s.logger.Debug("discarding saved game", "size", st.BoardSize, "want", s.size)
		return GameState{}, false
	}
	if _, ok := s.modes.Lookup(st.Mode); !ok {
		s.logger.Debug("discarding saved game", "mode", st.Mode)
		return GameState{}, false
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	return st, true
}
