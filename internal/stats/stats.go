// Package stats keeps lifetime play statistics across games.
package stats

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/session"
)

// Key is the storage key of the statistics record.
const Key = "statistics"

// maxTrackedGames bounds how many game IDs the record remembers. Only the
// most recent game can be resumed, so older IDs are never seen again.
const maxTrackedGames = 64

// Statistics is the persisted lifetime summary.
type Statistics struct {
	GamesPlayed  int           `json:"gamesPlayed"`
	GamesWon     int           `json:"gamesWon"`
	TotalScore   int           `json:"totalScore"`
	BestScore    int           `json:"bestScore"`
	AverageScore float64       `json:"averageScore"`
	TotalMoves   int           `json:"totalMoves"`
	TotalTime    time.Duration `json:"totalTime"`
	WinRate      float64       `json:"winRate"`
}

// record is the stored form: the statistics plus the games already counted,
// so a resumed game is not counted again on the next launch.
type record struct {
	Statistics
	Started []string `json:"started,omitempty"`
	Ended   []string `json:"ended,omitempty"`
}

// idSet is an insertion-ordered set of game IDs capped at maxTrackedGames.
type idSet struct {
	order []string
	seen  map[string]bool
}

func newIDSet(ids []string) idSet {
	s := idSet{seen: make(map[string]bool)}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *idSet) has(id string) bool {
	return s.seen[id]
}

func (s *idSet) add(id string) {
	if s.seen[id] {
		return
	}
	s.seen[id] = true
	s.order = append(s.order, id)
	if len(s.order) > maxTrackedGames {
		delete(s.seen, s.order[0])
		s.order = slices.Delete(s.order, 0, 1)
	}
}

func (s *Statistics) derive() {
	if s.GamesPlayed == 0 {
		s.AverageScore = 0
		s.WinRate = 0
		return
	}
	s.AverageScore = float64(s.TotalScore) / float64(s.GamesPlayed)
	s.WinRate = float64(s.GamesWon) / float64(s.GamesPlayed) * 100
}

// Tracker accumulates statistics and writes them through to storage after
// every change. Storage failures are logged and otherwise ignored.
type Tracker struct {
	storage session.Storage
	logger  *log.Logger
	stats   Statistics
	started idSet
	ended   idSet
}

// NewTracker loads the statistics stored under Key. A missing or malformed
// record starts from zero.
func NewTracker(storage session.Storage, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		storage: storage,
		logger:  logger,
	}

	var rec record
	data, err := storage.Load(Key)
	switch {
	case err != nil:
		logger.Debug("load statistics", "err", err)
	case data != nil:
		if err := json.Unmarshal(data, &rec); err != nil {
			logger.Debug("malformed statistics", "err", err)
			rec = record{}
		}
	}
	t.stats = rec.Statistics
	t.started = newIDSet(rec.Started)
	t.ended = newIDSet(rec.Ended)
	return t
}

// Stats returns the current statistics.
func (t *Tracker) Stats() Statistics {
	return t.stats
}

// GameStarted counts the game with the given ID. Repeated calls for the same
// game are ignored, including across reloads of the record.
func (t *Tracker) GameStarted(id string) {
	if t.started.has(id) {
		return
	}
	t.started.add(id)
	t.stats.GamesPlayed++
	t.stats.derive()
	t.save()
}

// Observe folds a game state into the statistics. The best score is always
// updated; totals are added only when ended is true, once per game ID.
func (t *Tracker) Observe(st session.GameState, ended bool) {
	if st.Score > t.stats.BestScore {
		t.stats.BestScore = st.Score
	}

	if ended && !t.ended.has(st.ID) {
		t.ended.add(st.ID)
		if st.Status == session.StatusWon {
			t.stats.GamesWon++
		}
		t.stats.TotalScore += st.Score
		t.stats.TotalMoves += st.MoveCount
		t.stats.TotalTime += st.TimeElapsed
		t.stats.derive()
	}
	t.save()
}

// Reset clears all statistics. Games already counted stay counted, so the
// resumed game does not reappear in the fresh totals.
func (t *Tracker) Reset() {
	t.stats = Statistics{}
	t.save()
}

func (t *Tracker) save() {
	data, err := json.Marshal(record{
		Statistics: t.stats,
		Started:    t.started.order,
		Ended:      t.ended.order,
	})
	if err != nil {
		t.logger.Warn("encode statistics", "err", err)
		return
	}
	if err := t.storage.Save(Key, data); err != nil {
		t.logger.Warn("save statistics", "err", err)
	}
}
