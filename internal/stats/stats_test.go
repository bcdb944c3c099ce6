package stats

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/session"
)

type memStorage struct {
	data map[string][]byte
	err  error
}

func (m *memStorage) Save(key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = data
	return nil
}

func (m *memStorage) Load(key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func newMem() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func TestTrackerTotals(t *testing.T) {
	store := newMem()
	tr := NewTracker(store, nil)

	tr.GameStarted("a")
	tr.GameStarted("a")
	tr.Observe(session.GameState{ID: "a", Score: 100, MoveCount: 10, TimeElapsed: time.Minute, Status: session.StatusPlaying}, false)
	tr.Observe(session.GameState{ID: "a", Score: 300, MoveCount: 30, TimeElapsed: 2 * time.Minute, Status: session.StatusWon}, true)

	tr.GameStarted("b")
	tr.Observe(session.GameState{ID: "b", Score: 100, MoveCount: 5, TimeElapsed: time.Minute, Status: session.StatusOver}, true)

	got := tr.Stats()
	want := Statistics{
		GamesPlayed:  2,
		GamesWon:     1,
		TotalScore:   400,
		BestScore:    300,
		AverageScore: 200,
		TotalMoves:   35,
		TotalTime:    3 * time.Minute,
		WinRate:      50,
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestObserveCountsEndOnce(t *testing.T) {
	tr := NewTracker(newMem(), nil)
	tr.GameStarted("a")
	st := session.GameState{ID: "a", Score: 64, MoveCount: 3, Status: session.StatusOver}
	tr.Observe(st, true)
	tr.Observe(st, true)

	if got := tr.Stats().TotalScore; got != 64 {
		t.Errorf("TotalScore = %d, want 64", got)
	}
}

func TestBestScoreWithoutEnd(t *testing.T) {
	tr := NewTracker(newMem(), nil)
	tr.Observe(session.GameState{ID: "a", Score: 512}, false)

	got := tr.Stats()
	if got.BestScore != 512 {
		t.Errorf("BestScore = %d, want 512", got.BestScore)
	}
	if got.TotalScore != 0 || got.GamesPlayed != 0 {
		t.Errorf("totals changed before game end: %+v", got)
	}
}

func TestTrackerPersists(t *testing.T) {
	store := newMem()
	tr := NewTracker(store, nil)
	tr.GameStarted("a")
	tr.Observe(session.GameState{ID: "a", Score: 20, Status: session.StatusOver}, true)

	if _, ok := store.data[Key]; !ok {
		t.Fatalf("statistics not saved")
	}

	reloaded := NewTracker(store, nil)
	if got := reloaded.Stats(); got != tr.Stats() {
		t.Errorf("reloaded %+v, want %+v", got, tr.Stats())
	}
}

func TestTrackerFallsBackToZero(t *testing.T) {
	store := newMem()
	store.data[Key] = []byte("not json")
	if got := NewTracker(store, nil).Stats(); got != (Statistics{}) {
		t.Errorf("malformed record: Stats() = %+v", got)
	}

	failing := &memStorage{data: map[string][]byte{}, err: errors.New("boom")}
	tr := NewTracker(failing, nil)
	tr.GameStarted("a")
	if got := tr.Stats().GamesPlayed; got != 1 {
		t.Errorf("GamesPlayed = %d, want 1", got)
	}
}

func TestWinRateRounding(t *testing.T) {
	tr := NewTracker(newMem(), nil)
	for i, status := range []session.Status{session.StatusWon, session.StatusOver, session.StatusOver} {
		id := string(rune('a' + i))
		tr.GameStarted(id)
		tr.Observe(session.GameState{ID: id, Score: 10, Status: status}, true)
	}
	if got := tr.Stats().WinRate; math.Abs(got-100.0/3) > 1e-9 {
		t.Errorf("WinRate = %v, want 33.33", got)
	}
}

func TestReset(t *testing.T) {
	store := newMem()
	tr := NewTracker(store, nil)
	tr.GameStarted("a")
	tr.Observe(session.GameState{ID: "a", Score: 20, Status: session.StatusOver}, true)
	tr.Reset()

	if got := tr.Stats(); got != (Statistics{}) {
		t.Errorf("after Reset: %+v", got)
	}
	if got := NewTracker(store, nil).Stats(); got != (Statistics{}) {
		t.Errorf("reset not persisted: %+v", got)
	}
}

func TestTrackerCountsGameOnceAcrossReloads(t *testing.T) {
	store := newMem()
	over := session.GameState{ID: "a", Score: 500, MoveCount: 10, Status: session.StatusOver}

	for range 3 {
		tr := NewTracker(store, nil)
		tr.GameStarted(over.ID)
		tr.Observe(over, true)
	}

	got := NewTracker(store, nil).Stats()
	if got.GamesPlayed != 1 || got.TotalScore != 500 || got.TotalMoves != 10 {
		t.Errorf("after three loads: %+v, want one game of 500 points and 10 moves", got)
	}
}

func TestResetKeepsCountedGames(t *testing.T) {
	store := newMem()
	tr := NewTracker(store, nil)
	tr.GameStarted("a")
	tr.Reset()

	reloaded := NewTracker(store, nil)
	reloaded.GameStarted("a")
	reloaded.GameStarted("b")
	if got := reloaded.Stats().GamesPlayed; got != 1 {
		t.Errorf("GamesPlayed = %d, want 1", got)
	}
}

func TestTrackedGamesAreBounded(t *testing.T) {
	tr := NewTracker(newMem(), nil)
	for i := range maxTrackedGames + 10 {
		tr.GameStarted(fmt.Sprintf("g%d", i))
	}
	if n := len(tr.started.order); n != maxTrackedGames {
		t.Errorf("remembered %d games, want %d", n, maxTrackedGames)
	}
	if tr.started.has("g0") {
		t.Error("oldest game should be forgotten")
	}
	if got := tr.Stats().GamesPlayed; got != maxTrackedGames+10 {
		t.Errorf("GamesPlayed = %d, want %d", got, maxTrackedGames+10)
	}
}
