// Package modes defines the game mode rulesets (win threshold, time limit and
// whether the game can end) and a registry the session looks them up in.
package modes

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ID identifies a mode.
type ID string

const (
	Classic    ID = "classic"
	TimeAttack ID = "timeAttack"
	Zen        ID = "zen"
	Challenge  ID = "challenge"
)

// WinBehavior controls what reaching the win threshold does to a game.
type WinBehavior string

const (
	// WinEnd marks the game won and stops accepting moves.
	WinEnd WinBehavior = "end"
	// WinContinue marks the game won but keeps accepting moves.
	WinContinue WinBehavior = "continue"
	// WinReport leaves the status untouched; the win is only reported.
	WinReport WinBehavior = "report"
)

// Valid reports whether b is a known behavior.
func (b WinBehavior) Valid() bool {
	switch b {
	case WinEnd, WinContinue, WinReport:
		return true
	}
	return false
}

// Config is the ruleset of a single mode.
type Config struct {
	ID            ID
	Name          string
	Description   string
	WinThreshold  int           // 0 = no win condition
	TimeLimit     time.Duration // 0 = untimed
	AllowGameOver bool
	WinBehavior   WinBehavior
}

// HasWinCondition reports whether the mode can be won.
func (c Config) HasWinCondition() bool {
	return c.WinThreshold > 0
}

// Timed reports whether the mode has a time limit.
func (c Config) Timed() bool {
	return c.TimeLimit > 0
}

// Builtin returns the four standard modes.
func Builtin() []Config {
	return []Config{
		{
			ID:            Classic,
			Name:          "Classic",
			Description:   "Traditional 2048 gameplay",
			WinThreshold:  2048,
			AllowGameOver: true,
			WinBehavior:   WinEnd,
		},
		{
			ID:            TimeAttack,
			Name:          "Time Attack",
			Description:   "2 minutes to get highest score",
			TimeLimit:     2 * time.Minute,
			AllowGameOver: true,
			WinBehavior:   WinEnd,
		},
		{
			ID:            Zen,
			Name:          "Zen Mode",
			Description:   "Relaxed play, no game over",
			WinThreshold:  2048,
			AllowGameOver: false,
			WinBehavior:   WinContinue,
		},
		{
			ID:            Challenge,
			Name:          "Challenge",
			Description:   "Reach 4096 to win",
			WinThreshold:  4096,
			AllowGameOver: true,
			WinBehavior:   WinEnd,
		},
	}
}

// Registry holds mode configurations by ID.
type Registry struct {
	mu    sync.RWMutex
	modes map[ID]Config
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modes: make(map[ID]Config)}
}

// Default returns a registry pre-populated with the builtin modes.
func Default() *Registry {
	r := NewRegistry()
	for _, c := range Builtin() {
		r.Register(c)
	}
	return r
}

// Register adds a mode to the registry.
// Panics if a mode with the same ID is already registered.
func (r *Registry) Register(c Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modes[c.ID]; exists {
		panic(fmt.Sprintf("modes: mode %q already registered", c.ID))
	}
	r.modes[c.ID] = normalize(c)
}

// Set adds or replaces a mode.
func (r *Registry) Set(c Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes[c.ID] = normalize(c)
}

// Lookup returns the mode with the given ID.
func (r *Registry) Lookup(id ID) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.modes[id]
	return c, ok
}

// Resolve finds a mode by ID, ignoring case.
func (r *Registry) Resolve(name string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.modes[ID(name)]; ok {
		return c, nil
	}
	for id, c := range r.modes {
		if strings.EqualFold(string(id), name) {
			return c, nil
		}
	}
	return Config{}, fmt.Errorf("modes: unknown mode %q", name)
}

// List returns all modes sorted by ID.
func (r *Registry) List() []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Config, 0, len(r.modes))
	for _, c := range r.modes {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// IDs returns all mode IDs sorted.
func (r *Registry) IDs() []ID {
	list := r.List()
	ids := make([]ID, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	return ids
}

// Next returns the mode after id in sorted order, wrapping around.
func (r *Registry) Next(id ID) ID {
	ids := r.IDs()
	if len(ids) == 0 {
		return id
	}
	for i, m := range ids {
		if m == id {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

func normalize(c Config) Config {
	if c.Name == "" {
		c.Name = string(c.ID)
	}
	if !c.WinBehavior.Valid() {
		c.WinBehavior = WinEnd
	}
	return c
}
