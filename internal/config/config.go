// Package config provides YAML-based configuration loading for the game
// and the persisted per-player settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-2048/internal/history"
	"github.com/vovakirdan/tui-2048/internal/modes"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

// Config contains all game configuration.
type Config struct {
	Board       BoardConfig           `yaml:"board"`
	History     HistoryConfig         `yaml:"history"`
	Timer       TimerConfig           `yaml:"timer"`
	DefaultMode string                `yaml:"default_mode"`
	Theme       string                `yaml:"theme"`
	AutoSave    bool                  `yaml:"auto_save"`
	Modes       map[string]ModeConfig `yaml:"modes"`
}

// BoardConfig defines the board and tile spawning.
type BoardConfig struct {
	Size            int     `yaml:"size"`
	FourProbability float64 `yaml:"four_probability"`
}

// HistoryConfig bounds the undo log.
type HistoryConfig struct {
	MaxSize int `yaml:"max_size"`
}

// TimerConfig defines time accounting.
type TimerConfig struct {
	InactivityTimeout time.Duration `yaml:"inactivity_timeout"`
	TickInterval      time.Duration `yaml:"tick_interval"`
}

// ModeConfig overrides a builtin mode or, for an unknown ID, defines a new
// one. Unset fields keep the builtin value.
type ModeConfig struct {
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	WinThreshold  *int           `yaml:"win_threshold"`
	TimeLimit     *time.Duration `yaml:"time_limit"`
	AllowGameOver *bool          `yaml:"allow_game_over"`
	WinBehavior   string         `yaml:"win_behavior"`
}

func (m ModeConfig) apply(c modes.Config) modes.Config {
	if m.Name != "" {
		c.Name = m.Name
	}
	if m.Description != "" {
		c.Description = m.Description
	}
	if m.WinThreshold != nil {
		c.WinThreshold = *m.WinThreshold
	}
	if m.TimeLimit != nil {
		c.TimeLimit = *m.TimeLimit
	}
	if m.AllowGameOver != nil {
		c.AllowGameOver = *m.AllowGameOver
	}
	if m.WinBehavior != "" {
		c.WinBehavior = modes.WinBehavior(m.WinBehavior)
	}
	return c
}

// Registry builds a mode registry from the builtin modes with the
// configured overrides applied.
func (c Config) Registry() *modes.Registry {
	r := modes.Default()
	for id, override := range c.Modes {
		base, ok := r.Lookup(modes.ID(id))
		if !ok {
			base = modes.Config{ID: modes.ID(id), AllowGameOver: true}
		}
		r.Set(override.apply(base))
	}
	return r
}

// Validate reports every out-of-range value in the configuration.
func (c Config) Validate() error {
	var errs []error

	if !t2048.ValidBoardSize(c.Board.Size) {
		errs = append(errs, fmt.Errorf("board.size %d out of range %d-%d",
			c.Board.Size, t2048.MinBoardSize, t2048.MaxBoardSize))
	}
	if c.Board.FourProbability < 0 || c.Board.FourProbability > 1 {
		errs = append(errs, fmt.Errorf("board.four_probability %v not in [0, 1]", c.Board.FourProbability))
	}
	if c.History.MaxSize < 1 {
		errs = append(errs, fmt.Errorf("history.max_size must be positive, got %d", c.History.MaxSize))
	}
	if c.Timer.InactivityTimeout < 0 {
		errs = append(errs, errors.New("timer.inactivity_timeout must not be negative"))
	}
	if c.Timer.TickInterval <= 0 {
		errs = append(errs, errors.New("timer.tick_interval must be positive"))
	}

	for id, m := range c.Modes {
		if m.WinBehavior != "" && !modes.WinBehavior(m.WinBehavior).Valid() {
			errs = append(errs, fmt.Errorf("modes.%s.win_behavior %q is not one of end, continue, report", id, m.WinBehavior))
		}
		if m.WinThreshold != nil && *m.WinThreshold < 0 {
			errs = append(errs, fmt.Errorf("modes.%s.win_threshold must not be negative", id))
		}
		if m.TimeLimit != nil && *m.TimeLimit < 0 {
			errs = append(errs, fmt.Errorf("modes.%s.time_limit must not be negative", id))
		}
	}

	if _, ok := c.Registry().Lookup(modes.ID(c.DefaultMode)); !ok {
		errs = append(errs, fmt.Errorf("default_mode %q is not a known mode", c.DefaultMode))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}

// DefaultConfig returns the hardcoded configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Size:            t2048.DefaultBoardSize,
			FourProbability: t2048.DefaultFourProbability,
		},
		History: HistoryConfig{
			MaxSize: history.DefaultMaxSize,
		},
		Timer: TimerConfig{
			InactivityTimeout: 5 * time.Minute,
			TickInterval:      time.Second,
		},
		DefaultMode: string(modes.Classic),
		Theme:       "default",
		AutoSave:    true,
	}
}

// normalizeTheme lowercases and trims a theme name.
func normalizeTheme(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
