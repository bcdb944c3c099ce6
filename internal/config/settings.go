package config

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/t2048"
)

// SettingsKey is the storage key of the persisted player settings.
const SettingsKey = "settings"

// KV is the storage the settings are persisted in.
type KV interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
}

// Settings are the preferences a player changes from inside the game.
type Settings struct {
	BoardSize int    `json:"boardSize"`
	Theme     string `json:"theme"`
	AutoSave  bool   `json:"autoSave"`
}

// Settings returns the settings implied by the configuration.
func (c Config) Settings() Settings {
	return Settings{
		BoardSize: c.Board.Size,
		Theme:     c.Theme,
		AutoSave:  c.AutoSave,
	}
}

// LoadSettings reads the stored settings. A miss, a read error or malformed
// data yields defaults; out-of-range fields are replaced field by field.
func LoadSettings(kv KV, defaults Settings) Settings {
	data, err := kv.Load(SettingsKey)
	if err != nil || data == nil {
		return defaults
	}

	s := defaults
	if err := json.Unmarshal(data, &s); err != nil {
		return defaults
	}
	if !t2048.ValidBoardSize(s.BoardSize) {
		s.BoardSize = defaults.BoardSize
	}
	s.Theme = normalizeTheme(s.Theme)
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
	return s
}

// SaveSettings persists s.
func SaveSettings(kv KV, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}
	if err := kv.Save(SettingsKey, data); err != nil {
		return fmt.Errorf("config: save settings: %w", err)
	}
	return nil
}
