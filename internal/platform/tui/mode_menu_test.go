package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/modes"
)

func TestModeMenuSelect(t *testing.T) {
	reg := modes.Default()
	ids := reg.IDs()

	m := NewModeMenuModel(reg, ids[0], 80, 24)
	if !strings.Contains(m.View(), "Select game mode") {
		t.Error("view missing prompt")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select should quit the picker")
	}

	id, ok := updated.(ModeMenuModel).Selected()
	if !ok || id != ids[1] {
		t.Errorf("Selected() = %q, %v; want %q, true", id, ok, ids[1])
	}
}

func TestModeMenuStartsOnCurrent(t *testing.T) {
	reg := modes.Default()
	m := NewModeMenuModel(reg, modes.Zen, 80, 24)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if id, _ := updated.(ModeMenuModel).Selected(); id != modes.Zen {
		t.Errorf("Selected() = %q, want zen", id)
	}
}

func TestModeMenuQuit(t *testing.T) {
	m := NewModeMenuModel(modes.Default(), modes.Classic, 80, 24)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := updated.(ModeMenuModel).Selected(); ok {
		t.Error("quitting should not select a mode")
	}
}
