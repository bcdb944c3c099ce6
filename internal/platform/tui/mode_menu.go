package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/modes"
)

// menuKeys are the bindings of the mode picker.
type menuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// ModeMenuModel lets the player choose a game mode before playing.
type ModeMenuModel struct {
	modes    []modes.Config
	cursor   int
	keys     menuKeys
	width    int
	height   int
	chosen   bool
	quitting bool
}

// NewModeMenuModel creates a picker over the registered modes with the
// cursor on current.
func NewModeMenuModel(reg *modes.Registry, current modes.ID, width, height int) ModeMenuModel {
	m := ModeMenuModel{
		modes:  reg.List(),
		keys:   defaultMenuKeys(),
		width:  width,
		height: height,
	}
	for i, c := range m.modes {
		if c.ID == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m ModeMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.modes)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.modes) > 0 {
				m.chosen = true
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the mode list.
func (m ModeMenuModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("2 0 4 8", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, c := range m.modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-12s %s", cursor, c.Name, c.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen mode, or false if none was chosen.
func (m ModeMenuModel) Selected() (modes.ID, bool) {
	if !m.chosen {
		return "", false
	}
	return m.modes[m.cursor].ID, true
}

// RunModeMenu runs the mode picker and returns the chosen mode. It returns
// false when the player quit without choosing.
func RunModeMenu(reg *modes.Registry, current modes.ID, width, height int) (modes.ID, bool, error) {
	p := tea.NewProgram(
		NewModeMenuModel(reg, current, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(ModeMenuModel)
	if !ok {
		return "", false, nil
	}
	id, chosen := m.Selected()
	return id, chosen, nil
}
