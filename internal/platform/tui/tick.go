// Package tui provides the Bubble Tea front end for 2048: the game screen,
// the scoreboard and an SSH server that gives every connection its own game.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickInterval is how often the clock and autosave are refreshed.
const DefaultTickInterval = time.Second

// TickMsg is sent to refresh the game clock.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
