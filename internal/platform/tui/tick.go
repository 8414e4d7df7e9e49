// Package tui provides the Bubble Tea viewer for the simulation: a fixed
// frame driver, the room view, a guard roster and the SSH server that
// serves it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per driver frame.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
