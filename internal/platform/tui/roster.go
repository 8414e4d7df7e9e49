package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-escape/internal/data"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

// Roster layout constants
const (
	rosterRoomWidth  = 6
	rosterPosWidth   = 11
	rosterStateWidth = 24
)

// newRoster creates the guard roster table.
func newRoster(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Room", Width: rosterRoomWidth},
		{Title: "Position", Width: rosterPosWidth},
		{Title: "Dir", Width: 3},
		{Title: "State", Width: rosterStateWidth},
	}
	// Give the state column whatever room is left.
	if extra := width - 4 - (3 + rosterRoomWidth + rosterPosWidth + 3 + rosterStateWidth + 10); extra > 0 {
		columns[4].Width += extra
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-6, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// rosterRows lists every guard, those in the displayed room first.
func rosterRows(w World) []table.Row {
	room := w.Room()
	rows := make([]table.Row, 0, sim.NbGuards)
	var elsewhere []table.Row
	for i := range sim.NbGuards {
		g := w.Guard(i)
		row := table.Row{
			fmt.Sprintf("%d", i),
			roomLabel(g.Room),
			fmt.Sprintf("%4d,%4d", g.PX, g.PY()),
			string(directionGlyph(g.Direction)),
			g.State.String(),
		}
		if g.Room == room {
			rows = append(rows, row)
		} else {
			elsewhere = append(elsewhere, row)
		}
	}
	return append(rows, elsewhere...)
}

func roomLabel(room uint16) string {
	if room == data.RoomOutside {
		return "out"
	}
	return fmt.Sprintf("%03X", room)
}
