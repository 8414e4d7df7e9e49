package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-escape/internal/core"
)

// KeyMap defines the key bindings of the viewer. Terminals only report key
// presses, so a direction key starts the prisoner walking and stop halts it.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	RunUp      key.Binding
	RunDown    key.Binding
	RunLeft    key.Binding
	RunRight   key.Binding
	Stop       key.Binding
	Sleep      key.Binding
	Uniform    key.Binding
	Stone      key.Binding
	PickUp     key.Binding
	Drop       key.Binding
	CycleProp  key.Binding
	NextNation key.Binding
	Confirm    key.Binding
	Pause      key.Binding
	Save       key.Binding
	Roster     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.RunUp, k.Stop, k.PickUp, k.NextNation, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Stop},
		{k.RunUp, k.RunDown, k.RunLeft, k.RunRight, k.Sleep},
		{k.Uniform, k.Stone, k.PickUp, k.Drop, k.CycleProp},
		{k.NextNation, k.Confirm, k.Pause, k.Save, k.Roster},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "walk north")),
		Down:       key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "walk south")),
		Left:       key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "walk west")),
		Right:      key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "walk east")),
		RunUp:      key.NewBinding(key.WithKeys("shift+up", "W"), key.WithHelp("S-↑/W", "run north")),
		RunDown:    key.NewBinding(key.WithKeys("shift+down", "S"), key.WithHelp("S-↓/S", "run south")),
		RunLeft:    key.NewBinding(key.WithKeys("shift+left", "A"), key.WithHelp("S-←/A", "run west")),
		RunRight:   key.NewBinding(key.WithKeys("shift+right", "D"), key.WithHelp("S-→/D", "run east")),
		Stop:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "stop")),
		Sleep:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "sleep")),
		Uniform:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "uniform")),
		Stone:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "throw stone")),
		PickUp:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "pick up")),
		Drop:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "drop")),
		CycleProp:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next item")),
		NextNation: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next prisoner")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "dismiss")),
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Save:       key.NewBinding(key.WithKeys("f5", "ctrl+s"), key.WithHelp("f5", "save")),
		Roster:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "guards")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// binding pairs a key binding with the actions it triggers.
type binding struct {
	key     key.Binding
	actions []core.Action
}

func (k KeyMap) bindings() []binding {
	return []binding{
		{k.Up, []core.Action{core.ActionUp}},
		{k.Down, []core.Action{core.ActionDown}},
		{k.Left, []core.Action{core.ActionLeft}},
		{k.Right, []core.Action{core.ActionRight}},
		{k.RunUp, []core.Action{core.ActionUp, core.ActionRun}},
		{k.RunDown, []core.Action{core.ActionDown, core.ActionRun}},
		{k.RunLeft, []core.Action{core.ActionLeft, core.ActionRun}},
		{k.RunRight, []core.Action{core.ActionRight, core.ActionRun}},
		{k.Stop, []core.Action{core.ActionStop}},
		{k.Sleep, []core.Action{core.ActionSleep}},
		{k.Uniform, []core.Action{core.ActionUniform}},
		{k.Stone, []core.Action{core.ActionStone}},
		{k.PickUp, []core.Action{core.ActionPickUp}},
		{k.Drop, []core.Action{core.ActionDrop}},
		{k.CycleProp, []core.Action{core.ActionCycleProp}},
		{k.NextNation, []core.Action{core.ActionNextNation}},
		{k.Confirm, []core.Action{core.ActionConfirm}},
		{k.Pause, []core.Action{core.ActionPause}},
		{k.Quit, []core.Action{core.ActionQuit}},
	}
}

// MapKey adds the actions bound to msg to frame. It returns false for keys
// that are not bound to a game action.
func (k KeyMap) MapKey(msg tea.KeyMsg, frame *core.InputFrame) bool {
	for _, b := range k.bindings() {
		if !key.Matches(msg, b.key) {
			continue
		}
		for _, a := range b.actions {
			frame.Set(a)
		}
		return true
	}
	return false
}
