package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/platform/host"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

// Rows taken by the header, status line and help bar.
const chromeRows = 4

// Options configure the viewer.
type Options struct {
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	// Save stores a saved game. Saving is disabled when nil.
	Save func(data []byte, snap sim.Snapshot) error
	// Finish is called once when the game ends.
	Finish func(snap sim.Snapshot)
}

// Model is the Bubble Tea model that drives a world and displays it.
type Model struct {
	world  World
	queue  *host.Queue
	config core.RuntimeConfig
	log    *log.Logger
	save   func([]byte, sim.Snapshot) error
	finish func(sim.Snapshot)

	keys   KeyMap
	help   help.Model
	roster table.Model
	screen *core.Screen
	input  core.InputFrame

	last       time.Time
	pending    time.Duration // game time not yet fed to the world
	reported   bool
	paused     bool
	showRoster bool
	quitting   bool
	err        error
}

// NewModel creates a viewer for w. The queue must be the world's host.
func NewModel(w World, q *host.Queue, opts Options) Model {
	rc := opts.Runtime
	if rc.ScreenW <= 0 || rc.ScreenH <= 0 {
		def := core.DefaultConfig()
		rc.ScreenW, rc.ScreenH = def.ScreenW, def.ScreenH
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = rc.ScreenW
	return Model{
		world:  w,
		queue:  q,
		config: rc,
		log:    logger,
		save:   opts.Save,
		finish: opts.Finish,
		keys:   DefaultKeyMap(),
		help:   h,
		roster: newRoster(rc.ScreenW, rc.ScreenH),
		screen: core.NewScreen(rc.ScreenW, max(rc.ScreenH-chromeRows, 1)),
		input:  core.NewInputFrame(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameDuration())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 1))
		m.roster = newRoster(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input. Game actions are collected into the
// input frame and applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Roster):
		m.showRoster = !m.showRoster
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saveGame()
		return m, nil
	}

	if m.showRoster && (msg.String() == "j" || msg.String() == "k") {
		var cmd tea.Cmd
		m.roster, cmd = m.roster.Update(msg)
		return m, cmd
	}
	m.keys.MapKey(msg, &m.input)
	return m, nil
}

// saveGame hands the current state to the save function and reports the
// outcome on the status line.
func (m *Model) saveGame() {
	if m.save == nil {
		m.queue.SetStatusMessage("saving is disabled", sim.PriorityHigh, sim.MessageTimeout)
		return
	}
	b, err := m.world.SaveBytes()
	if err == nil {
		err = m.save(b, m.world.Snapshot())
	}
	if err != nil {
		m.log.Error("save failed", "error", err)
		m.queue.SetStatusMessage("save failed", sim.PriorityHigh, sim.MessageTimeout)
		return
	}
	m.queue.SetStatusMessage("game saved", sim.PriorityHigh, sim.MessageTimeout)
}

// handleTick runs one driver frame: the wall time since the last frame,
// scaled to game time, is fed to the world in steps of the repositioning
// interval unless a static screen is showing or the game is paused.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	wall := m.config.FrameDuration()
	if !m.last.IsZero() {
		wall = now.Sub(m.last)
	}
	m.last = now
	d := m.config.GameTime(wall)

	if m.input.Has(core.ActionPause) {
		m.paused = !m.paused
	}
	if _, showing := m.queue.Showing(); showing && m.input.Has(core.ActionConfirm) {
		m.queue.Dismiss(m.world)
	}

	switch {
	case m.paused, m.world.Finished():
	case m.showing():
		m.queue.Advance(d, m.world)
	default:
		m.world.HandleInput(m.input)
		m.queue.Advance(d, m.world)
		if err := m.step(d); err != nil {
			m.log.Error("simulation stopped", "error", err)
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
	}
	m.input.Clear()
	if m.world.Finished() && !m.reported {
		m.reported = true
		if m.finish != nil {
			m.finish(m.world.Snapshot())
		}
	}
	if m.showRoster {
		m.roster.SetRows(rosterRows(m.world))
	}
	return m, tickCmd(m.config.FrameDuration())
}

// step feeds d to the world in whole steps and keeps the rest for the next
// frame. A frame carries at most MaxFrame of game time, which bounds the
// number of steps one frame runs.
func (m *Model) step(d time.Duration) error {
	size := m.config.StepSize()
	m.pending += d
	for m.pending >= size {
		m.pending -= size
		if err := m.world.Step(size); err != nil {
			return err
		}
		if m.world.Finished() || m.showing() {
			m.pending = 0
			break
		}
	}
	return nil
}

func (m Model) showing() bool {
	_, ok := m.queue.Showing()
	return ok
}

// Err returns the error that stopped the simulation, if any.
func (m Model) Err() error {
	return m.err
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pictureBox  = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Bold(true).
			Padding(1, 4)
)

var captions = map[sim.Picture]string{
	sim.PicSolitary:      "SOLITARY CONFINEMENT",
	sim.PicShot:          "SHOT WHILE ESCAPING",
	sim.PicRequirePass:   "A PASS IS REQUIRED HERE",
	sim.PicRequirePapers: "YOU NEED PAPERS TO LEAVE",
	sim.PicEscaped:       "ESCAPED!",
	sim.PicGameOver:      "GAME OVER",
	sim.PicGameWon:       "EVERY PRISONER HAS ESCAPED",
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.header()))
	b.WriteString("\n")

	switch s, showing := m.queue.Showing(); {
	case showing:
		caption := captions[s.Picture]
		if s.Picture != sim.PicGameOver && s.Picture != sim.PicGameWon && s.Param < sim.NbNations {
			caption += "\n" + sim.NationName(int(s.Param))
		}
		b.WriteString(lipgloss.Place(m.config.ScreenW, m.screen.Height(),
			lipgloss.Center, lipgloss.Center, pictureBox.Render(caption)))
	case m.showRoster:
		b.WriteString(m.roster.View())
	default:
		m.screen.Clear()
		drawRoom(m.screen, m.screen.Bounds(), m.world)
		b.WriteString(RenderScreen(m.screen))
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// header summarizes the clock and the active prisoner.
func (m Model) header() string {
	w := m.world
	n := w.Current()
	hours, minutes := w.Clock()
	item := w.SelectedProp(n)
	parts := []string{
		fmt.Sprintf("%02d:%02d", hours, minutes),
		sim.NationName(n),
		"room " + roomLabel(w.Room()),
		fmt.Sprintf("fatigue %3d%%", int(w.PrisonerEvent(n).Fatigue)*100/sim.MaxFatigue),
		fmt.Sprintf("%s x%d", sim.ItemName(item), w.Props(n, item)),
		fmt.Sprintf("%d to go", w.RemainingToWin()),
	}
	if m.paused {
		parts = append(parts, "PAUSED")
	}
	return strings.Join(parts, "  ")
}

func (m Model) statusLine() string {
	if m.world.Finished() {
		return "The game is over. Press q to quit."
	}
	return m.queue.Status()
}

// Run starts a Bubble Tea program on the local terminal.
func Run(w World, q *host.Queue, opts Options) error {
	p := tea.NewProgram(NewModel(w, q, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
