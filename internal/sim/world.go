// Package sim is the simulation core: guards and their routes, footprint
// collision, exits and room transitions, tunnels, prisoner events, the
// timed event scheduler and removable walls.
//
// All state lives in a World value that owns the mutable copies of the data
// files. A World is not safe for concurrent use; the host drives it from a
// single goroutine through Step, HandleInput and RunCallback.
package sim

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/data"
)

var (
	// ErrDataIntegrity is returned when the data files contradict themselves
	// in a way the simulation cannot recover from.
	ErrDataIntegrity = errors.New("sim: data integrity violation")
	// ErrBadSave is returned when a saved game cannot be decoded.
	ErrBadSave = errors.New("sim: bad save data")
)

// RecoveryMode selects how a guard returns to its route after a pursuit.
type RecoveryMode int

const (
	// RecoverReinstantiate teleports the guard back to its route start once
	// it is offscreen.
	RecoverReinstantiate RecoveryMode = iota
	// RecoverResumeRoute walks the guard back to where it left its route.
	RecoverResumeRoute
)

func (m RecoveryMode) String() string {
	if m == RecoverResumeRoute {
		return "resume"
	}
	return "reinstantiate"
}

// Options configure a World.
type Options struct {
	Logger   *log.Logger
	Host     Host
	Recovery RecoveryMode
	// Guards remember prisoners that showed them a pass.
	FooledByPass bool

	AnimationInterval  time.Duration
	RepositionInterval time.Duration
	TimeMarker         time.Duration

	Seed   int64
	Nation int
}

// DefaultOptions returns the classic game settings.
func DefaultOptions() Options {
	return Options{
		Recovery:           RecoverReinstantiate,
		AnimationInterval:  AnimationInterval * time.Millisecond,
		RepositionInterval: RepositionInterval * time.Millisecond,
		TimeMarker:         TimeMarker * time.Millisecond,
	}
}

// PrisonerEvent holds the per-nation event flags.
type PrisonerEvent struct {
	ToSolitary      bool
	RequirePass     bool
	DisplayShot     bool
	Killed          bool
	Escaped         bool
	ThrownStone     bool
	Unauthorized    bool
	Fatigue         int16
	CheckedBy       int16  // guard that last caught the prisoner, -1 if none
	TunnelLanding   int16  // tile of the tunnel end arrived on, -1 once left
	SolitaryRelease uint64 // game time in ms
	PassGraceExpiry uint64 // game time in ms
}

// exitFlags locates the status byte of the exit found by the last
// footprint check.
type exitFlags struct {
	valid bool
	file  data.FileID
	off   uint32
}

// World is the whole simulation state.
type World struct {
	files *data.Files
	opts  Options
	log   *log.Logger
	host  Host

	guys    [NbGuybrushes]Guybrush
	pevents [NbNations]PrisonerEvent
	props   [NbNations][NbProps]uint8
	// Selected prop per nation.
	selected [NbNations]uint8
	// Removable wall bitmask per nation.
	remBitmask [NbNations]uint32

	current int // active prisoner
	view    roomView

	// Footprint check results, consumed by ToggleExit and CheckTunnelIO.
	exit           exitFlags
	fpTileX        int
	fpTileY        int
	keyEligible    bool
	roomProps      []int
	roomPropsValid bool

	events  [NbEvents]Event
	anims   [MaxCurrentlyAnimated]Overlay
	rng     RNG
	now     uint64 // game time in ms
	aniAcc  uint64
	repoAcc uint64

	hours          uint16
	minutes        uint16
	nextMinute     uint64
	timedCursor    uint16
	authorizedSet  uint8
	palette        uint8
	remainingToWin uint8
	gameOver       bool
	gameWon        bool
	finished       bool
}

// New creates a world over the loaded data files and starts a new game.
func New(files *data.Files, opts Options) *World {
	def := DefaultOptions()
	if opts.AnimationInterval <= 0 {
		opts.AnimationInterval = def.AnimationInterval
	}
	if opts.RepositionInterval <= 0 {
		opts.RepositionInterval = def.RepositionInterval
	}
	if opts.TimeMarker <= 0 {
		opts.TimeMarker = def.TimeMarker
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Host == nil {
		opts.Host = NopHost{}
	}
	if opts.Nation < 0 || opts.Nation >= NbNations {
		opts.Nation = 0
	}
	w := &World{
		files:     files,
		opts:      opts,
		log:       opts.Logger,
		host:      opts.Host,
		roomProps: make([]int, 0, 16),
	}
	w.NewGame()
	return w
}

// NewGame reloads the data files and resets every table.
func (w *World) NewGame() {
	w.files.Reset()

	w.pevents = [NbNations]PrisonerEvent{}
	w.props = [NbNations][NbProps]uint8{}
	w.selected = [NbNations]uint8{}
	w.events = [NbEvents]Event{}
	w.clearOverlays()
	w.rng = NewRNG(w.opts.Seed)
	w.now = 0
	w.aniAcc = 0
	w.repoAcc = 0
	w.hours = StartHours
	w.minutes = 0
	w.nextMinute = w.minuteLength()
	w.timedCursor = 0
	w.authorizedSet = 0
	w.palette = 0
	w.remainingToWin = NbNations
	w.gameOver = false
	w.gameWon = false
	w.finished = false

	for n := range NbNations {
		w.pevents[n].CheckedBy = -1
		w.initPrisoner(n, data.InitialPositions)
	}
	for i := range NbGuards {
		w.resetGuard(i)
	}

	w.current = w.opts.Nation
	w.enterRoom(w.guys[w.current].Room)
	w.log.Debug("new game", "nation", w.current, "room", w.view.room)
}

// initPrisoner places a prisoner at a position from the loader table at base.
func (w *World) initPrisoner(n int, base uint32) {
	ld := w.files.Loader()
	off := base + uint32(n)*data.PositionSize //#nosec G115 -- n < NbNations
	p := &w.guys[n]
	*p = Guybrush{
		Room:      ld.Word(off),
		PX:        ld.SignedWord(off + 2),
		P2Y:       2 * ld.SignedWord(off+4),
		Direction: DirectionStopped,
		Speed:     SpeedWalk,
		Target:    -1,
		Animation: Animation{Index: -1},
	}
	w.pevents[n].TunnelLanding = -1
	w.remBitmask[n] = w.computeRemBitmask(p.Room, int(p.PX), p.PY())
}

func (w *World) minuteLength() uint64 {
	return uint64(w.opts.TimeMarker / time.Millisecond) //#nosec G115 -- positive duration
}

// Files returns the data files the world runs on.
func (w *World) Files() *data.Files { return w.files }

// Options returns the world options.
func (w *World) Options() Options { return w.opts }

// SetHost replaces the host.
func (w *World) SetHost(h Host) {
	if h == nil {
		h = NopHost{}
	}
	w.host = h
	w.opts.Host = h
}

// Guy returns a pointer to a guybrush by table index.
func (w *World) Guy(i int) *Guybrush { return &w.guys[i] }

// Prisoner returns a nation's guybrush.
func (w *World) Prisoner(n int) *Guybrush { return &w.guys[n] }

// Guard returns a guard's guybrush by guard number.
func (w *World) Guard(i int) *Guybrush { return &w.guys[NbNations+i] }

// PrisonerEvent returns a nation's event flags.
func (w *World) PrisonerEvent(n int) *PrisonerEvent { return &w.pevents[n] }

// Current returns the active nation.
func (w *World) Current() int { return w.current }

// Room returns the room of the active prisoner.
func (w *World) Room() uint16 { return w.view.room }

// Now returns the game time in ms.
func (w *World) Now() uint64 { return w.now }

// Clock returns the in-game time of day.
func (w *World) Clock() (hours, minutes int) { return int(w.hours), int(w.minutes) }

// Palette returns the palette selected by the last scripted event.
func (w *World) Palette() int { return int(w.palette) }

// AuthorizedSet returns the active authorized room list set.
func (w *World) AuthorizedSet() int { return int(w.authorizedSet) }

// RemainingToWin returns the number of prisoners that still have to escape.
func (w *World) RemainingToWin() int { return int(w.remainingToWin) }

// RemBitmask returns a nation's removable wall bitmask.
func (w *World) RemBitmask(n int) uint32 { return w.remBitmask[n] }

// GameOver reports whether every prisoner is out of play.
func (w *World) GameOver() bool { return w.gameOver }

// GameWon reports whether every prisoner escaped.
func (w *World) GameWon() bool { return w.gameWon }

// Finished reports whether the end-of-game picture has been dismissed.
func (w *World) Finished() bool { return w.finished }

// Props returns the count of an item held by a nation.
func (w *World) Props(n, item int) int { return int(w.props[n][item]) }

// SetProps sets the count of an item held by a nation.
func (w *World) SetProps(n, item, count int) {
	w.props[n][item] = uint8(min(max(count, 0), 0xFF)) //#nosec G115 -- clamped
}

// SelectedProp returns the item selected by a nation.
func (w *World) SelectedProp(n int) int { return int(w.selected[n]) }

// guard returns a guard's guybrush by guard number.
func (w *World) guard(i int) *Guybrush { return &w.guys[NbNations+i] }

// onscreen reports whether a position would be visible to the player.
func (w *World) onscreen(room uint16, px, py int) bool {
	p := &w.guys[w.current]
	if room != p.Room {
		return false
	}
	if room != data.RoomOutside {
		return true
	}
	return core.Abs(px-int(p.PX)) < ViewWidth/2+GuyWidth &&
		core.Abs(py-p.PY()) < ViewHeight/2+GuyHeight
}

// message returns a text from the loader message table.
func (w *World) message(id int) string {
	ld := w.files.Loader()
	off := ld.Word(data.MessagesStart + uint32(id)*2) //#nosec G115 -- message ids are small
	if off == 0 {
		return ""
	}
	return ld.CString(uint32(off))
}

// status shows a message from the loader table on the status line.
func (w *World) status(id, priority int) {
	if text := w.message(id); text != "" {
		w.host.SetStatusMessage(text, priority, MessageTimeout)
	}
}

// playSFX validates a sound effect entry before handing it to the host.
func (w *World) playSFX(id SFX) {
	ld := w.files.Loader()
	off := data.SfxTableStart + uint32(id)*data.SfxEntrySize //#nosec G115 -- sfx ids are small
	if id < 0 || id >= data.NbSfx || ld.Word(off+4) == 0 {
		w.log.Error("invalid sfx entry", "sfx", id, "err", ErrDataIntegrity)
		return
	}
	w.host.PlaySFX(id)
}
