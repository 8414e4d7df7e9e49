package sim

import (
	"strings"

	"github.com/vovakirdan/tui-escape/internal/core"
)

// State is the bitfield state of a guybrush. Flags combine: a guard can be
// in pursuit and blocked at the same time.
type State uint32

const (
	StateMotion State = 1 << iota
	StateAnimated
	StateSleeping
	StateStooging
	StateTunneling
	StateInPrison
	StateInPursuit
	StateBlocked
	StateAiming
	StateShot
	StateResumeRouteWait
	StateResumeRoute
	StateKneeling
	// Set on a guard that must be reset to its route start once offscreen.
	StateReinstantiate
)

// StateDeviatedFromRoute is set whenever a guard is off its scripted route.
const StateDeviatedFromRoute = StateInPursuit | StateResumeRoute | StateResumeRouteWait

var stateNames = []string{
	"motion", "animated", "sleeping", "stooging", "tunneling", "in-prison",
	"pursuit", "blocked", "aiming", "shot", "resume-wait", "resume",
	"kneeling", "reinstantiate",
}

// Has reports whether every flag of mask is set.
func (s State) Has(mask State) bool { return s&mask == mask }

// Any reports whether at least one flag of mask is set.
func (s State) Any(mask State) bool { return s&mask != 0 }

// String lists the set flags.
func (s State) String() string {
	if s == 0 {
		return "idle"
	}
	var parts []string
	for i, name := range stateNames {
		if s&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Animation is an animation cursor. It is shared by guybrushes and by
// freestanding overlay animations.
type Animation struct {
	Index      int16 // loader animation table index, -1 for none
	Framecount int16
	EndParam   uint32
	End        Callback // invoked once when a non-looping sequence ends
}

// Guybrush is a movable character. Prisoners and guards share the type,
// the guard-only fields are ignored for prisoners.
//
// All fields have a fixed size so the table can be saved with encoding/binary.
type Guybrush struct {
	Room           uint16
	PX             int16
	P2Y            int16 // y in half pixels
	Direction      int16
	Speed          int16
	State          State
	ResetAnimation bool
	DressedAsGuard bool
	Animation      Animation

	// Guards only.
	Wait              int16
	Target            int16
	GoOn              int16
	SpentInRoom       int16
	ResumePX          int16
	ResumeP2Y         int16
	ResumeDirection   int16
	FooledBy          [NbNations]bool
	BlockedByPrisoner bool
}

// PY returns the y coordinate in pixels.
func (g *Guybrush) PY() int {
	return int(g.P2Y) / 2
}

// Bounds returns the character's bounding box.
func (g *Guybrush) Bounds() core.Rect {
	return core.NewRect(int(g.PX), g.PY(), GuyWidth, GuyHeight)
}

// Moving reports whether the guybrush is currently walking or running.
func (g *Guybrush) Moving() bool {
	return g.State.Has(StateMotion) && g.Direction != DirectionStopped
}

// decWait decrements the wait counter, stopping at zero.
func (g *Guybrush) decWait() {
	if g.Wait > 0 {
		g.Wait--
	}
}

// overlaps reports whether two guybrushes in the same room touch.
func overlaps(a, b *Guybrush) bool {
	return a.Room == b.Room && a.Bounds().Intersects(b.Bounds())
}

// overlapsAt is overlaps with a moved by (dx, d2y).
func overlapsAt(a *Guybrush, dx, d2y int, b *Guybrush) bool {
	if a.Room != b.Room {
		return false
	}
	r := core.NewRect(int(a.PX)+dx, (int(a.P2Y)+d2y)/2, GuyWidth, GuyHeight)
	return r.Intersects(b.Bounds())
}

// directionTo returns the direction of the unit step from (0,0) toward
// (dx, dy), or DirectionStopped when both are zero.
func directionTo(dx, dy int) int16 {
	return directions[sign(dy)+1][sign(dx)+1]
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
