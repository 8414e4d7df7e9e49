package sim

import "github.com/vovakirdan/tui-escape/internal/data"

// Entity table sizes.
const (
	NbNations    = data.NbNations
	NbGuards     = data.NbGuards
	NbGuybrushes = NbNations + NbGuards
)

// Directions. DirectionStopped means no motion requested.
const (
	DirectionStopped int16 = -1
	DirWest          int16 = 0
	DirEast          int16 = 1
	DirNorth         int16 = 2
	DirNorthWest     int16 = 3
	DirNorthEast     int16 = 4
	DirSouth         int16 = 5
	DirSouthWest     int16 = 6
	DirSouthEast     int16 = 7
	NbDirections           = 8
)

// Direction lookup tables, indexed by direction.
var (
	dirToDx  = [NbDirections]int{-1, 1, 0, -1, 1, 0, -1, 1}
	dirToD2y = [NbDirections]int{0, 0, -2, -1, -1, 2, 1, 1}
	// invertDir[d] is the opposite of d.
	invertDir = [NbDirections]int16{1, 0, 5, 7, 6, 2, 4, 3}
	// directions[dy+1][dx+1] maps unit deltas back to a direction.
	directions = [3][3]int16{
		{DirNorthWest, DirNorth, DirNorthEast},
		{DirWest, DirectionStopped, DirEast},
		{DirSouthWest, DirSouth, DirSouthEast},
	}
)

// Speeds multiply the per-tick deltas.
const (
	SpeedWalk int16 = 1
	SpeedRun  int16 = 2
)

// Footprints: the occupied pixels of a character's base, left aligned.
const (
	SpriteFootprint uint32 = 0xFFF00000
	TunnelFootprint uint32 = 0xFF000000
	// Mask rows scanned for prisoners and guards.
	FootprintHeight      = 4
	GuardFootprintHeight = 2
)

// Character bounding box used for overlap tests, in pixels.
const (
	GuyWidth  = 16
	GuyHeight = 8
)

// Guard timings, in repositioning ticks unless stated otherwise.
const (
	PursuitWalkTimeout      = 150
	RunningPursuitTimeout   = 200
	AimingTimeout           = 80
	BlockedGuardTimeout     = 40
	StoneDistractionTimeout = 120
	// Ticks a guard must spend in a room before it can start a pursuit.
	MinSpentInRoom = 20
	// Delay range before a guard resumes its route, in ms.
	ResetGuardMinTimeout = 3000
	ResetGuardMaxTimeout = 8000
)

// Sight range for guards on the outside map, in pixels.
const (
	SightRangeX = 0xA0
	SightRangeY = 0x60
)

// Onscreen window around the active prisoner on the outside map, in pixels.
const (
	ViewWidth  = 320
	ViewHeight = 192
)

// Prisoner timings, in ms.
const (
	PassGracePeriod  = 10000
	SolitaryDuration = 60000
	StoneFlightDelay = 1500
)

// Fatigue counter.
const (
	MaxFatigue       = 0x400
	FatigueRunCost   = 4
	FatigueSleepGain = 8
)

// Escape rectangle on the outside map. A prisoner beyond it has left the castle.
const (
	EscapeMinX = 0x20
	EscapeMaxX = 0xA40
	EscapeMinY = 0x20
	EscapeMaxY = 0x460
)

// Courtyard rectangle on the outside map.
const (
	CourtyardMinX = 0x360
	CourtyardMaxX = 0x6A0
	CourtyardMinY = 0x180
	CourtyardMaxY = 0x2E0
)

// Room description ids that are not read from the room table.
const (
	RoomDescCourtyard = 0x00
	RoomDescTunnel    = 0x1F
)

// Default tick cadences, in ms.
const (
	AnimationInterval  = 120
	RepositionInterval = 15
	// Game time per in-game minute.
	TimeMarker = 10000
	StartHours = 9
)

// Fixed re-entry offsets for tunnel traversal, in pixels from the tile origin.
const (
	TunnelInDX  = 8
	TunnelInDY  = 4
	TunnelOutDX = 8
	TunnelOutDY = 12
	// Used when a tile has no rabbit offset.
	DefaultRabbitDX = 8
	DefaultRabbitDY = 8
)

// Pools.
const (
	NbEvents             = 32
	MaxCurrentlyAnimated = 0x20
)

// Items. Each prisoner holds a count per item.
const (
	ItemNone = iota
	ItemLockpick
	ItemKeyOne
	ItemKeyTwo
	ItemCandle
	ItemPass
	ItemShovel
	ItemPapers
	ItemStone
	ItemGuardsUniform
	NbProps
)

var itemNames = [NbProps]string{
	"none", "lockpick", "key one", "key two", "candle",
	"pass", "shovel", "papers", "stone", "guard's uniform",
}

// ItemName returns a display name for an item.
func ItemName(item int) string {
	if item < 0 || item >= NbProps {
		return "?"
	}
	return itemNames[item]
}

var nationNames = [NbNations]string{"British", "French", "American", "Polish"}

// NationName returns the display name of a nation.
func NationName(n int) string {
	if n < 0 || n >= NbNations {
		return "?"
	}
	return nationNames[n]
}

// Key item required to open an exit, by exit grade.
var gradeKeys = [4]int{ItemNone, ItemLockpick, ItemKeyTwo, ItemKeyOne}

// Animation table indexes used by the simulation.
const (
	AniWalk      = 0x00 // +direction
	AniRun       = 0x08 // +direction
	AniStand     = 0x10 // +direction
	AniKneel     = 0x18
	AniSleep     = 0x19
	AniShot      = 0x1A
	AniAim       = 0x1B
	AniDoorOpen  = 0x20
	AniDoorClose = 0x21
)

// Message ids in the loader message table.
const (
	MsgDoorLocked = iota
	MsgNeedKey
	MsgTunnelOpened
	MsgNeedCandle
	MsgNeedShovel
	MsgRollcall
	MsgPicked
	MsgDropped
	MsgStoneThrown
	MsgUniformOn
	MsgUniformOff
	MsgPassShown
	MsgReleased
	MsgTooTired
)

// Status message priorities.
const (
	PriorityLow    = 0
	PriorityNormal = 1
	PriorityHigh   = 2
)

// Status message display time, in ms.
const MessageTimeout = 3000
