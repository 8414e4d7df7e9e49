package sim

// Picture identifies a full-screen narrative picture.
type Picture int

const (
	PicSolitary Picture = iota
	PicShot
	PicRequirePass
	PicRequirePapers
	PicEscaped
	PicGameOver
	PicGameWon
)

func (p Picture) String() string {
	switch p {
	case PicSolitary:
		return "solitary"
	case PicShot:
		return "shot"
	case PicRequirePass:
		return "require-pass"
	case PicRequirePapers:
		return "require-papers"
	case PicEscaped:
		return "escaped"
	case PicGameOver:
		return "game-over"
	case PicGameWon:
		return "game-won"
	default:
		return "unknown"
	}
}

// SFX identifies an entry of the loader sound effect table.
type SFX int

const (
	SfxDoor SFX = iota
	SfxShot
	SfxWhistle
	SfxRollcall
	SfxTunnel
	SfxStone
)

func (s SFX) String() string {
	switch s {
	case SfxDoor:
		return "door"
	case SfxShot:
		return "shot"
	case SfxWhistle:
		return "whistle"
	case SfxRollcall:
		return "rollcall"
	case SfxTunnel:
		return "tunnel"
	case SfxStone:
		return "stone"
	default:
		return "unknown"
	}
}

// Host is implemented by the platform around the simulation: display,
// audio and status line.
//
// StaticScreen must not call back into the world synchronously. Once the
// picture sequence completes, the host hands cb and param back to
// World.RunCallback from its own driver loop.
type Host interface {
	StaticScreen(pic Picture, cb Callback, param uint32)
	PlaySFX(id SFX)
	SetStatusMessage(text string, priority int, timeoutMs int)
}

// NopHost ignores every call.
type NopHost struct{}

func (NopHost) StaticScreen(Picture, Callback, uint32) {}

func (NopHost) PlaySFX(SFX) {}

func (NopHost) SetStatusMessage(string, int, int) {}
