package sim

import (
	"github.com/vovakirdan/tui-escape/internal/data"
)

// Overlay is a freestanding animation, such as a door or a fireplace.
type Overlay struct {
	Room      uint16
	PX        int16
	PY        int16
	Animation Animation
}

// active reports whether the overlay slot is in use.
func (o *Overlay) active() bool { return o.Animation.Index >= 0 }

// animationInfo returns the frame count and looping flag of an animation.
func (w *World) animationInfo(index int16) (int16, bool) {
	if index < 0 || index >= data.NbAnimations {
		return 0, false
	}
	ld := w.files.Loader()
	off := uint32(ld.Word(data.AnimationOffsets + uint32(index)*2)) //#nosec G115 -- index checked
	if off == 0 {
		return 0, false
	}
	return int16(ld.Byte(off)), ld.Byte(off+1)&data.AnimationLooping != 0
}

// AnimationFrame returns the frame id the cursor points at, or -1.
func (w *World) AnimationFrame(a Animation) int {
	nb, _ := w.animationInfo(a.Index)
	if nb == 0 || a.Framecount < 0 || a.Framecount >= nb {
		return -1
	}
	ld := w.files.Loader()
	off := uint32(ld.Word(data.AnimationOffsets + uint32(a.Index)*2)) //#nosec G115 -- index checked
	return int(ld.Byte(off + 2 + uint32(a.Framecount)))               //#nosec G115 -- framecount checked
}

// advance moves a cursor one frame forward. At the end of a non-looping
// sequence the cursor stays on its last frame and its end callback, if
// any, is detached and returned so it fires exactly once.
func (w *World) advance(a *Animation) (Callback, uint32, bool) {
	nb, looping := w.animationInfo(a.Index)
	if nb == 0 {
		return CbNone, 0, false
	}
	if a.Framecount+1 < nb {
		a.Framecount++
		return CbNone, 0, false
	}
	if looping {
		a.Framecount = 0
		return CbNone, 0, false
	}
	a.Framecount = nb - 1
	cb, param := a.End, a.EndParam
	a.End = CbNone
	a.EndParam = 0
	return cb, param, true
}

// guyAnimation picks the animation matching a guybrush state.
func guyAnimation(g *Guybrush) int16 {
	dir := g.Direction
	if dir == DirectionStopped {
		dir = 0
	}
	switch {
	case g.State.Has(StateAiming):
		return AniAim
	case g.State.Has(StateKneeling):
		return AniKneel
	case g.State.Has(StateSleeping):
		return AniSleep
	case g.Moving() && g.Speed == SpeedRun:
		return AniRun + dir
	case g.Moving():
		return AniWalk + dir
	}
	return AniStand + dir
}

// AnimationTick advances every guybrush and overlay animation by one frame.
func (w *World) AnimationTick() {
	for i := range w.guys {
		g := &w.guys[i]
		if g.ResetAnimation && g.Animation.End == CbNone {
			g.Animation = Animation{Index: guyAnimation(g)}
			g.ResetAnimation = false
			continue
		}
		if !g.State.Any(StateMotion | StateAnimated) {
			continue
		}
		if cb, param, ended := w.advance(&g.Animation); ended {
			w.RunCallback(cb, param)
		}
	}
	for i := range w.anims {
		o := &w.anims[i]
		if !o.active() {
			continue
		}
		if cb, param, ended := w.advance(&o.Animation); ended {
			*o = Overlay{Animation: Animation{Index: -1}}
			w.RunCallback(cb, param)
		}
	}
}

// StartAnimation starts a freestanding animation and returns its slot, or
// -1 when the pool is full.
func (w *World) StartAnimation(room uint16, px, py int, index int16, end Callback, param uint32) int {
	if nb, _ := w.animationInfo(index); nb == 0 {
		w.log.Error("invalid animation", "index", index, "err", ErrDataIntegrity)
		return -1
	}
	for i := range w.anims {
		if w.anims[i].active() {
			continue
		}
		w.anims[i] = Overlay{
			Room: room,
			PX:   int16(px), //#nosec G115 -- map coordinates fit in 16 bits
			PY:   int16(py), //#nosec G115 -- map coordinates fit in 16 bits
			Animation: Animation{
				Index:    index,
				EndParam: param,
				End:      end,
			},
		}
		return i
	}
	w.log.Warn("animation pool full, animation dropped", "index", index, "room", room)
	return -1
}

// Overlays returns the active overlays.
func (w *World) Overlays() []Overlay {
	var out []Overlay
	for i := range w.anims {
		if w.anims[i].active() {
			out = append(out, w.anims[i])
		}
	}
	return out
}

func (w *World) clearOverlays() {
	for i := range w.anims {
		w.anims[i] = Overlay{Animation: Animation{Index: -1}}
	}
}

// startSpecialTiles starts the looping animations of special tiles, such as
// fireplaces, present in the displayed room.
func (w *World) startSpecialTiles() {
	v := w.view
	if !v.defined || v.outside() {
		return
	}
	ld := w.files.Loader()
	for ty := range v.height {
		for tx := range v.width {
			tile, _ := w.tileAt(v, tx, ty)
			ti := tileIndex(tile)
			for i := range uint32(data.NbSpecialTiles) {
				off := data.SpecialTilesStart + i*data.SpecialTileSize
				st := ld.Word(off)
				if st == 0xFFFF {
					break
				}
				if st == ti {
					w.StartAnimation(v.room, tx*data.TileWidth, ty*data.TileHeight,
						int16(ld.Word(off+2)), CbNone, 0) //#nosec G115 -- animation index
					break
				}
			}
		}
	}
}
