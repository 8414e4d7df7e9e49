package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-escape/internal/data"
)

// TunnelExitBase is added to a tunnel I/O index to form its exit number.
const TunnelExitBase = 0x100

// exitFile returns the file holding the exit flags of a view.
func (w *World) exitFile(v roomView) data.FileID {
	if v.outside() {
		return data.FileCompressedMap
	}
	return data.FileRooms
}

// exitFlagsOffset returns the buffer and offset of the exit entry idx of a
// view. The status byte is at the offset, the target word two bytes later.
func (w *World) exitFlagsOffset(v roomView, idx int) (data.Buffer, uint32) {
	if v.outside() {
		return w.files.CompressedMap(), data.CmpExitsBase + uint32(idx)*data.CmpExitSize //#nosec G115 -- idx < 0x80
	}
	return w.files.Rooms(), roomExitOffset(v.room, idx)
}

func roomExitOffset(room uint16, idx int) uint32 {
	return data.RoomsExitsBase + uint32(room)*data.RoomExitsStride + uint32(idx)*data.RoomExitSize //#nosec G115 -- idx < 8
}

func tunnelEntryOffset(idx int) uint32 {
	return data.TunnelIOStart + uint32(idx)*data.TunnelIOEntrySize //#nosec G115 -- idx < 0x100
}

// ToggleExit flips the open bit of an exit and of its other end. Standard
// exits use the flags located by the last footprint check; tunnel exits are
// numbered from TunnelExitBase.
func (w *World) ToggleExit(exitNr int) {
	if exitNr >= TunnelExitBase {
		w.toggleTunnel(exitNr - TunnelExitBase)
		return
	}
	if !w.exit.valid {
		w.log.Warn("toggle without exit under footprint", "exit", exitNr)
		return
	}
	buf := w.files.Get(w.exit.file)
	off := w.exit.off
	flip(buf, off)

	// Other end of the door.
	if w.exit.file == data.FileCompressedMap {
		room := buf.Word(off + 2)
		idx := int(buf.Byte(off + 1))
		flip(w.files.Rooms(), roomExitOffset(room, idx))
		return
	}
	target := buf.Word(off + 2)
	if target&data.ExitTargetOutside != 0 {
		m := uint32(target &^ data.ExitTargetOutside)
		flip(w.files.CompressedMap(), data.CmpExitsBase+m*data.CmpExitSize)
		return
	}
	idx := int((off - data.RoomsExitsBase) % data.RoomExitsStride / data.RoomExitSize)
	flip(w.files.Rooms(), roomExitOffset(target, idx))
}

func (w *World) toggleTunnel(idx int) {
	tio := w.files.TunnelIO()
	off := tunnelEntryOffset(idx)
	flip(tio, off+data.TunnelIOStatus)
	mirror := int(tio.Word(off + data.TunnelIOMirror))
	flip(tio, tunnelEntryOffset(mirror)+data.TunnelIOStatus)
}

func flip(buf data.Buffer, off uint32) {
	_ = buf.SetByte(off, buf.Byte(off)^data.ExitOpen)
}

// ExitOpen reports whether the exit located by the last footprint check is
// open. It returns false if no exit was found.
func (w *World) ExitOpen() bool {
	if !w.exit.valid {
		return false
	}
	return w.files.Get(w.exit.file).Byte(w.exit.off)&data.ExitOpen != 0
}

// SwitchRoom moves the active prisoner through an exit. exitNr is the exit
// index returned by CheckFootprint minus one, or a tunnel exit number when
// tunnelIO is set. A destination that does not hold the reverse exit is a
// data integrity error.
func (w *World) SwitchRoom(exitNr int, tunnelIO bool) error {
	p := &w.guys[w.current]
	var (
		room    uint16
		tx, ty  int
		dx, dy  int
		landing = -1
	)

	switch {
	case tunnelIO:
		idx := exitNr - TunnelExitBase
		tio := w.files.TunnelIO()
		if idx < 0 || idx >= int(tio.Word(data.TunnelIOCount)) {
			return fmt.Errorf("%w: tunnel exit %#x out of range", ErrDataIntegrity, exitNr)
		}
		mirror := int(tio.Word(tunnelEntryOffset(idx) + data.TunnelIOMirror))
		moff := tunnelEntryOffset(mirror)
		room = tio.Word(moff + data.TunnelIORoom)
		v := w.viewFor(room)
		pos := int(tio.Word(moff + data.TunnelIOTile))
		if !v.defined || v.width == 0 || pos >= v.width*v.height {
			return fmt.Errorf("%w: tunnel %d leads to tile %d of room %#x", ErrDataIntegrity, idx, pos, room)
		}
		tx, ty = pos%v.width, pos/v.width
		landing = pos
		if v.tunnel() {
			dx, dy = TunnelInDX, TunnelInDY
			p.State |= StateTunneling
		} else {
			dx, dy = TunnelOutDX, TunnelOutDY
			p.State &^= StateTunneling
		}

	case w.view.outside():
		cmp := w.files.CompressedMap()
		off := data.CmpExitsBase + uint32(exitNr)*data.CmpExitSize //#nosec G115 -- exitNr < 0x80
		room = cmp.Word(off + 2)
		back := int(cmp.Byte(off + 1))
		v := w.viewFor(room)
		var ok bool
		tx, ty, ok = w.findExitTile(v, back)
		if !ok {
			return fmt.Errorf("%w: room %#x has no exit %d back outside", ErrDataIntegrity, room, back)
		}
		dx, dy = w.rabbit(data.RabbitInStart, v, tx, ty)

	default:
		target := w.files.Rooms().Word(roomExitOffset(w.view.room, exitNr) + 2)
		back := exitNr
		if target&data.ExitTargetOutside != 0 {
			room = data.RoomOutside
			back = int(target &^ data.ExitTargetOutside)
		} else {
			room = target
		}
		v := w.viewFor(room)
		var ok bool
		tx, ty, ok = w.findExitTile(v, back)
		if !ok {
			return fmt.Errorf("%w: room %#x has no exit %d back to room %#x",
				ErrDataIntegrity, room, back, w.view.room)
		}
		if v.outside() {
			dx, dy = w.rabbit(data.RabbitOutStart, v, tx, ty)
		} else {
			dx, dy = w.rabbit(data.RabbitInStart, v, tx, ty)
		}
	}

	from := p.Room
	p.Room = room
	p.PX = int16(tx*data.TileWidth + dx)         //#nosec G115 -- map coordinates fit in 16 bits
	p.P2Y = int16(2 * (ty*data.TileHeight + dy)) //#nosec G115 -- map coordinates fit in 16 bits
	w.pevents[w.current].TunnelLanding = int16(landing) //#nosec G115 -- tile positions fit in 16 bits
	w.enterRoom(room)
	w.log.Debug("room switch", "nation", w.current, "from", from, "to", room, "px", p.PX, "py", p.PY())
	return nil
}

// findExitTile scans the tile stream of a room for the tile with exit
// index idx.
func (w *World) findExitTile(v roomView, idx int) (int, int, bool) {
	if !v.defined {
		return 0, 0, false
	}
	for ty := range v.height {
		for tx := range v.width {
			tile, _ := w.tileAt(v, tx, ty)
			if tileExit(tile) == idx+1 {
				return tx, ty, true
			}
		}
	}
	return 0, 0, false
}

// rabbit returns the pixel adjustment for arriving on tile (tx, ty), from
// the rabbit table at base.
func (w *World) rabbit(base uint32, v roomView, tx, ty int) (int, int) {
	tile, _ := w.tileAt(v, tx, ty)
	ti := tileIndex(tile)
	ld := w.files.Loader()
	for i := range uint32(data.NbRabbits) {
		off := base + i*data.RabbitSize
		t := ld.Word(off)
		if t == 0xFFFF {
			break
		}
		if t == ti {
			return int(ld.SignedWord(off + 2)), int(ld.SignedWord(off + 4))
		}
	}
	return DefaultRabbitDX, DefaultRabbitDY
}

// enterRoom makes room the displayed room and applies the side effects of
// arriving there.
func (w *World) enterRoom(room uint16) {
	p := &w.guys[w.current]
	w.view = w.viewFor(room)
	if !w.view.defined {
		w.log.Error("entering undefined room", "room", room, "err", ErrDataIntegrity)
	}
	p.ResetAnimation = true
	w.keyEligible = true
	w.roomPropsValid = false
	w.exit.valid = false
	w.remBitmask[w.current] = w.computeRemBitmask(room, int(p.PX), p.PY())
	w.clearOverlays()
	w.startSpecialTiles()
	// Guards get a grace period before they notice a newcomer.
	for i := range NbGuards {
		if g := w.guard(i); g.Room == room {
			g.SpentInRoom = 0
		}
	}
}
