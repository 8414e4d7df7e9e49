package sim

import (
	"github.com/vovakirdan/tui-escape/internal/data"
)

// tunnelAt returns the tunnel I/O index at tile (tx, ty) of a room.
func (w *World) tunnelAt(v roomView, tx, ty int) (int, bool) {
	if !v.defined || v.outside() || tx < 0 || ty < 0 || tx >= v.width || ty >= v.height {
		return 0, false
	}
	tile, _ := w.tileAt(v, tx, ty)
	if !w.isTunnelIOTile(tileIndex(tile)) {
		return 0, false
	}
	tio := w.files.TunnelIO()
	pos := uint16(ty*v.width + tx) //#nosec G115 -- bounded by room size
	n := int(tio.Word(data.TunnelIOCount))
	for i := range n {
		off := tunnelEntryOffset(i)
		if tio.Word(off+data.TunnelIORoom) == v.room && tio.Word(off+data.TunnelIOTile) == pos {
			return i, true
		}
	}
	return 0, false
}

// isTunnelIOTile reports whether a tile index is a tunnel entrance.
func (w *World) isTunnelIOTile(ti uint16) bool {
	ld := w.files.Loader()
	for i := range uint32(data.NbTunnelIOTiles) {
		t := ld.Word(data.TunnelIOTiles + i*2)
		if t == 0xFFFF {
			return false
		}
		if t == ti {
			return true
		}
	}
	return false
}

// CheckTunnelIO handles a tunnel entrance under the active prisoner. It must
// follow a CheckFootprint(0, 0) call, which locates the tile. The tunnel end
// a prisoner arrived on stays inert until they have stepped off its tile.
//
// It returns the tunnel exit number + 1 when the prisoner should go through
// (the caller passes the exit number to SwitchRoom), a negative value when
// a closed tunnel was just opened, and 0 when nothing happens.
func (w *World) CheckTunnelIO() int {
	n := w.current
	if ev := &w.pevents[n]; ev.TunnelLanding >= 0 {
		onTile := w.fpTileX >= 0 && w.fpTileX < w.view.width &&
			int(ev.TunnelLanding) == w.fpTileY*w.view.width+w.fpTileX
		if onTile {
			return 0
		}
		ev.TunnelLanding = -1
	}
	idx, ok := w.tunnelAt(w.view, w.fpTileX, w.fpTileY)
	if !ok {
		return 0
	}
	tio := w.files.TunnelIO()
	off := tunnelEntryOffset(idx)

	if tio.Byte(off+data.TunnelIOStatus)&data.ExitOpen == 0 {
		if w.props[n][ItemShovel] == 0 {
			w.status(MsgNeedShovel, PriorityLow)
			return 0
		}
		w.ToggleExit(TunnelExitBase + idx)
		w.playSFX(SfxTunnel)
		w.status(MsgTunnelOpened, PriorityNormal)
		w.log.Debug("tunnel opened", "nation", n, "tunnel", idx)
		return -1
	}

	mirror := int(tio.Word(off + data.TunnelIOMirror))
	dest := tio.Word(tunnelEntryOffset(mirror) + data.TunnelIORoom)
	entering := dest != data.RoomOutside && dest >= data.TunnelRoomsStart
	if entering && w.props[n][ItemCandle] == 0 {
		w.status(MsgNeedCandle, PriorityLow)
		return 0
	}
	return TunnelExitBase + idx + 1
}
