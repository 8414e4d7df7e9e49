package sim

import (
	"github.com/vovakirdan/tui-escape/internal/data"
)

// roomView is the addressing state of one room: where its tile words live
// and how large it is. The outside map is a room too, with its tile words
// reached through the compressed map offsets.
type roomView struct {
	room     uint16
	width    int // tiles
	height   int // tiles
	tilesOff uint32
	defined  bool
}

// outside reports whether the view is the outside map.
func (v roomView) outside() bool { return v.room == data.RoomOutside }

// tunnel reports whether the view is a tunnel section.
func (v roomView) tunnel() bool {
	return v.room != data.RoomOutside && v.room >= data.TunnelRoomsStart
}

// pixelWidth returns the room width in pixels.
func (v roomView) pixelWidth() int { return v.width * data.TileWidth }

// pixelHeight returns the room height in pixels.
func (v roomView) pixelHeight() int { return v.height * data.TileHeight }

// viewFor computes the addressing state of a room.
func (w *World) viewFor(room uint16) roomView {
	if room == data.RoomOutside {
		return roomView{
			room:    room,
			width:   data.CmpMapWidth,
			height:  data.CmpMapHeight,
			defined: true,
		}
	}
	v := roomView{room: room}
	if int(room) >= data.NbRooms {
		return v
	}
	rooms := w.files.Rooms()
	off := rooms.Long(data.RoomsOffsets + uint32(room)*4)
	if off == data.NoRoomData {
		return v
	}
	base := data.RoomsStart + off
	v.height = int(rooms.Word(base))
	v.width = int(rooms.Word(base + 2))
	v.tilesOff = base + 4
	v.defined = rooms.InRange(v.tilesOff, uint32(v.width*v.height*2)) //#nosec G115 -- small room sizes
	return v
}

// tileOffset returns the file and byte offset of the tile word at (tx, ty).
func (w *World) tileOffset(v roomView, tx, ty int) (data.Buffer, uint32, bool) {
	if !v.defined || tx < 0 || ty < 0 || tx >= v.width || ty >= v.height {
		return nil, 0, false
	}
	if v.outside() {
		cmp := w.files.CompressedMap()
		idx := uint32(ty*data.CmpMapWidth + tx) //#nosec G115 -- bounded by map size
		rel := cmp.Long(data.CmpMapOffsets + idx*4)
		return cmp, data.CmpTilesStart + rel, true
	}
	return w.files.Rooms(), v.tilesOff + uint32((ty*v.width+tx)*2), true //#nosec G115 -- bounded by room size
}

// tileAt returns the tile word at (tx, ty), and false outside of the room.
func (w *World) tileAt(v roomView, tx, ty int) (uint16, bool) {
	buf, off, ok := w.tileOffset(v, tx, ty)
	if !ok {
		return 0, false
	}
	return buf.Word(off), true
}

// tileIndex returns the graphics tile index of a tile word.
func tileIndex(tile uint16) uint16 { return tile >> data.TileIndexShift }

// tileExit returns the exit field of a tile word: exit index + 1, 0 for none.
func tileExit(tile uint16) int { return int(tile & data.TileExitMask) }

// maskTile returns the index used for mask lookups at (tx, ty), applying
// removable walls on the outside map and the tunnel addend in tunnels.
func (w *World) maskTile(v roomView, tx, ty int, rem uint32) (uint16, bool) {
	tile, ok := w.tileAt(v, tx, ty)
	if !ok {
		return 0, false
	}
	ti := tileIndex(tile)
	if v.outside() {
		if alt, swapped := w.remTile(tx, ty, rem); swapped {
			ti = alt
		}
	}
	return ti, true
}

// wallMaskRow returns one pixel row of the wall mask at (tx, ty). Set bits
// are walkable. Tiles outside of the room are solid.
func (w *World) wallMaskRow(v roomView, tx, ty, row int, rem uint32) uint32 {
	ti, ok := w.maskTile(v, tx, ty, rem)
	if !ok {
		return 0
	}
	if v.tunnel() {
		ti += data.TunnelTileAddon
	}
	if ti >= data.NbMaskTiles {
		return 0
	}
	ld := w.files.Loader()
	off := ld.Word(data.TileMasksOffsets + uint32(ti)*2)
	return ld.Long(uint32(off) + uint32(row)*4) //#nosec G115 -- row < MaskRows
}

// exitMaskRow returns one pixel row of the exit mask at (tx, ty). Set bits
// are exit area. Tiles without an exit mask return 0.
func (w *World) exitMaskRow(v roomView, tx, ty, row int, rem uint32) uint32 {
	if v.tunnel() {
		return 0
	}
	ti, ok := w.maskTile(v, tx, ty, rem)
	if !ok || ti >= data.NbExitMaskTiles {
		return 0
	}
	ld := w.files.Loader()
	off := ld.Word(data.ExitMasksOffsets + uint32(ti)*2)
	if off == 0 {
		return 0
	}
	return ld.Long(uint32(off) + uint32(row)*4) //#nosec G115 -- row < MaskRows
}

// roomDescID maps a room to its description id for authorization checks.
func (w *World) roomDescID(room uint16) uint8 {
	switch {
	case room == data.RoomOutside:
		return RoomDescCourtyard
	case room >= data.TunnelRoomsStart:
		return RoomDescTunnel
	}
	return w.files.Loader().Byte(data.RoomDescBase + uint32(room))
}

// RoomInfo describes a room for inspection tools.
type RoomInfo struct {
	Room    uint16
	Defined bool
	Width   int
	Height  int
	DescID  uint8
	Exits   []ExitInfo
}

// ExitInfo describes one exit tile of a room.
type ExitInfo struct {
	Index  int
	TileX  int
	TileY  int
	Open   bool
	Grade  int
	Target uint16
}

// InspectRoom returns the geometry and exits of a room.
func (w *World) InspectRoom(room uint16) RoomInfo {
	v := w.viewFor(room)
	info := RoomInfo{
		Room:    room,
		Defined: v.defined,
		Width:   v.width,
		Height:  v.height,
		DescID:  w.roomDescID(room),
	}
	if !v.defined {
		return info
	}
	for ty := range v.height {
		for tx := range v.width {
			tile, _ := w.tileAt(v, tx, ty)
			nr := tileExit(tile)
			if nr == 0 {
				continue
			}
			buf, off := w.exitFlagsOffset(v, nr-1)
			status := buf.Byte(off)
			info.Exits = append(info.Exits, ExitInfo{
				Index:  nr - 1,
				TileX:  tx,
				TileY:  ty,
				Open:   status&data.ExitOpen != 0,
				Grade:  int(status&data.ExitGradeMask) >> data.ExitGradeShift,
				Target: buf.Word(off + 2),
			})
		}
	}
	return info
}

// TileRow returns the tile words of one row of a room, for display.
func (w *World) TileRow(room uint16, ty int, dst []uint16) []uint16 {
	v := w.viewFor(room)
	dst = dst[:0]
	for tx := range v.width {
		tile, _ := w.tileAt(v, tx, ty)
		dst = append(dst, tile)
	}
	return dst
}

// RoomSize returns the size of a room in tiles.
func (w *World) RoomSize(room uint16) (width, height int) {
	v := w.viewFor(room)
	return v.width, v.height
}

// Walkable reports whether pixel (px, py) of a room is walkable for the
// active prisoner according to the wall masks.
func (w *World) Walkable(room uint16, px, py int) bool {
	v := w.viewFor(room)
	if !v.defined || px < 0 || py < 0 || px >= v.pixelWidth() || py >= v.pixelHeight() {
		return false
	}
	row := w.wallMaskRow(v, px/data.TileWidth, py/data.TileHeight, py%data.TileHeight, w.remBitmask[w.current])
	return row&(1<<(31-px%data.TileWidth)) != 0
}
