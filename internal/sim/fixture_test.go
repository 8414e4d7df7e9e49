package sim

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/vovakirdan/tui-escape/internal/data"
)

// Test map:
//
//	room 0 (cells)      4x3, door to room 1 at (1,0), tunnel at (1,2), fireplace at (2,2)
//	room 1 (hall)       4x3, door to room 0 at (1,2), door outside at (2,2)
//	room 2 (solitary)   4x3, not authorized
//	room 3 (guardhouse) 4x3, every guard starts here
//	tunnel room         2x1, tunnel entrance at (0,0)
//	outside             all floor, door to room 1 at (40,30), removable wall at (38,30)
const (
	tileWall    = 0
	tileFloor   = 1
	tileDoor    = 2
	tileTunnel  = 3
	tileFire    = 4
	tileRemWall = 5

	roomCells      = 0
	roomHall       = 1
	roomSolitary   = 2
	roomGuardhouse = 3
	roomTunnel     = data.TunnelRoomsStart

	poolWallMask   = data.LoaderDataPool
	poolFloorMask  = poolWallMask + data.MaskSize
	poolExitMask   = poolFloorMask + data.MaskSize
	poolAnimLoop   = poolExitMask + data.MaskSize
	poolAnimShot   = poolAnimLoop + 4
	poolAnimDoor   = poolAnimShot + 8
	poolAuthorized = poolAnimDoor + 4
	poolNothing    = poolAuthorized + 4
	poolMessages   = poolNothing + 4
	loaderSize     = poolMessages + 0x100

	fireplaceAnim = 0x22

	outsideDoorX = 40
	outsideDoorY = 30
	remTileX     = 38
	remTileY     = 30
	remLineY     = 600
	remMinX      = 1200
	remMaxX      = 1400

	// ROUTES.BIN offsets.
	routeIdle     = 0
	routeEast     = 6
	routeAbsolute = 12
	routeWest     = 26
	routesSize    = 32
)

type fixture struct {
	raw [data.NbFiles][]byte
}

func tw(ti, exit int) uint16 {
	return uint16(ti<<data.TileIndexShift | exit)
}

func put16(b []byte, off uint32, v uint16) { binary.BigEndian.PutUint16(b[off:], v) }
func put32(b []byte, off uint32, v uint32) { binary.BigEndian.PutUint32(b[off:], v) }

func newFixture() *fixture {
	f := &fixture{}
	f.raw[data.FileRooms] = make([]byte, data.RoomsStart+0x90)
	f.raw[data.FileLoader] = make([]byte, loaderSize)
	f.raw[data.FileCompressedMap] = make([]byte, data.CmpTilesStart+0x10)
	f.raw[data.FileObjects] = make([]byte, data.ObjectsStart+3*data.ObjectRecordSize)
	f.raw[data.FileTunnelIO] = make([]byte, data.TunnelIOStart+2*data.TunnelIOEntrySize)
	f.raw[data.FileGuards] = make([]byte, data.NbGuards*data.GuardRecordSize)
	f.raw[data.FileRoutes] = make([]byte, routesSize)

	f.buildRooms()
	f.buildOutside()
	f.buildLoader()
	f.buildObjects()
	f.buildTunnels()
	f.buildGuards()
	return f
}

func (f *fixture) buildRooms() {
	rooms := f.raw[data.FileRooms]
	for r := range uint32(data.NbRooms) {
		put32(rooms, data.RoomsOffsets+r*4, data.NoRoomData)
	}
	fl := tw(tileFloor, 0)
	f.room(roomCells, 0x00, 4, 3, []uint16{
		fl, tw(tileDoor, 1), fl, fl,
		fl, fl, fl, fl,
		fl, tw(tileTunnel, 0), tw(tileFire, 0), fl,
	})
	f.room(roomHall, 0x20, 4, 3, []uint16{
		fl, fl, fl, fl,
		fl, fl, fl, fl,
		fl, tw(tileDoor, 1), tw(tileDoor, 2), fl,
	})
	f.room(roomSolitary, 0x40, 4, 3, []uint16{fl, fl, fl, fl, fl, fl, fl, fl, fl, fl, fl, fl})
	f.room(roomGuardhouse, 0x60, 4, 3, []uint16{fl, fl, fl, fl, fl, fl, fl, fl, fl, fl, fl, fl})
	f.room(roomTunnel, 0x80, 2, 1, []uint16{tw(tileTunnel, 0), fl})

	f.roomExit(roomCells, 0, data.ExitOpen, roomHall)
	f.roomExit(roomHall, 0, data.ExitOpen, roomCells)
	f.roomExit(roomHall, 1, data.ExitOpen, data.ExitTargetOutside|0)
}

func (f *fixture) room(room int, off uint32, width, height int, tiles []uint16) {
	rooms := f.raw[data.FileRooms]
	put32(rooms, data.RoomsOffsets+uint32(room)*4, off)
	base := data.RoomsStart + off
	put16(rooms, base, uint16(height))
	put16(rooms, base+2, uint16(width))
	for i, t := range tiles {
		put16(rooms, base+4+uint32(i)*2, t)
	}
}

func (f *fixture) roomExit(room, idx int, status uint8, target uint16) {
	off := roomExitOffset(uint16(room), idx)
	f.raw[data.FileRooms][off] = status
	put16(f.raw[data.FileRooms], off+2, target)
}

func (f *fixture) buildOutside() {
	cmp := f.raw[data.FileCompressedMap]
	// Every tile points at the floor word at pool offset 0.
	put16(cmp, data.CmpTilesStart, tw(tileFloor, 0))
	put16(cmp, data.CmpTilesStart+2, tw(tileDoor, 1))
	put16(cmp, data.CmpTilesStart+4, tw(tileRemWall, 0))
	put32(cmp, data.CmpMapOffsets+uint32(outsideDoorY*data.CmpMapWidth+outsideDoorX)*4, 2)
	put32(cmp, data.CmpMapOffsets+uint32(remTileY*data.CmpMapWidth+remTileX)*4, 4)

	// Outside exit 0 leads to exit 1 of the hall.
	cmp[data.CmpExitsBase] = data.ExitOpen
	cmp[data.CmpExitsBase+1] = 1
	put16(cmp, data.CmpExitsBase+2, roomHall)
}

func (f *fixture) buildLoader() {
	ld := f.raw[data.FileLoader]

	for i := range uint32(data.MaskRows) {
		put32(ld, poolFloorMask+i*4, 0xFFFFFFFF)
	}
	for i := range uint32(4) {
		put32(ld, poolExitMask+i*4, 0xFFFFFFFF)
	}
	for ti := range uint32(data.NbMaskTiles) {
		put16(ld, data.TileMasksOffsets+ti*2, poolWallMask)
	}
	for _, ti := range []uint32{tileFloor, tileDoor, tileTunnel, tileFire} {
		put16(ld, data.TileMasksOffsets+ti*2, poolFloorMask)
		put16(ld, data.TileMasksOffsets+(ti+data.TunnelTileAddon)*2, poolFloorMask)
	}
	put16(ld, data.ExitMasksOffsets+tileDoor*2, poolExitMask)

	ld[data.RoomDescBase+roomCells] = 1
	ld[data.RoomDescBase+roomHall] = 1
	ld[data.RoomDescBase+roomSolitary] = 2
	ld[data.RoomDescBase+roomGuardhouse] = 3

	copy(ld[poolAuthorized:], []byte{RoomDescCourtyard, 1, data.AuthorizedListEnd})
	ld[poolNothing] = data.AuthorizedListEnd
	for set := range uint32(data.NbAuthorizedSets) {
		for n := range uint32(NbNations) {
			list := uint16(poolAuthorized)
			if set == 1 {
				list = poolNothing
			}
			put16(ld, data.AuthorizedBase+(set*NbNations+n)*2, list)
		}
	}

	copy(ld[poolAnimLoop:], []byte{2, data.AnimationLooping, 10, 11})
	copy(ld[poolAnimShot:], []byte{3, 0, 20, 21, 22})
	copy(ld[poolAnimDoor:], []byte{2, 0, 30, 31})
	for i := range uint32(data.NbAnimations) {
		put16(ld, data.AnimationOffsets+i*2, poolAnimLoop)
	}
	put16(ld, data.AnimationOffsets+AniShot*2, poolAnimShot)
	put16(ld, data.AnimationOffsets+AniDoorOpen*2, poolAnimDoor)
	put16(ld, data.AnimationOffsets+AniDoorClose*2, poolAnimDoor)

	put16(ld, data.SpecialTilesStart, tileFire)
	put16(ld, data.SpecialTilesStart+2, fireplaceAnim)
	put16(ld, data.SpecialTilesStart+data.SpecialTileSize, 0xFFFF)

	put16(ld, data.RabbitInStart, 0xFFFF)
	put16(ld, data.RabbitOutStart, tileDoor)
	put16(ld, data.RabbitOutStart+2, 4)
	put16(ld, data.RabbitOutStart+4, 10)
	put16(ld, data.RabbitOutStart+data.RabbitSize, 0xFFFF)

	timed := [][3]uint16{
		{9, 1, TimedPalette<<8 | 3},
		{9, 2, TimedAuthorize<<8 | 1},
		{9, 3, TimedRollcall<<8 | 0},
		{0xFFFF, 0, 0},
	}
	for i, ev := range timed {
		off := data.TimedEventsStart + uint32(i)*data.TimedEventSize
		put16(ld, off, ev[0])
		put16(ld, off+2, ev[1])
		put16(ld, off+4, ev[2])
	}

	initial := [NbNations][3]uint16{
		{roomCells, 36, 20},
		{roomCells, 68, 20},
		{roomHall, 36, 20},
		{roomHall, 68, 20},
	}
	for n, pos := range initial {
		off := data.InitialPositions + uint32(n)*data.PositionSize
		put16(ld, off, pos[0])
		put16(ld, off+2, pos[1])
		put16(ld, off+4, pos[2])
		soff := data.SolitaryPositions + uint32(n)*data.PositionSize
		put16(ld, soff, roomSolitary)
		put16(ld, soff+2, 8+uint16(n)*24)
		put16(ld, soff+4, 8)
	}

	for i := range uint32(data.NbRemSections) {
		put16(ld, data.RemSectionsStart+i*data.RemSectionSize, 0xFFFF)
	}
	put16(ld, data.RemSectionsStart, remHorizontal)
	put16(ld, data.RemSectionsStart+2, remLineY)
	put16(ld, data.RemSectionsStart+4, remMinX)
	put16(ld, data.RemSectionsStart+6, remMaxX)
	put16(ld, data.RemTilesStart, remTileY*data.CmpMapWidth+remTileX)
	put16(ld, data.RemTilesStart+2, 0)
	put16(ld, data.RemTilesStart+4, tileFloor)
	put16(ld, data.RemTilesStart+data.RemTileSize, 0xFFFF)

	for i := range uint32(data.NbSfx) {
		off := data.SfxTableStart + i*data.SfxEntrySize
		put16(ld, off+4, 0x100)
		put16(ld, off+6, 64)
	}

	for id := range uint32(16) {
		off := poolMessages + id*8
		copy(ld[off:], fmt.Sprintf("msg %d", id))
		put16(ld, data.MessagesStart+id*2, uint16(off))
	}

	put16(ld, data.TunnelIOTiles, tileTunnel)
	put16(ld, data.TunnelIOTiles+2, 0xFFFF)
}

func (f *fixture) buildObjects() {
	obs := f.raw[data.FileObjects]
	put16(obs, data.ObjectsCount, 3)
	objects := [][4]uint16{
		{roomCells, 40, 24, ItemStone},
		{roomCells, 100, 24, ItemPapers},
		{data.RoomNone, 0, 0, ItemShovel},
	}
	for i, o := range objects {
		rec := objectRecord(i)
		put16(obs, rec+data.ObjectRoom, o[0])
		put16(obs, rec+data.ObjectPX, o[1])
		put16(obs, rec+data.ObjectPY, o[2])
		put16(obs, rec+data.ObjectItem, o[3])
	}
}

func (f *fixture) buildTunnels() {
	tio := f.raw[data.FileTunnelIO]
	put16(tio, data.TunnelIOCount, 2)
	// Entry 0 in the cells at tile (1,2), entry 1 in the tunnel at (0,0).
	put16(tio, tunnelEntryOffset(0)+data.TunnelIORoom, roomCells)
	put16(tio, tunnelEntryOffset(0)+data.TunnelIOTile, 2*4+1)
	put16(tio, tunnelEntryOffset(0)+data.TunnelIOMirror, 1)
	put16(tio, tunnelEntryOffset(1)+data.TunnelIORoom, roomTunnel)
	put16(tio, tunnelEntryOffset(1)+data.TunnelIOTile, 0)
	put16(tio, tunnelEntryOffset(1)+data.TunnelIOMirror, 0)
}

func (f *fixture) buildGuards() {
	routes := f.raw[data.FileRoutes]
	for off, v := range map[uint32]uint16{
		routeIdle: 0x7FFF, routeIdle + 2: data.RouteStopped, routeIdle + 4: data.RouteRestart,
		routeEast: 3, routeEast + 2: uint16(DirEast), routeEast + 4: data.RouteRestart,
		routeAbsolute: data.RouteAbsolute, routeAbsolute + 2: roomGuardhouse,
		routeAbsolute + 4: 40, routeAbsolute + 6: 20,
		routeAbsolute + 8: 2, routeAbsolute + 10: data.RouteStopped, routeAbsolute + 12: data.RouteRestart,
		routeWest: 3, routeWest + 2: uint16(DirWest), routeWest + 4: data.RouteRestart,
	} {
		put16(routes, off, v)
	}
	for i := range NbGuards {
		f.guard(i, roomGuardhouse, 8, 8, routeIdle)
	}
}

// guard places guard i at a start position with a route.
func (f *fixture) guard(i int, room uint16, px, py int, route uint32) {
	gt := f.raw[data.FileGuards]
	rec := guardRecord(i)
	put16(gt, rec+data.GuardRoom, room)
	put16(gt, rec+data.GuardPX, uint16(px))
	put16(gt, rec+data.GuardPY, uint16(py))
	put16(gt, rec+data.GuardDirection, 0xFFFF)
	put32(gt, rec+data.GuardRouteStart, route)
	put32(gt, rec+data.GuardRouteCursor, route)
}

func (f *fixture) files(t *testing.T) *data.Files {
	t.Helper()
	files, err := data.FromBuffers(f.raw)
	if err != nil {
		t.Fatalf("FromBuffers() failed: %v", err)
	}
	return files
}

func (f *fixture) world(t *testing.T, host Host) *World {
	t.Helper()
	opts := DefaultOptions()
	opts.Host = host
	opts.Seed = 42
	return New(f.files(t), opts)
}

func newTestWorld(t *testing.T) (*World, *recordHost) {
	t.Helper()
	host := &recordHost{}
	return newFixture().world(t, host), host
}

// recordHost records every host call.
type recordHost struct {
	pictures  []Picture
	callbacks []Callback
	sfx       []SFX
	messages  []string
}

func (h *recordHost) StaticScreen(pic Picture, cb Callback, _ uint32) {
	h.pictures = append(h.pictures, pic)
	h.callbacks = append(h.callbacks, cb)
}

func (h *recordHost) PlaySFX(id SFX) { h.sfx = append(h.sfx, id) }

func (h *recordHost) SetStatusMessage(text string, _ int, _ int) {
	h.messages = append(h.messages, text)
}

func (h *recordHost) sawPicture(pic Picture) bool {
	for _, p := range h.pictures {
		if p == pic {
			return true
		}
	}
	return false
}

func (h *recordHost) sawSFX(id SFX) bool {
	for _, s := range h.sfx {
		if s == id {
			return true
		}
	}
	return false
}

// place moves the active prisoner, entering the room.
func (w *World) place(t *testing.T, room uint16, px, py int) *Guybrush {
	t.Helper()
	p := &w.guys[w.current]
	p.Room = room
	p.PX = int16(px)
	p.P2Y = int16(2 * py)
	w.enterRoom(room)
	return p
}

// placeGuard moves guard i without touching its route.
func (w *World) placeGuard(i int, room uint16, px, py int) *Guybrush {
	g := w.guard(i)
	g.Room = room
	g.PX = int16(px)
	g.P2Y = int16(2 * py)
	return g
}
