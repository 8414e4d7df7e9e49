package data

// Layout of the data files. All multi-byte values are big-endian.
// Offsets are byte offsets into the file named in the section header.

// Table sizes shared by several files.
const (
	NbNations = 4    // Prisoners, one per nation
	NbGuards  = 0x3D // Entries of the guard table
	NbRooms   = 0x211
	// Rooms at or above this index are tunnel sections.
	TunnelRoomsStart = 0x203

	// Room words used by the guard and object tables.
	RoomOutside = 0xFFFF // outside map
	RoomNone    = 0xFFFE // not placed, e.g. an object being carried
)

// COLDITZ_ROOM_MAPS
const (
	// NbRooms longs, offset of the room data relative to RoomsStart.
	RoomsOffsets = 0x0000
	// Per-room block of RoomExitsPerRoom entries of RoomExitSize bytes:
	// status byte, reserved byte, target word.
	RoomsExitsBase   = 0x0850
	RoomExitsPerRoom = 8
	RoomExitSize     = 4
	RoomExitsStride  = RoomExitsPerRoom * RoomExitSize
	// Room data: height word, width word, then width*height tile words.
	RoomsStart = 0x4A80

	NoRoomData = 0xFFFFFFFF
	// Bit 15 of an exit target: the destination is the outside map and the
	// low bits hold the outside exit number.
	ExitTargetOutside = 0x8000
)

// Tile words, shared by rooms and the compressed map.
const (
	TileIndexShift = 7
	TileExitMask   = 0x7F
	TileWidth      = 32 // pixels
	TileHeight     = 16 // pixels
	MaskRows       = TileHeight
	MaskSize       = MaskRows * 4 // one long per pixel row
)

// Exit status byte.
const (
	ExitOpen       = 0x10
	ExitGradeMask  = 0x60
	ExitGradeShift = 5
)

// COMPRESSED_MAP
const (
	CmpMapWidth  = 0x54 // tiles
	CmpMapHeight = 0x48 // tiles
	// CmpMapWidth*CmpMapHeight longs, offset of the tile word in the pool.
	CmpMapOffsets = 0x0000
	// CmpNbExits entries: status byte, room exit index byte, room word.
	CmpExitsBase = 0x5E80
	CmpNbExits   = 0x7F
	CmpExitSize  = 4
	// Pool of tile words referenced by the map.
	CmpTilesStart = 0x6080
)

// TUNNELIO.BIN
const (
	TunnelIOCount     = 0x0000 // word
	TunnelIOStart     = 0x0002
	TunnelIOEntrySize = 8
	// Entry fields.
	TunnelIORoom   = 0 // word
	TunnelIOTile   = 2 // word, tile_y*room_width + tile_x
	TunnelIOMirror = 4 // word, index of the other end
	TunnelIOStatus = 6 // byte, same encoding as exits
)

// MENDAT.BIN
const (
	GuardRecordSize  = 0x14
	GuardRoom        = 0x00 // word
	GuardPX          = 0x02 // word
	GuardPY          = 0x04 // word, full pixels
	GuardDirection   = 0x06 // word
	GuardRouteStart  = 0x08 // long, byte offset into ROUTES.BIN
	GuardRouteCursor = 0x0C // long, byte offset into ROUTES.BIN
	GuardFlags       = 0x10 // word
)

// ROUTES.BIN words.
const (
	RouteRestart  = 0xFFFF
	RouteAbsolute = 0x8000
	// Direction word of a relative entry meaning "stand still".
	RouteStopped = 0x00FF
)

// OBS.BIN
const (
	ObjectsCount     = 0x0000 // word
	ObjectsStart     = 0x0002
	ObjectRecordSize = 8
	ObjectRoom       = 0 // word
	ObjectPX         = 2 // word
	ObjectPY         = 4 // word
	ObjectItem       = 6 // word
)

// COLDITZ-LOADER sub-tables.
const (
	// Word per tile index: loader offset of a 16-long wall mask.
	TileMasksOffsets = 0x0000
	NbMaskTiles      = 0x240
	// Added to the tile index of tunnel rooms before the wall mask lookup.
	TunnelTileAddon = 0x200

	// Word per tile index: loader offset of a 16-long exit mask, 0 if none.
	ExitMasksOffsets = 0x0480
	NbExitMaskTiles  = 0x200

	// Byte per room: room description id.
	RoomDescBase = 0x0880

	// Word per (set, nation): loader offset of a 0xFF terminated id list.
	AuthorizedBase    = 0x0AA0
	NbAuthorizedSets  = 4
	AuthorizedListEnd = 0xFF

	// Word per animation: loader offset of [nb_frames, flags, frames...].
	AnimationOffsets = 0x0AC0
	NbAnimations     = 0x40
	AnimationLooping = 0x01

	// NbSpecialTiles entries: tile index word, animation index word.
	SpecialTilesStart = 0x0B40
	NbSpecialTiles    = 0x10
	SpecialTileSize   = 4

	// Rabbit offsets: tile index word, signed dx word, signed dy word.
	// Lists end on a 0xFFFF tile index.
	RabbitInStart  = 0x0B80
	RabbitOutStart = 0x0CC0
	RabbitSize     = 6
	NbRabbits      = 0x20

	// Scripted events: hours word, minutes word, event word. A 0xFFFF hour
	// sends the cursor back to the start of the table.
	TimedEventsStart = 0x0E00
	TimedEventSize   = 6
	NbTimedEvents    = 0x20

	// NbNations entries of room word, px word, py word.
	InitialPositions  = 0x0EC0
	SolitaryPositions = 0x0ED8
	PositionSize      = 6

	// 32 removable wall sections: kind word, coordinate word, min word,
	// max word. Kind 0 is a horizontal line at y, kind 1 a vertical line
	// at x, 0xFFFF an unused slot.
	RemSectionsStart = 0x0F00
	RemSectionSize   = 8
	NbRemSections    = 32
	// Tiles swapped when a section is down: tile position word, section
	// word, replacement tile index word. Ends on a 0xFFFF position.
	RemTilesStart = 0x1000
	RemTileSize   = 6
	NbRemTiles    = 0x40

	// NbSfx entries: sample offset long, length word, volume word.
	SfxTableStart = 0x1180
	SfxEntrySize  = 8
	NbSfx         = 0x10

	// Word per message id: loader offset of a NUL-terminated string.
	MessagesStart = 0x1200
	NbMessages    = 0x40

	// Tile indexes of tunnel entrances, ends on 0xFFFF.
	TunnelIOTiles   = 0x1280
	NbTunnelIOTiles = 0x10

	// Variable-length data referenced by the tables above.
	LoaderDataPool = 0x1300
)
