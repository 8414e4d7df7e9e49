package sim

import (
	"testing"

	"github.com/vovakirdan/tui-escape/internal/data"
)

func TestComputeRemBitmask(t *testing.T) {
	w, _ := newTestWorld(t)

	tests := []struct {
		name     string
		room     uint16
		px, py   int
		expected uint32
	}{
		{"below the line", data.RoomOutside, 1300, remLineY + 100, 1},
		{"on the line", data.RoomOutside, 1300, remLineY, 1},
		{"above the line", data.RoomOutside, 1300, remLineY - 1, 0},
		{"outside the range", data.RoomOutside, remMaxX + 1, remLineY + 100, 0},
		{"indoors", roomCells, 1300, remLineY + 100, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.computeRemBitmask(tc.room, tc.px, tc.py); got != tc.expected {
				t.Errorf("computeRemBitmask() = %b, expected %b", got, tc.expected)
			}
		})
	}
}

func TestUpdateRemBitmask(t *testing.T) {
	w, _ := newTestWorld(t)

	tests := []struct {
		name           string
		mask           uint32
		x0, y0, x1, y1 int
		expected       uint32
	}{
		{"cross downward", 0, 1300, remLineY - 1, 1300, remLineY, 1},
		{"cross upward", 1, 1300, remLineY, 1300, remLineY - 1, 0},
		{"cross out of range", 0, 100, remLineY - 1, 100, remLineY, 0},
		{"no crossing", 1, 1300, remLineY + 5, 1301, remLineY + 6, 1},
		{"other bits kept", 0x80, 1300, remLineY - 1, 1300, remLineY, 0x81},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := w.updateRemBitmask(tc.mask, tc.x0, tc.y0, tc.x1, tc.y1)
			if got != tc.expected {
				t.Errorf("updateRemBitmask() = %b, expected %b", got, tc.expected)
			}
		})
	}
}

func TestRemovableWallTile(t *testing.T) {
	w, _ := newTestWorld(t)
	v := w.viewFor(data.RoomOutside)

	if ti, _ := w.maskTile(v, remTileX, remTileY, 0); ti != tileRemWall {
		t.Errorf("wall up: tile %d, expected %d", ti, tileRemWall)
	}
	if ti, _ := w.maskTile(v, remTileX, remTileY, 1); ti != tileFloor {
		t.Errorf("wall down: tile %d, expected %d", ti, tileFloor)
	}
	if row := w.wallMaskRow(v, remTileX, remTileY, 0, 0); row != 0 {
		t.Errorf("wall up: mask row %08X, expected solid", row)
	}
	if row := w.wallMaskRow(v, remTileX, remTileY, 0, 1); row != 0xFFFFFFFF {
		t.Errorf("wall down: mask row %08X, expected walkable", row)
	}
	// Other tiles are unaffected.
	if ti, _ := w.maskTile(v, remTileX+1, remTileY, 1); ti != tileFloor {
		t.Errorf("neighbour tile %d, expected %d", ti, tileFloor)
	}
}

func TestMoveUpdatesRemBitmask(t *testing.T) {
	w, _ := newTestWorld(t)
	w.place(t, data.RoomOutside, 1300, remLineY-1)
	if w.RemBitmask(0) != 0 {
		t.Fatalf("initial mask %b, expected 0", w.RemBitmask(0))
	}
	w.Move(DirSouth, false)
	if err := w.movePrisoner(); err != nil {
		t.Fatalf("movePrisoner() failed: %v", err)
	}
	if w.RemBitmask(0) != 1 {
		t.Errorf("mask after crossing %b, expected 1", w.RemBitmask(0))
	}
}
