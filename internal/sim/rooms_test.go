package sim

import (
	"slices"
	"testing"
)

func TestWalkable(t *testing.T) {
	w, _ := newTestWorld(t)
	tests := []struct {
		name   string
		room   uint16
		px, py int
		want   bool
	}{
		{"floor", roomCells, 40, 20, true},
		{"last pixel", roomCells, 127, 47, true},
		{"past the right edge", roomCells, 128, 20, false},
		{"past the bottom edge", roomCells, 40, 48, false},
		{"negative", roomCells, -1, 0, false},
		{"undefined room", 0x100, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Walkable(tt.room, tt.px, tt.py); got != tt.want {
				t.Errorf("Walkable(%d, %d, %d) = %v, want %v", tt.room, tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestTileRow(t *testing.T) {
	w, _ := newTestWorld(t)
	if wd, ht := w.RoomSize(roomCells); wd != 4 || ht != 3 {
		t.Fatalf("RoomSize() = %dx%d, want 4x3", wd, ht)
	}
	fl := tw(tileFloor, 0)
	got := w.TileRow(roomCells, 0, nil)
	if want := []uint16{fl, tw(tileDoor, 1), fl, fl}; !slices.Equal(got, want) {
		t.Errorf("TileRow(0) = %v, want %v", got, want)
	}
	if got := w.TileRow(0x100, 0, got); len(got) != 0 {
		t.Errorf("TileRow() of an undefined room = %v, want empty", got)
	}
}
