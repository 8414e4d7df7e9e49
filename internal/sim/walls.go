package sim

import (
	"github.com/vovakirdan/tui-escape/internal/data"
)

// Removable wall section kinds.
const (
	remHorizontal = 0
	remVertical   = 1
)

// remSection is a trigger line on the outside map.
type remSection struct {
	kind     uint16
	coord    int
	min, max int
}

func (w *World) remSectionAt(i int) remSection {
	ld := w.files.Loader()
	off := data.RemSectionsStart + uint32(i)*data.RemSectionSize //#nosec G115 -- i < 32
	return remSection{
		kind:  ld.Word(off),
		coord: int(ld.Word(off + 2)),
		min:   int(ld.Word(off + 4)),
		max:   int(ld.Word(off + 6)),
	}
}

// computeRemBitmask returns the removable wall state seen from a position:
// a section is down when the position is on the positive side of its line
// and within its range.
func (w *World) computeRemBitmask(room uint16, px, py int) uint32 {
	if room != data.RoomOutside {
		return 0
	}
	var mask uint32
	for i := range data.NbRemSections {
		s := w.remSectionAt(i)
		switch s.kind {
		case remHorizontal:
			if px >= s.min && px <= s.max && py >= s.coord {
				mask |= 1 << i
			}
		case remVertical:
			if py >= s.min && py <= s.max && px >= s.coord {
				mask |= 1 << i
			}
		}
	}
	return mask
}

// updateRemBitmask applies the lines crossed by a move from (x0, y0) to
// (x1, y1): crossing in the positive direction sets the section bit, in the
// negative direction clears it.
func (w *World) updateRemBitmask(mask uint32, x0, y0, x1, y1 int) uint32 {
	for i := range data.NbRemSections {
		s := w.remSectionAt(i)
		bit := uint32(1) << i
		switch s.kind {
		case remHorizontal:
			if x1 < s.min || x1 > s.max {
				continue
			}
			if y0 < s.coord && y1 >= s.coord {
				mask |= bit
			} else if y0 >= s.coord && y1 < s.coord {
				mask &^= bit
			}
		case remVertical:
			if y1 < s.min || y1 > s.max {
				continue
			}
			if x0 < s.coord && x1 >= s.coord {
				mask |= bit
			} else if x0 >= s.coord && x1 < s.coord {
				mask &^= bit
			}
		}
	}
	return mask
}

// remTile returns the replacement tile index at outside tile (tx, ty) when
// its wall section is down.
func (w *World) remTile(tx, ty int, rem uint32) (uint16, bool) {
	if rem == 0 {
		return 0, false
	}
	ld := w.files.Loader()
	pos := uint16(ty*data.CmpMapWidth + tx) //#nosec G115 -- bounded by map size
	for i := range uint32(data.NbRemTiles) {
		off := data.RemTilesStart + i*data.RemTileSize
		p := ld.Word(off)
		if p == 0xFFFF {
			break
		}
		if p != pos {
			continue
		}
		section := ld.Word(off + 2)
		if section < data.NbRemSections && rem&(1<<section) != 0 {
			return ld.Word(off + 4), true
		}
	}
	return 0, false
}
