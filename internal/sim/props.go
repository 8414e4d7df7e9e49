package sim

import (
	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/data"
)

// Reach of a prisoner picking up an object, in pixels.
const (
	pickReachX = 16
	pickReachY = 8
)

func objectRecord(i int) uint32 {
	return data.ObjectsStart + uint32(i)*data.ObjectRecordSize //#nosec G115 -- i < object count
}

// Object is a pickable object lying on the map.
type Object struct {
	Index int
	Room  uint16
	PX    int
	PY    int
	Item  int
}

func (w *World) object(i int) Object {
	obs := w.files.Objects()
	rec := objectRecord(i)
	return Object{
		Index: i,
		Room:  obs.Word(rec + data.ObjectRoom),
		PX:    int(obs.Word(rec + data.ObjectPX)),
		PY:    int(obs.Word(rec + data.ObjectPY)),
		Item:  int(obs.Word(rec + data.ObjectItem)),
	}
}

func (w *World) nbObjects() int {
	obs := w.files.Objects()
	n := int(obs.Word(data.ObjectsCount))
	// Never trust the count beyond the file size.
	return min(n, (len(obs)-data.ObjectsStart)/data.ObjectRecordSize)
}

// refreshRoomProps rebuilds the cache of objects in the displayed room.
func (w *World) refreshRoomProps() {
	if w.roomPropsValid {
		return
	}
	w.roomProps = w.roomProps[:0]
	for i := range w.nbObjects() {
		if w.object(i).Room == w.view.room {
			w.roomProps = append(w.roomProps, i)
		}
	}
	w.roomPropsValid = true
}

// RoomObjects returns the objects lying in the displayed room.
func (w *World) RoomObjects() []Object {
	w.refreshRoomProps()
	out := make([]Object, 0, len(w.roomProps))
	for _, i := range w.roomProps {
		out = append(out, w.object(i))
	}
	return out
}

// PickUp picks up the nearest object within reach of the active prisoner.
func (w *World) PickUp() bool {
	n := w.current
	if !w.canMove(n) {
		return false
	}
	p := &w.guys[n]
	w.refreshRoomProps()
	reach := core.NewRect(int(p.PX)-pickReachX, p.PY()-pickReachY, GuyWidth+2*pickReachX, GuyHeight+2*pickReachY)
	best, bestDist := -1, 0
	for _, i := range w.roomProps {
		o := w.object(i)
		if !reach.Contains(o.PX, o.PY) || o.Item <= ItemNone || o.Item >= NbProps {
			continue
		}
		d := core.Abs(o.PX-int(p.PX)) + core.Abs(o.PY-p.PY())
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return false
	}
	o := w.object(best)
	if w.props[n][o.Item] == 0xFF {
		return false
	}
	_ = w.files.Objects().SetWord(objectRecord(best)+data.ObjectRoom, data.RoomNone)
	w.props[n][o.Item]++
	w.selected[n] = uint8(o.Item) //#nosec G115 -- item < NbProps
	w.roomPropsValid = false
	if text := w.message(MsgPicked); text != "" {
		w.host.SetStatusMessage(text+" "+ItemName(o.Item), PriorityNormal, MessageTimeout)
	}
	w.log.Debug("object picked", "nation", n, "item", ItemName(o.Item), "object", best)
	return true
}

// Drop puts the selected item down at the active prisoner's feet.
func (w *World) Drop() bool {
	n := w.current
	if !w.canMove(n) {
		return false
	}
	item := int(w.selected[n])
	if item == ItemNone || w.props[n][item] == 0 {
		return false
	}
	obs := w.files.Objects()
	p := &w.guys[n]
	for i := range w.nbObjects() {
		o := w.object(i)
		if o.Room != data.RoomNone || o.Item != item {
			continue
		}
		rec := objectRecord(i)
		_ = obs.SetWord(rec+data.ObjectRoom, p.Room)
		_ = obs.SetWord(rec+data.ObjectPX, uint16(p.PX))   //#nosec G115 -- positions are positive
		_ = obs.SetWord(rec+data.ObjectPY, uint16(p.PY())) //#nosec G115 -- positions are positive
		w.props[n][item]--
		if w.props[n][item] == 0 {
			w.selected[n] = uint8(w.nextProp(n, item)) //#nosec G115 -- item < NbProps
		}
		w.roomPropsValid = false
		w.status(MsgDropped, PriorityLow)
		return true
	}
	return false
}

// nextProp returns the next held item after item, cycling, or ItemNone.
func (w *World) nextProp(n, item int) int {
	for k := 1; k < NbProps; k++ {
		cand := (item + k) % NbProps
		if cand != ItemNone && w.props[n][cand] > 0 {
			return cand
		}
	}
	return ItemNone
}

// CycleProp selects the next held item of the active prisoner.
func (w *World) CycleProp() {
	n := w.current
	w.selected[n] = uint8(w.nextProp(n, int(w.selected[n]))) //#nosec G115 -- item < NbProps
}

// ToggleUniform puts a guard's uniform on or takes it off.
func (w *World) ToggleUniform() bool {
	n := w.current
	p := &w.guys[n]
	if !w.canMove(n) {
		return false
	}
	if p.DressedAsGuard {
		p.DressedAsGuard = false
		w.status(MsgUniformOff, PriorityLow)
	} else {
		if w.props[n][ItemGuardsUniform] == 0 {
			return false
		}
		p.DressedAsGuard = true
		w.status(MsgUniformOn, PriorityLow)
	}
	p.ResetAnimation = true
	return true
}

// ThrowStone throws a stone, distracting the guards of the room for a while.
func (w *World) ThrowStone() bool {
	n := w.current
	ev := &w.pevents[n]
	if !w.canMove(n) || ev.ThrownStone || w.props[n][ItemStone] == 0 {
		return false
	}
	w.props[n][ItemStone]--
	ev.ThrownStone = true
	w.playSFX(SfxStone)
	w.status(MsgStoneThrown, PriorityLow)
	w.distractGuards(w.guys[n].Room)
	w.EnqueueEvent(CbStoneLanded, uint32(n), StoneFlightDelay) //#nosec G115 -- n < NbNations
	return true
}
