package tui

import (
	"time"

	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/data"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

const (
	fakeRoom      = 5
	fakeElsewhere = 9
	tileFloor     = 1
)

// fakeWorld is a 2x3 tile room with a wall at tile (1,0) and an exit at
// tile (0,2).
type fakeWorld struct {
	width, height int
	walls         map[[2]int]bool
	exits         map[[2]int]bool

	prisoners [sim.NbNations]sim.Guybrush
	guards    [sim.NbGuards]sim.Guybrush
	events    [sim.NbNations]sim.PrisonerEvent
	objects   []sim.Object
	overlays  []sim.Overlay
	room      uint16
	current   int
	palette   int

	steps     int
	elapsed   time.Duration
	inputs    []core.InputFrame
	callbacks []sim.Callback
	finished  bool
	loaded    []byte
	stepErr   error
	onStep    func()
}

func newFakeWorld() *fakeWorld {
	w := &fakeWorld{
		width:  2,
		height: 3,
		room:   fakeRoom,
		walls:  map[[2]int]bool{{1, 0}: true},
		exits:  map[[2]int]bool{{0, 2}: true},
	}
	for n := range w.prisoners {
		w.prisoners[n] = sim.Guybrush{Room: fakeElsewhere, Direction: sim.DirectionStopped}
	}
	w.prisoners[0] = sim.Guybrush{Room: fakeRoom, PX: 8, P2Y: 32, Direction: sim.DirectionStopped}
	for i := range w.guards {
		w.guards[i] = sim.Guybrush{Room: fakeElsewhere, Direction: sim.DirectionStopped}
	}
	w.guards[0] = sim.Guybrush{Room: fakeRoom, PX: 16, P2Y: 0, Direction: sim.DirEast}
	w.objects = []sim.Object{{Room: fakeRoom, PX: 24, PY: 32, Item: sim.ItemStone}}
	return w
}

func (w *fakeWorld) Step(d time.Duration) error {
	if w.stepErr != nil {
		return w.stepErr
	}
	w.steps++
	w.elapsed += d
	if w.onStep != nil {
		w.onStep()
	}
	return nil
}

func (w *fakeWorld) HandleInput(in core.InputFrame) { w.inputs = append(w.inputs, in.Clone()) }

func (w *fakeWorld) RunCallback(cb sim.Callback, _ uint32) {
	w.callbacks = append(w.callbacks, cb)
	if cb == sim.CbGameEnded {
		w.finished = true
	}
}

func (w *fakeWorld) Finished() bool { return w.finished }

func (w *fakeWorld) Snapshot() sim.Snapshot {
	return sim.Snapshot{
		Now:          uint64(w.elapsed / time.Millisecond),
		Current:      w.current,
		PrisonerData: make([]int, sim.NbNations*3),
		GameOver:     w.finished,
	}
}

func (w *fakeWorld) SaveBytes() ([]byte, error) { return []byte("save"), nil }

func (w *fakeWorld) LoadBytes(b []byte) error {
	w.loaded = b
	return nil
}

func (w *fakeWorld) Current() int { return w.current }

func (w *fakeWorld) Room() uint16 { return w.room }

func (w *fakeWorld) RoomSize(room uint16) (int, int) {
	if room != fakeRoom {
		return 0, 0
	}
	return w.width, w.height
}

func (w *fakeWorld) TileRow(room uint16, ty int, dst []uint16) []uint16 {
	dst = dst[:0]
	if room != fakeRoom {
		return dst
	}
	for tx := range w.width {
		tile := uint16(tileFloor << data.TileIndexShift)
		if w.exits[[2]int{tx, ty}] {
			tile |= 1
		}
		dst = append(dst, tile)
	}
	return dst
}

func (w *fakeWorld) Walkable(room uint16, px, py int) bool {
	if room != fakeRoom || px < 0 || py < 0 || px >= w.width*data.TileWidth || py >= w.height*data.TileHeight {
		return false
	}
	return !w.walls[[2]int{px / data.TileWidth, py / data.TileHeight}]
}

func (w *fakeWorld) Prisoner(n int) *sim.Guybrush { return &w.prisoners[n] }

func (w *fakeWorld) PrisonerEvent(n int) *sim.PrisonerEvent { return &w.events[n] }

func (w *fakeWorld) Guard(i int) *sim.Guybrush { return &w.guards[i] }

func (w *fakeWorld) RoomObjects() []sim.Object { return w.objects }

func (w *fakeWorld) Overlays() []sim.Overlay { return w.overlays }

func (w *fakeWorld) Clock() (int, int) { return 9, 30 }

func (w *fakeWorld) Palette() int { return w.palette }

func (w *fakeWorld) RemainingToWin() int { return sim.NbNations }

func (w *fakeWorld) Props(int, int) int { return 0 }

func (w *fakeWorld) SelectedProp(int) int { return sim.ItemNone }

var _ World = (*fakeWorld)(nil)
