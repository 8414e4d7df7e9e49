package sim

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-escape/internal/data"
)

// playSome runs a few seconds of a prisoner walking and picking things up.
func playSome(t *testing.T, w *World) {
	t.Helper()
	w.PickUp()
	w.EnqueueEvent(CbStoneLanded, 0, 90000)
	w.Move(DirEast, false)
	for range 200 {
		if err := w.Step(RepositionInterval * time.Millisecond); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}
	flip(w.Files().Rooms(), roomExitOffset(roomCells, 0))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	w, _ := newTestWorld(t)
	playSome(t, w)
	saved, err := w.SaveBytes()
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}

	other, _ := newTestWorld(t)
	if err := other.LoadBytes(saved); err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	want, got := w.Snapshot(), other.Snapshot()
	if want.Hash() != got.Hash() {
		t.Errorf("snapshot after load = %+v, want %+v", got, want)
	}
	again, err := other.SaveBytes()
	if err != nil {
		t.Fatalf("SaveBytes() after load error = %v", err)
	}
	if !bytes.Equal(saved, again) {
		t.Error("saving a loaded game gives different bytes")
	}
	for id := data.FileID(0); id < data.NbFiles; id++ {
		if !bytes.Equal(w.Files().Get(id), other.Files().Get(id)) {
			t.Errorf("%s differs after load", id)
		}
	}

	// Both worlds carry on identically.
	for range 100 {
		if err := w.Step(RepositionInterval * time.Millisecond); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
		if err := other.Step(RepositionInterval * time.Millisecond); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}
	want, got = w.Snapshot(), other.Snapshot()
	if want.Hash() != got.Hash() {
		t.Errorf("worlds diverged after load: %+v vs %+v", got, want)
	}
}

func TestLoadRestoresAfterNewGame(t *testing.T) {
	w, _ := newTestWorld(t)
	w.PickUp()
	saved, err := w.SaveBytes()
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}
	w.NewGame()
	if w.Props(0, ItemStone) != 0 {
		t.Fatal("NewGame() kept the stone")
	}
	if err := w.LoadBytes(saved); err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	if w.Props(0, ItemStone) != 1 {
		t.Error("stone not restored")
	}
	if got := w.object(0).Room; got != data.RoomNone {
		t.Errorf("stone object room = %#x, want none", got)
	}
}

func TestLoadBadSave(t *testing.T) {
	w, _ := newTestWorld(t)
	playSome(t, w)
	saved, err := w.SaveBytes()
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}

	badMagic := bytes.Clone(saved)
	copy(badMagic, "XXXX")
	badVersion := bytes.Clone(saved)
	badVersion[5] = 9
	badCallback := corruptSection(t, saved, tagEvents, func(p []byte) {
		// Callback byte of the first event slot.
		p[12] = 0x7F
	})
	badNation := corruptSection(t, saved, tagWorld, func(p []byte) { p[0] = NbNations })

	tests := []struct {
		name string
		save []byte
	}{
		{"empty", nil},
		{"bad magic", badMagic},
		{"bad version", badVersion},
		{"truncated", saved[:len(saved)-10]},
		{"header only", saved[:8]},
		{"unknown callback", badCallback},
		{"nation out of range", badNation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, _ := newTestWorld(t)
			target.Move(DirSouth, true)
			before := target.Snapshot()
			files := target.Files().Get(data.FileObjects)
			objects := bytes.Clone(files)

			err := target.LoadBytes(tt.save)
			if !errors.Is(err, ErrBadSave) {
				t.Fatalf("LoadBytes() error = %v, want ErrBadSave", err)
			}
			after := target.Snapshot()
			if before.Hash() != after.Hash() {
				t.Error("failed load changed the world")
			}
			if !bytes.Equal(objects, target.Files().Get(data.FileObjects)) {
				t.Error("failed load changed the data files")
			}
		})
	}
}

func TestLoadFileSizeMismatch(t *testing.T) {
	w, _ := newTestWorld(t)
	saved, err := w.SaveBytes()
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}

	f := newFixture()
	routes := make([]byte, 2*routesSize)
	copy(routes, f.raw[data.FileRoutes])
	f.raw[data.FileRoutes] = routes
	other := f.world(t, &recordHost{})

	if err := other.LoadBytes(saved); !errors.Is(err, ErrBadSave) {
		t.Errorf("LoadBytes() error = %v, want ErrBadSave", err)
	}
}

func TestLoadSkipsUnknownSections(t *testing.T) {
	w, _ := newTestWorld(t)
	saved, err := w.SaveBytes()
	if err != nil {
		t.Fatalf("SaveBytes() error = %v", err)
	}
	// Append a section and bump the section count.
	extended := bytes.Clone(saved)
	extended[7]++
	extended = append(extended, 'X', 'T', 'R', 'A', 0, 0, 0, 2, 0xAB, 0xCD)

	other, _ := newTestWorld(t)
	if err := other.LoadBytes(extended); err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
}

// corruptSection returns a copy of save with fn applied to the payload of
// the first section tagged tag.
func corruptSection(t *testing.T, save []byte, tag [4]byte, fn func([]byte)) []byte {
	t.Helper()
	out := bytes.Clone(save)
	off := 8
	for off+8 <= len(out) {
		length := int(out[off+4])<<24 | int(out[off+5])<<16 | int(out[off+6])<<8 | int(out[off+7])
		if [4]byte(out[off:off+4]) == tag {
			fn(out[off+8 : off+8+length])
			return out
		}
		off += 8 + length
	}
	t.Fatalf("section %s not found", tag[:])
	return nil
}
