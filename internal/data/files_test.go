package data

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func minimalRaw() [NbFiles][]byte {
	var raw [NbFiles][]byte
	for id := FileID(0); id < NbFiles; id++ {
		raw[id] = make([]byte, minSizes[id])
	}
	return raw
}

func TestFileIDNames(t *testing.T) {
	for id := FileID(0); id < NbFiles; id++ {
		got, ok := ParseFileID(id.String())
		if !ok || got != id {
			t.Errorf("ParseFileID(%q) = %v, %v", id.String(), got, ok)
		}
	}
	if _, ok := ParseFileID("NOPE.BIN"); ok {
		t.Error("ParseFileID() accepted an unknown name")
	}
	if got := FileID(42).String(); got != "FileID(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestFromBuffersRejectsShortFiles(t *testing.T) {
	raw := minimalRaw()
	raw[FileGuards] = raw[FileGuards][:10]

	_, err := FromBuffers(raw)
	if !errors.Is(err, ErrShortFile) {
		t.Fatalf("FromBuffers() error = %v, expected ErrShortFile", err)
	}
}

func TestFilesResetAndCommit(t *testing.T) {
	f, err := FromBuffers(minimalRaw())
	if err != nil {
		t.Fatalf("FromBuffers() failed: %v", err)
	}

	_ = f.Routes().SetWord(0, 0x1234)
	f.Reset()
	if got := f.Routes().Word(0); got != 0 {
		t.Errorf("after Reset() word = 0x%X, expected 0", got)
	}

	_ = f.Routes().SetWord(0, 0x1234)
	f.Commit()
	_ = f.Routes().SetWord(0, 0x5678)
	f.Reset()
	if got := f.Routes().Word(0); got != 0x1234 {
		t.Errorf("after Commit() and Reset() word = 0x%X, expected 0x1234", got)
	}
}

func TestFromBuffersCopies(t *testing.T) {
	raw := minimalRaw()
	f, err := FromBuffers(raw)
	if err != nil {
		t.Fatalf("FromBuffers() failed: %v", err)
	}
	raw[FileObjects][0] = 0xAA
	if f.Objects().Byte(0) != 0 {
		t.Error("FromBuffers() must copy its input")
	}
}

func TestFilesClone(t *testing.T) {
	f, err := FromBuffers(minimalRaw())
	if err != nil {
		t.Fatalf("FromBuffers() failed: %v", err)
	}
	_ = f.Objects().SetByte(0, 0x11)

	c := f.Clone()
	_ = c.Objects().SetByte(0, 0x22)
	if got := f.Objects().Byte(0); got != 0x11 {
		t.Errorf("original byte = 0x%X after editing the clone, expected 0x11", got)
	}
	c.Reset()
	if got := c.Objects().Byte(0); got != 0 {
		t.Errorf("clone byte after Reset() = 0x%X, expected the pristine 0", got)
	}
}

func TestFilesRestore(t *testing.T) {
	f, err := FromBuffers(minimalRaw())
	if err != nil {
		t.Fatalf("FromBuffers() failed: %v", err)
	}

	if err := f.Restore(FileObjects, []byte{1, 2}); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if f.Objects().Word(0) != 0x0102 {
		t.Errorf("Restore() did not copy the data")
	}
	if err := f.Restore(FileObjects, []byte{1, 2, 3}); err == nil {
		t.Error("Restore() accepted a size mismatch")
	}
	if err := f.Restore(NbFiles, nil); err == nil {
		t.Error("Restore() accepted an unknown file")
	}
}

func writeFiles(t *testing.T, raw [NbFiles][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for id := FileID(0); id < NbFiles; id++ {
		if err := os.WriteFile(filepath.Join(dir, id.String()), raw[id], 0o600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	raw := minimalRaw()
	raw[FileGuards][3] = 0x42
	f, err := Load(writeFiles(t, raw))
	if err != nil {
		t.Fatalf("Load() of minimum-size files failed: %v", err)
	}
	for id := FileID(0); id < NbFiles; id++ {
		if !bytes.Equal(f.Get(id), raw[id]) {
			t.Errorf("%s changed by Load()", id)
		}
	}
}

func TestLoadWithPatches(t *testing.T) {
	const guard = 0x25
	direction := uint32(guard*GuardRecordSize + GuardDirection)
	raw := minimalRaw()

	f, err := LoadWithPatches(writeFiles(t, raw), []Patch{
		{File: "MENDAT.BIN", Offset: direction, Size: 2, Value: 1, Note: "guard 0x25 direction"},
	})
	if err != nil {
		t.Fatalf("LoadWithPatches() failed: %v", err)
	}
	g := f.Guards()
	if got := g.Word(direction); got != 1 {
		t.Errorf("guard direction = %d, expected 1", got)
	}
	if got := g.Word(guard*GuardRecordSize + GuardPX); got != 0 {
		t.Errorf("guard px = %d, expected 0", got)
	}
	// Patches are part of the pristine state.
	if err := g.SetWord(direction, 5); err != nil {
		t.Fatalf("SetWord() failed: %v", err)
	}
	f.Reset()
	if got := f.Guards().Word(direction); got != 1 {
		t.Errorf("guard direction after Reset() = %d, expected 1", got)
	}

	_, err = LoadWithPatches(writeFiles(t, minimalRaw()), []Patch{
		{File: "ROUTES.BIN", Offset: uint32(minSizes[FileRoutes]), Size: 2, Value: 4},
	})
	if err == nil {
		t.Error("LoadWithPatches() accepted a patch past the end of the file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("Load() error = %v, expected ErrMissingFile", err)
	}
}
