package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileID identifies one of the original data files.
type FileID int

const (
	FileRooms FileID = iota
	FileLoader
	FileCompressedMap
	FileObjects
	FileTunnelIO
	FileGuards
	FileRoutes
	NbFiles
)

var fileNames = [NbFiles]string{
	FileRooms:         "COLDITZ_ROOM_MAPS",
	FileLoader:        "COLDITZ-LOADER",
	FileCompressedMap: "COMPRESSED_MAP",
	FileObjects:       "OBS.BIN",
	FileTunnelIO:      "TUNNELIO.BIN",
	FileGuards:        "MENDAT.BIN",
	FileRoutes:        "ROUTES.BIN",
}

// Smallest size a file can have and still contain every fixed table.
var minSizes = [NbFiles]int{
	FileRooms:         RoomsStart,
	FileLoader:        LoaderDataPool,
	FileCompressedMap: CmpTilesStart,
	FileObjects:       ObjectsStart,
	FileTunnelIO:      TunnelIOStart,
	FileGuards:        NbGuards * GuardRecordSize,
	FileRoutes:        2,
}

var (
	// ErrMissingFile is returned when a data file cannot be read.
	ErrMissingFile = errors.New("data: missing data file")
	// ErrShortFile is returned when a data file is too small for its tables.
	ErrShortFile = errors.New("data: data file too short")
)

// String returns the on-disk name of the file.
func (id FileID) String() string {
	if id < 0 || id >= NbFiles {
		return fmt.Sprintf("FileID(%d)", int(id))
	}
	return fileNames[id]
}

// ParseFileID maps an on-disk file name back to its ID.
func ParseFileID(name string) (FileID, bool) {
	for id, n := range fileNames {
		if n == name {
			return FileID(id), true
		}
	}
	return 0, false
}

// Files holds the mutable working copies of all data files, plus the
// pristine copies used to reload them wholesale on a new game.
type Files struct {
	bufs     [NbFiles]Buffer
	pristine [NbFiles]Buffer
}

// Load reads every data file from dir and applies the embedded data fixes.
// Any missing or truncated file is an error: there is no partial-load mode.
func Load(dir string) (*Files, error) {
	patches, err := DefaultPatches()
	if err != nil {
		return nil, err
	}
	return LoadWithPatches(dir, patches)
}

// LoadWithPatches reads every data file from dir and applies patches before
// taking the pristine copy, so NewGame keeps them.
func LoadWithPatches(dir string, patches []Patch) (*Files, error) {
	var raw [NbFiles][]byte
	for id := FileID(0); id < NbFiles; id++ {
		path := filepath.Join(dir, fileNames[id])
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, path, err)
		}
		raw[id] = b
	}

	f, err := FromBuffers(raw)
	if err != nil {
		return nil, err
	}
	if err := f.ApplyPatches(patches); err != nil {
		return nil, err
	}
	f.Commit()
	return f, nil
}

// FromBuffers wraps already loaded file contents. No patches are applied.
func FromBuffers(raw [NbFiles][]byte) (*Files, error) {
	f := &Files{}
	for id := FileID(0); id < NbFiles; id++ {
		if len(raw[id]) < minSizes[id] {
			return nil, fmt.Errorf("%w: %s is %d bytes, need at least %d",
				ErrShortFile, fileNames[id], len(raw[id]), minSizes[id])
		}
		f.pristine[id] = Buffer(raw[id]).Clone()
		f.bufs[id] = Buffer(raw[id]).Clone()
	}
	return f, nil
}

// Get returns the working copy of a file.
func (f *Files) Get(id FileID) Buffer {
	return f.bufs[id]
}

// Rooms returns the working copy of COLDITZ_ROOM_MAPS.
func (f *Files) Rooms() Buffer { return f.bufs[FileRooms] }

// Loader returns the working copy of COLDITZ-LOADER.
func (f *Files) Loader() Buffer { return f.bufs[FileLoader] }

// CompressedMap returns the working copy of COMPRESSED_MAP.
func (f *Files) CompressedMap() Buffer { return f.bufs[FileCompressedMap] }

// Objects returns the working copy of OBS.BIN.
func (f *Files) Objects() Buffer { return f.bufs[FileObjects] }

// TunnelIO returns the working copy of TUNNELIO.BIN.
func (f *Files) TunnelIO() Buffer { return f.bufs[FileTunnelIO] }

// Guards returns the working copy of MENDAT.BIN.
func (f *Files) Guards() Buffer { return f.bufs[FileGuards] }

// Routes returns the working copy of ROUTES.BIN.
func (f *Files) Routes() Buffer { return f.bufs[FileRoutes] }

// Reset restores every working copy from the pristine copies.
func (f *Files) Reset() {
	for id := FileID(0); id < NbFiles; id++ {
		copy(f.bufs[id], f.pristine[id])
	}
}

// Commit makes the current working copies the new pristine state.
func (f *Files) Commit() {
	for id := FileID(0); id < NbFiles; id++ {
		copy(f.pristine[id], f.bufs[id])
	}
}

// Clone returns an independent copy with the same pristine and working
// contents. Every world needs its own copy.
func (f *Files) Clone() *Files {
	c := &Files{}
	for id := FileID(0); id < NbFiles; id++ {
		c.pristine[id] = f.pristine[id].Clone()
		c.bufs[id] = f.bufs[id].Clone()
	}
	return c
}

// Restore overwrites the working copy of a file. The size must match.
func (f *Files) Restore(id FileID, b []byte) error {
	if id < 0 || id >= NbFiles {
		return fmt.Errorf("data: unknown file id %d", int(id))
	}
	if len(b) != len(f.bufs[id]) {
		return fmt.Errorf("data: %s size mismatch: got %d, want %d",
			fileNames[id], len(b), len(f.bufs[id]))
	}
	copy(f.bufs[id], b)
	return nil
}
