package data

import "testing"

// TestDefaultPatchesFitMinimumFiles checks that every embedded fix lies
// inside the smallest file Load accepts, so fixes never make loading
// stricter.
func TestDefaultPatchesFitMinimumFiles(t *testing.T) {
	patches, err := DefaultPatches()
	if err != nil {
		t.Fatalf("DefaultPatches() failed: %v", err)
	}
	for i, p := range patches {
		id, _ := ParseFileID(p.File)
		if end := int(p.Offset) + p.Size; end > minSizes[id] {
			t.Errorf("patch %d (%s+0x%X) ends at 0x%X, past the minimum size 0x%X",
				i, p.File, p.Offset, end, minSizes[id])
		}
		if p.Note == "" {
			t.Errorf("patch %d has no note", i)
		}
	}

	f, err := FromBuffers(minimalRaw())
	if err != nil {
		t.Fatalf("FromBuffers() failed: %v", err)
	}
	if err := f.ApplyPatches(patches); err != nil {
		t.Errorf("ApplyPatches() on minimum-size files failed: %v", err)
	}
}

func TestParsePatchesErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown file", "patches:\n  - {file: FOO, offset: 0, size: 1, value: 0}\n"},
		{"bad size", "patches:\n  - {file: OBS.BIN, offset: 0, size: 3, value: 0}\n"},
		{"bad yaml", "patches: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePatches([]byte(tc.yaml)); err == nil {
				t.Error("ParsePatches() succeeded, expected an error")
			}
		})
	}
}

func TestApplyPatches(t *testing.T) {
	f, err := FromBuffers(minimalRaw())
	if err != nil {
		t.Fatalf("FromBuffers() failed: %v", err)
	}

	patches := []Patch{
		{File: "OBS.BIN", Offset: 0, Size: 2, Value: 0xBEEF},
		{File: "COLDITZ-LOADER", Offset: 0x10, Size: 4, Value: 0x01020304},
		{File: "COLDITZ-LOADER", Offset: 0x20, Size: 1, Value: 0x7F},
	}
	if err := f.ApplyPatches(patches); err != nil {
		t.Fatalf("ApplyPatches() failed: %v", err)
	}
	if f.Objects().Word(0) != 0xBEEF {
		t.Errorf("word patch not applied")
	}
	if f.Loader().Long(0x10) != 0x01020304 {
		t.Errorf("long patch not applied")
	}
	if f.Loader().Byte(0x20) != 0x7F {
		t.Errorf("byte patch not applied")
	}

	err = f.ApplyPatches([]Patch{{File: "OBS.BIN", Offset: 0x100, Size: 2, Value: 1}})
	if err == nil {
		t.Error("ApplyPatches() accepted an out-of-range patch")
	}
}
