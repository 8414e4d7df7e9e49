package data

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed patches.yaml
var defaultPatchesYAML []byte

// Patch overwrites a value in one of the data files. Patches correct bugs
// in the original tables and must be applied byte for byte.
type Patch struct {
	File   string `yaml:"file"`
	Offset uint32 `yaml:"offset"`
	Size   int    `yaml:"size"` // 1, 2 or 4 bytes
	Value  uint32 `yaml:"value"`
	Note   string `yaml:"note,omitempty"`
}

type patchList struct {
	Patches []Patch `yaml:"patches"`
}

// ParsePatches decodes a YAML patch list.
func ParsePatches(raw []byte) ([]Patch, error) {
	var pl patchList
	if err := yaml.Unmarshal(raw, &pl); err != nil {
		return nil, fmt.Errorf("data: cannot parse patches: %w", err)
	}
	for i, p := range pl.Patches {
		if _, ok := ParseFileID(p.File); !ok {
			return nil, fmt.Errorf("data: patch %d: unknown file %q", i, p.File)
		}
		switch p.Size {
		case 1, 2, 4:
		default:
			return nil, fmt.Errorf("data: patch %d: invalid size %d", i, p.Size)
		}
	}
	return pl.Patches, nil
}

// DefaultPatches returns the embedded data fixes.
func DefaultPatches() ([]Patch, error) {
	return ParsePatches(defaultPatchesYAML)
}

// ApplyPatches writes every patch into the working copies.
func (f *Files) ApplyPatches(patches []Patch) error {
	for i, p := range patches {
		id, ok := ParseFileID(p.File)
		if !ok {
			return fmt.Errorf("data: patch %d: unknown file %q", i, p.File)
		}
		buf := f.bufs[id]
		var err error
		switch p.Size {
		case 1:
			err = buf.SetByte(p.Offset, uint8(p.Value)) //#nosec G115 -- size checked
		case 2:
			err = buf.SetWord(p.Offset, uint16(p.Value)) //#nosec G115 -- size checked
		case 4:
			err = buf.SetLong(p.Offset, p.Value)
		default:
			err = fmt.Errorf("invalid size %d", p.Size)
		}
		if err != nil {
			return fmt.Errorf("data: patch %d (%s+0x%X): %w", i, p.File, p.Offset, err)
		}
	}
	return nil
}
