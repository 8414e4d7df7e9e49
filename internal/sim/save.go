package sim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vovakirdan/tui-escape/internal/data"
)

// Save format: a header followed by tagged sections. Every section holds
// fixed-size big-endian records, so a section's length is known in advance
// and checked on load.
const (
	saveMagic   = "CESC"
	saveVersion = 2
)

var (
	tagGuybrushes = [4]byte{'G', 'U', 'Y', 'S'}
	tagPEvents    = [4]byte{'P', 'E', 'V', 'T'}
	tagProps      = [4]byte{'P', 'R', 'O', 'P'}
	tagFile       = [4]byte{'F', 'I', 'L', 'E'}
	tagEvents     = [4]byte{'E', 'V', 'N', 'T'}
	tagOverlays   = [4]byte{'A', 'N', 'I', 'M'}
	tagWorld      = [4]byte{'W', 'R', 'L', 'D'}
)

type saveHeader struct {
	Magic    [4]byte
	Version  uint16
	Sections uint16
}

type sectionHeader struct {
	Tag    [4]byte
	Length uint32
}

type section struct {
	tag     [4]byte
	payload []byte
}

// Largest section accepted on load.
const maxSectionLength = 1 << 24

type propsRecord struct {
	Props    [NbNations][NbProps]uint8
	Selected [NbNations]uint8
}

// worldRecord holds the scalar world state.
type worldRecord struct {
	Current        uint8
	KeyEligible    bool
	Now            uint64
	AniAcc         uint64
	RepoAcc        uint64
	NextMinute     uint64
	RNG            uint64
	Hours          uint16
	Minutes        uint16
	TimedCursor    uint16
	AuthorizedSet  uint8
	Palette        uint8
	RemainingToWin uint8
	GameOver       bool
	GameWon        bool
	Finished       bool
	RemBitmask     [NbNations]uint32
}

// savedState is everything a save holds, decoded before being applied.
type savedState struct {
	guys     [NbGuybrushes]Guybrush
	pevents  [NbNations]PrisonerEvent
	props    propsRecord
	files    [data.NbFiles][]byte
	events   [NbEvents]Event
	overlays [MaxCurrentlyAnimated]Overlay
	world    worldRecord
}

// Save writes the complete world state.
func (w *World) Save(out io.Writer) error {
	var sections []section
	add := func(tag [4]byte, v any) error {
		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			return fmt.Errorf("sim: encode %s: %w", tag[:], err)
		}
		sections = append(sections, section{tag: tag, payload: buf.Bytes()})
		return nil
	}

	if err := add(tagGuybrushes, &w.guys); err != nil {
		return err
	}
	if err := add(tagPEvents, &w.pevents); err != nil {
		return err
	}
	if err := add(tagProps, &propsRecord{Props: w.props, Selected: w.selected}); err != nil {
		return err
	}
	for id := data.FileID(0); id < data.NbFiles; id++ {
		b := w.files.Get(id)
		payload := make([]byte, 1, 1+len(b))
		payload[0] = uint8(id) //#nosec G115 -- id < NbFiles
		payload = append(payload, b...)
		sections = append(sections, section{tag: tagFile, payload: payload})
	}
	if err := add(tagEvents, &w.events); err != nil {
		return err
	}
	if err := add(tagOverlays, &w.anims); err != nil {
		return err
	}
	if err := add(tagWorld, w.worldRecord()); err != nil {
		return err
	}

	hdr := saveHeader{Version: saveVersion, Sections: uint16(len(sections))} //#nosec G115 -- a dozen sections
	copy(hdr.Magic[:], saveMagic)
	if err := binary.Write(out, binary.BigEndian, &hdr); err != nil {
		return fmt.Errorf("sim: write save header: %w", err)
	}
	for _, s := range sections {
		sh := sectionHeader{Tag: s.tag, Length: uint32(len(s.payload))} //#nosec G115 -- data files are small
		if err := binary.Write(out, binary.BigEndian, &sh); err != nil {
			return fmt.Errorf("sim: write section %s: %w", s.tag[:], err)
		}
		if _, err := out.Write(s.payload); err != nil {
			return fmt.Errorf("sim: write section %s: %w", s.tag[:], err)
		}
	}
	return nil
}

// SaveBytes returns the saved world state.
func (w *World) SaveBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *World) worldRecord() *worldRecord {
	return &worldRecord{
		Current:        uint8(w.current), //#nosec G115 -- current < NbNations
		KeyEligible:    w.keyEligible,
		Now:            w.now,
		AniAcc:         w.aniAcc,
		RepoAcc:        w.repoAcc,
		NextMinute:     w.nextMinute,
		RNG:            w.rng.State(),
		Hours:          w.hours,
		Minutes:        w.minutes,
		TimedCursor:    w.timedCursor,
		AuthorizedSet:  w.authorizedSet,
		Palette:        w.palette,
		RemainingToWin: w.remainingToWin,
		GameOver:       w.gameOver,
		GameWon:        w.gameWon,
		Finished:       w.finished,
		RemBitmask:     w.remBitmask,
	}
}

// Load restores a state written by Save. Nothing is modified unless the
// whole save decodes and matches the loaded data files.
func (w *World) Load(in io.Reader) error {
	st, err := w.decodeSave(in)
	if err != nil {
		return err
	}

	for id := data.FileID(0); id < data.NbFiles; id++ {
		if err := w.files.Restore(id, st.files[id]); err != nil {
			return fmt.Errorf("%w: %w", ErrBadSave, err)
		}
	}
	w.guys = st.guys
	w.pevents = st.pevents
	w.props = st.props.Props
	w.selected = st.props.Selected
	w.events = st.events
	w.anims = st.overlays

	r := &st.world
	w.current = int(r.Current)
	w.now = r.Now
	w.aniAcc = r.AniAcc
	w.repoAcc = r.RepoAcc
	w.nextMinute = r.NextMinute
	w.rng.SetState(r.RNG)
	w.hours = r.Hours
	w.minutes = r.Minutes
	w.timedCursor = r.TimedCursor
	w.authorizedSet = r.AuthorizedSet
	w.palette = r.Palette
	w.remainingToWin = r.RemainingToWin
	w.gameOver = r.GameOver
	w.gameWon = r.GameWon
	w.finished = r.Finished
	w.remBitmask = r.RemBitmask

	w.view = w.viewFor(w.guys[w.current].Room)
	w.keyEligible = r.KeyEligible
	w.roomPropsValid = false
	w.exit.valid = false
	w.log.Debug("game loaded", "nation", w.current, "room", w.view.room, "time", w.now)
	return nil
}

// LoadBytes restores a state returned by SaveBytes.
func (w *World) LoadBytes(b []byte) error {
	return w.Load(bytes.NewReader(b))
}

func (w *World) decodeSave(in io.Reader) (*savedState, error) {
	var hdr saveHeader
	if err := binary.Read(in, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrBadSave, err)
	}
	if string(hdr.Magic[:]) != saveMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadSave, hdr.Magic[:])
	}
	if hdr.Version != saveVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSave, hdr.Version)
	}

	st := &savedState{}
	seen := map[[4]byte]int{}
	for range hdr.Sections {
		var sh sectionHeader
		if err := binary.Read(in, binary.BigEndian, &sh); err != nil {
			return nil, fmt.Errorf("%w: section header: %w", ErrBadSave, err)
		}
		if sh.Length > maxSectionLength {
			return nil, fmt.Errorf("%w: section %s is %d bytes", ErrBadSave, sh.Tag[:], sh.Length)
		}
		payload := make([]byte, sh.Length)
		if _, err := io.ReadFull(in, payload); err != nil {
			return nil, fmt.Errorf("%w: section %s: %w", ErrBadSave, sh.Tag[:], err)
		}
		seen[sh.Tag]++

		var err error
		switch sh.Tag {
		case tagGuybrushes:
			err = decodeFixed(payload, &st.guys)
		case tagPEvents:
			err = decodeFixed(payload, &st.pevents)
		case tagProps:
			err = decodeFixed(payload, &st.props)
		case tagEvents:
			err = decodeFixed(payload, &st.events)
		case tagOverlays:
			err = decodeFixed(payload, &st.overlays)
		case tagWorld:
			err = decodeFixed(payload, &st.world)
		case tagFile:
			err = w.decodeFile(payload, st)
		default:
			// Unknown sections are skipped.
		}
		if err != nil {
			return nil, fmt.Errorf("%w: section %s: %w", ErrBadSave, sh.Tag[:], err)
		}
	}

	for _, tag := range [][4]byte{tagGuybrushes, tagPEvents, tagProps, tagEvents, tagOverlays, tagWorld} {
		if seen[tag] != 1 {
			return nil, fmt.Errorf("%w: section %s found %d times", ErrBadSave, tag[:], seen[tag])
		}
	}
	for id := data.FileID(0); id < data.NbFiles; id++ {
		if st.files[id] == nil {
			return nil, fmt.Errorf("%w: missing file %s", ErrBadSave, id)
		}
	}
	if err := st.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSave, err)
	}
	return st, nil
}

func (w *World) decodeFile(payload []byte, st *savedState) error {
	if len(payload) < 1 {
		return io.ErrUnexpectedEOF
	}
	id := data.FileID(payload[0])
	if id >= data.NbFiles {
		return fmt.Errorf("unknown file id %d", payload[0])
	}
	if want := len(w.files.Get(id)); len(payload)-1 != want {
		return fmt.Errorf("%s is %d bytes, want %d", id, len(payload)-1, want)
	}
	st.files[id] = payload[1:]
	return nil
}

func decodeFixed(payload []byte, v any) error {
	if size := binary.Size(v); size != len(payload) {
		return fmt.Errorf("length %d, want %d", len(payload), size)
	}
	return binary.Read(bytes.NewReader(payload), binary.BigEndian, v)
}

// validate rejects values the simulation could not run with.
func (st *savedState) validate() error {
	if int(st.world.Current) >= NbNations {
		return fmt.Errorf("active nation %d out of range", st.world.Current)
	}
	if st.world.AuthorizedSet >= data.NbAuthorizedSets {
		return fmt.Errorf("authorized set %d out of range", st.world.AuthorizedSet)
	}
	for i := range st.events {
		if st.events[i].Callback >= nbCallbacks {
			return fmt.Errorf("event %d has unknown callback %d", i, st.events[i].Callback)
		}
	}
	for i := range st.guys {
		if st.guys[i].Animation.End >= nbCallbacks {
			return fmt.Errorf("guybrush %d has unknown callback %d", i, st.guys[i].Animation.End)
		}
	}
	for i := range st.overlays {
		if st.overlays[i].Animation.End >= nbCallbacks {
			return fmt.Errorf("overlay %d has unknown callback %d", i, st.overlays[i].Animation.End)
		}
	}
	return nil
}
