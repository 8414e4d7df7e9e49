// Package data provides typed big-endian access to the original game's
// binary data files. The simulation never parses these files into
// structures: it reads and writes them in place through offsets declared
// in layout.go, so that the mutable copies stay byte-compatible with the
// originals and can be saved verbatim.
package data

import (
	"encoding/binary"
	"errors"
)

// ErrOutOfRange is returned when an access falls outside of a buffer.
var ErrOutOfRange = errors.New("data: offset out of range")

// Buffer is a raw, mutable copy of one data file.
type Buffer []byte

// Len returns the buffer length as an offset type.
func (b Buffer) Len() uint32 {
	return uint32(len(b)) //#nosec G115 -- data files are far below 4 GiB
}

// InRange reports whether n bytes starting at off are addressable.
func (b Buffer) InRange(off, n uint32) bool {
	end := uint64(off) + uint64(n)
	return end <= uint64(len(b))
}

// Byte reads the byte at off. Out-of-range reads return 0.
func (b Buffer) Byte(off uint32) uint8 {
	if !b.InRange(off, 1) {
		return 0
	}
	return b[off]
}

// Word reads the big-endian 16-bit word at off. Out-of-range reads return 0.
func (b Buffer) Word(off uint32) uint16 {
	if !b.InRange(off, 2) {
		return 0
	}
	return binary.BigEndian.Uint16(b[off:])
}

// SignedWord reads the word at off as a two's complement value.
func (b Buffer) SignedWord(off uint32) int16 {
	return int16(b.Word(off)) //#nosec G115 -- reinterpretation is intended
}

// Long reads the big-endian 32-bit long at off. Out-of-range reads return 0.
func (b Buffer) Long(off uint32) uint32 {
	if !b.InRange(off, 4) {
		return 0
	}
	return binary.BigEndian.Uint32(b[off:])
}

// SetByte writes a byte at off.
func (b Buffer) SetByte(off uint32, v uint8) error {
	if !b.InRange(off, 1) {
		return ErrOutOfRange
	}
	b[off] = v
	return nil
}

// SetWord writes a big-endian word at off.
func (b Buffer) SetWord(off uint32, v uint16) error {
	if !b.InRange(off, 2) {
		return ErrOutOfRange
	}
	binary.BigEndian.PutUint16(b[off:], v)
	return nil
}

// SetLong writes a big-endian long at off.
func (b Buffer) SetLong(off uint32, v uint32) error {
	if !b.InRange(off, 4) {
		return ErrOutOfRange
	}
	binary.BigEndian.PutUint32(b[off:], v)
	return nil
}

// CString reads a NUL-terminated ASCII string starting at off.
// The string is cut at the end of the buffer if no terminator is found.
func (b Buffer) CString(off uint32) string {
	if !b.InRange(off, 1) {
		return ""
	}
	end := off
	for end < b.Len() && b[end] != 0 {
		end++
	}
	return string(b[off:end])
}

// Clone returns an independent copy of the buffer.
func (b Buffer) Clone() Buffer {
	c := make(Buffer, len(b))
	copy(c, b)
	return c
}
