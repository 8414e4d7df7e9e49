package data

import (
	"errors"
	"testing"
)

func TestBufferReads(t *testing.T) {
	b := Buffer{0x12, 0x34, 0x56, 0x78, 0xFF, 0xFE}

	tests := []struct {
		name     string
		got      uint32
		expected uint32
	}{
		{"byte", uint32(b.Byte(1)), 0x34},
		{"word", uint32(b.Word(0)), 0x1234},
		{"long", b.Long(0), 0x12345678},
		{"unaligned word", uint32(b.Word(3)), 0x78FF},
		{"byte past end", uint32(b.Byte(6)), 0},
		{"word straddling end", uint32(b.Word(5)), 0},
		{"long straddling end", b.Long(3), 0},
		{"huge offset", b.Long(0xFFFFFFFF), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got 0x%X, expected 0x%X", tc.got, tc.expected)
			}
		})
	}
}

func TestBufferSignedWord(t *testing.T) {
	b := Buffer{0xFF, 0xFE, 0x00, 0x08}
	if got := b.SignedWord(0); got != -2 {
		t.Errorf("SignedWord(0) = %d, expected -2", got)
	}
	if got := b.SignedWord(2); got != 8 {
		t.Errorf("SignedWord(2) = %d, expected 8", got)
	}
}

func TestBufferWrites(t *testing.T) {
	b := make(Buffer, 8)

	if err := b.SetLong(0, 0xDEADBEEF); err != nil {
		t.Fatalf("SetLong() failed: %v", err)
	}
	if err := b.SetWord(4, 0xCAFE); err != nil {
		t.Fatalf("SetWord() failed: %v", err)
	}
	if err := b.SetByte(7, 0x42); err != nil {
		t.Fatalf("SetByte() failed: %v", err)
	}

	if b.Long(0) != 0xDEADBEEF || b.Word(4) != 0xCAFE || b.Byte(7) != 0x42 {
		t.Errorf("unexpected buffer contents % X", []byte(b))
	}

	if err := b.SetLong(6, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetLong(6) error = %v, expected ErrOutOfRange", err)
	}
	if err := b.SetWord(7, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetWord(7) error = %v, expected ErrOutOfRange", err)
	}
	if err := b.SetByte(8, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetByte(8) error = %v, expected ErrOutOfRange", err)
	}
	if b.Byte(6) != 0 {
		t.Error("failed write must not modify the buffer")
	}
}

func TestBufferCString(t *testing.T) {
	b := Buffer("HELLO\x00WORLD")

	if got := b.CString(0); got != "HELLO" {
		t.Errorf("CString(0) = %q, expected HELLO", got)
	}
	if got := b.CString(6); got != "WORLD" {
		t.Errorf("CString(6) = %q, expected unterminated WORLD", got)
	}
	if got := b.CString(100); got != "" {
		t.Errorf("CString(100) = %q, expected empty", got)
	}
}

func TestBufferClone(t *testing.T) {
	b := Buffer{1, 2, 3}
	c := b.Clone()
	c[0] = 9
	if b[0] != 1 {
		t.Error("Clone() must not share memory")
	}
}
