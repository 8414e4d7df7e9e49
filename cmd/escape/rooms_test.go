package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-escape/internal/data"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

func TestParseRoom(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0", 0, false},
		{"12", 12, false},
		{"0x3F", 0x3F, false},
		{"out", data.RoomOutside, false},
		{"outside", data.RoomOutside, false},
		{"-1", 0, true},
		{"hall", 0, true},
		{"0x10000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRoom(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRoom(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseRoom(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoomName(t *testing.T) {
	tests := map[uint16]string{
		0:                "0x00",
		0x3F:             "0x3F",
		data.RoomOutside: "out",
		data.RoomNone:    "-",
	}
	for room, want := range tests {
		if got := roomName(room); got != want {
			t.Errorf("roomName(%d) = %q, want %q", room, got, want)
		}
	}
}

func TestPrintRoom(t *testing.T) {
	var buf bytes.Buffer
	printRoom(&buf, sim.RoomInfo{
		Room: 1, Defined: true, Width: 4, Height: 3, DescID: 1,
		Exits: []sim.ExitInfo{{Index: 0, TileX: 1, TileY: 2, Open: true, Target: 0}},
	})
	printRoom(&buf, sim.RoomInfo{Room: 0x100})
	out := buf.String()
	for _, want := range []string{
		"Room 0x01: 4x3 tiles, description 0x01, 1 exits",
		"exit 0 at (1,2): open, grade 0, target 0x0000",
		"Room 0x100: no data",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGameTime(t *testing.T) {
	tests := []struct {
		ms   uint64
		want string
	}{
		{0, "-"},
		{1499, "1s"},
		{90_000, "1m30s"},
		{3_600_000, "1h0m0s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := gameTime(tt.ms); got != tt.want {
				t.Errorf("gameTime(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestPrisonerStatus(t *testing.T) {
	tests := []struct {
		name string
		p    sim.Guybrush
		ev   sim.PrisonerEvent
		want string
	}{
		{"escaped", sim.Guybrush{}, sim.PrisonerEvent{Escaped: true}, "escaped"},
		{"killed", sim.Guybrush{}, sim.PrisonerEvent{Killed: true}, "killed"},
		{"solitary", sim.Guybrush{State: sim.StateInPrison}, sim.PrisonerEvent{}, "in solitary"},
		{"asleep", sim.Guybrush{State: sim.StateSleeping}, sim.PrisonerEvent{}, "asleep"},
		{"uniform", sim.Guybrush{DressedAsGuard: true}, sim.PrisonerEvent{}, "in uniform"},
		{"in play", sim.Guybrush{}, sim.PrisonerEvent{}, "in play"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prisonerStatus(&tt.p, &tt.ev); got != tt.want {
				t.Errorf("prisonerStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
