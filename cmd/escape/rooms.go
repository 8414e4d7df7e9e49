package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-escape/internal/data"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

var flagRoomsAll bool

var roomsCmd = &cobra.Command{
	Use:   "rooms [room...]",
	Short: "Inspect rooms from the data files",
	Long: `Print the size, description id and exits of rooms, as read from the
data files after the embedded fixes are applied.

Rooms are numbered as in the data files; "out" is the outside map.
Numbers may be decimal or 0x-prefixed hex.

Examples:
  escape rooms 0 1 2
  escape rooms 0x3F out
  escape rooms --all`,
	RunE: runRooms,
}

func init() {
	roomsCmd.Flags().BoolVar(&flagRoomsAll, "all", false, "List every defined room")
}

func runRooms(cmd *cobra.Command, args []string) error {
	cfg, logger, files, err := setup()
	if err != nil {
		return err
	}
	w := newWorld(cfg, logger, files, sim.NopHost{})
	out := cmd.OutOrStdout()

	if flagRoomsAll {
		printRoom(out, w.InspectRoom(data.RoomOutside))
		for r := range uint16(data.NbRooms) {
			if info := w.InspectRoom(r); info.Defined {
				printRoom(out, info)
			}
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("name at least one room, or use --all")
	}
	for _, arg := range args {
		room, err := parseRoom(arg)
		if err != nil {
			return err
		}
		printRoom(out, w.InspectRoom(room))
	}
	return nil
}

// parseRoom accepts "out", decimal and 0x-prefixed room numbers.
func parseRoom(s string) (uint16, error) {
	if s == "out" || s == "outside" {
		return data.RoomOutside, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid room %q: %w", s, err)
	}
	return uint16(v), nil
}

func roomName(room uint16) string {
	switch room {
	case data.RoomOutside:
		return "out"
	case data.RoomNone:
		return "-"
	}
	return fmt.Sprintf("0x%02X", room)
}

func printRoom(out io.Writer, info sim.RoomInfo) {
	if !info.Defined {
		fmt.Fprintf(out, "Room %s: no data\n", roomName(info.Room))
		return
	}
	fmt.Fprintf(out, "Room %s: %dx%d tiles, description 0x%02X, %d exits\n",
		roomName(info.Room), info.Width, info.Height, info.DescID, len(info.Exits))
	for _, e := range info.Exits {
		state := "closed"
		if e.Open {
			state = "open"
		}
		fmt.Fprintf(out, "  exit %d at (%d,%d): %s, grade %d, target 0x%04X\n",
			e.Index, e.TileX, e.TileY, state, e.Grade, e.Target)
	}
}
