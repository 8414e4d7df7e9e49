package core

// Color represents a foreground color for a screen cell.
// Hosts map it to ANSI 256-color codes.
type Color uint8

// Colors used by the room view.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ANSI returns the ANSI 256-color code of c, or -1 for the terminal default.
func (c Color) ANSI() int {
	switch c {
	case ColorDefault:
		return -1
	case ColorOrange:
		return 208
	case ColorGray:
		return 244
	}
	// Standard and bright colors share the 16-color layout.
	if c >= ColorBrightRed {
		return int(c-ColorBrightRed) + 9
	}
	return int(c)
}

// Palette is the lighting selected by the scripted events.
type Palette int

const (
	PaletteDay Palette = iota
	PaletteEvening
	PaletteNight
)

// Under returns c as seen under palette p. Evening dulls the bright
// colors, night leaves only the lights readable.
func (c Color) Under(p Palette) Color {
	switch p {
	case PaletteEvening:
		if c >= ColorBrightRed && c <= ColorBrightWhite {
			return c - (ColorBrightRed - ColorRed)
		}
	case PaletteNight:
		switch c {
		case ColorDefault, ColorBrightYellow, ColorBrightWhite, ColorOrange:
			return c
		case ColorBrightRed, ColorRed:
			return ColorRed
		}
		return ColorBlue
	}
	return c
}
