package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors.
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

// TileColor returns the color used to draw a tile value.
func TileColor(value int) Color {
	switch value {
	case 0:
		return ColorGray
	case 2:
		return ColorWhite
	case 4:
		return ColorBrightWhite
	case 8:
		return ColorYellow
	case 16:
		return ColorOrange
	case 32:
		return ColorRed
	case 64:
		return ColorBrightRed
	case 128:
		return ColorBrightYellow
	case 256:
		return ColorGreen
	case 512:
		return ColorBrightGreen
	case 1024:
		return ColorCyan
	case 2048:
		return ColorBrightMagenta
	default:
		return ColorMagenta
	}
}
