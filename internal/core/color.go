package core

// Color is a logical foreground color for a screen cell. Front ends map
// it to a concrete terminal style.
type Color uint8

// The first fifteen colors follow the ANSI order.
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

// brightOffset is the distance from a base ANSI color to its bright variant.
const brightOffset = ColorBrightRed - ColorRed

// Bright returns the bright variant of a base ANSI color. Colors without
// one are returned unchanged.
func (c Color) Bright() Color {
	if c >= ColorRed && c <= ColorWhite {
		return c + brightOffset
	}
	return c
}
