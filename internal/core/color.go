package core

// Color is a foreground color for a screen cell.
type Color uint8

// Palette used by lessons. Each color has a fixed meaning in the renderer.
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
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Cell is a single styled character.
type Cell struct {
	Rune  rune
	Color Color
}
