package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Palette used by the HUD and by fruit kinds.
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
	ColorBrightMagenta
	ColorOrange
	ColorPurple
	ColorPink
	ColorGray
)
