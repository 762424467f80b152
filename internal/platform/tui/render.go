package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruitcatch/internal/core"
)

// ansi256 maps palette entries to terminal color codes.
var ansi256 = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightMagenta: "13",
	core.ColorOrange:        "208",
	core.ColorPurple:        "93",
	core.ColorPink:          "213",
	core.ColorGray:          "245",
}

// painter turns a screen buffer into styled terminal output.
// Row 0 carries the HUD and is drawn bold.
type painter struct {
	plain [len(ansi256)]lipgloss.Style
	bold  [len(ansi256)]lipgloss.Style
}

func newPainter() *painter {
	p := &painter{}
	for c, code := range ansi256 {
		style := lipgloss.NewStyle()
		if code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		p.plain[c] = style
		p.bold[c] = style.Bold(true)
	}
	return p
}

func (p *painter) style(c core.Color, hud bool) lipgloss.Style {
	if int(c) >= len(ansi256) {
		c = core.ColorDefault
	}
	if hud {
		return p.bold[c]
	}
	return p.plain[c]
}

// paint renders every row, emitting one escape sequence per run of
// same-colored cells.
func (p *painter) paint(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(color, y == 0).Render(run.String()))
		}
	}
	return sb.String()
}

var screenPainter = newPainter()

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return screenPainter.paint(s)
}
