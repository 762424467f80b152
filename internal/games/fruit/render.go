package fruit

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/fruitcatch/internal/core"
)

// Terminal cells are roughly twice as tall as they are wide, so one cell
// covers CellW x CellH viewport units.
const (
	CellW = 10.0
	CellH = 20.0
)

// Visual characters for rendering
const (
	HeartChar  = '♥'
	EmptyHeart = '♡'
	GroundChar = '─'
)

// ViewportForScreen returns the viewport covered by a w x h cell area.
func ViewportForScreen(w, h int) core.Viewport {
	return core.Viewport{W: float64(w) * CellW, H: float64(h) * CellH}
}

// TapForCell returns the tap at the center of cell (x, y).
func TapForCell(x, y int) core.Tap {
	return core.Tap{X: (float64(x) + 0.5) * CellW, Y: (float64(y) + 0.5) * CellH}
}

// Render draws a snapshot into the screen buffer.
// The screen is cleared first.
func Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()

	if snap.Phase == PhaseMenu {
		drawMenu(dst, snap)
		return
	}

	// Miss line
	missY := dst.Height() - 1
	dst.DrawHLine(0, missY, dst.Width(), GroundChar)

	for _, e := range snap.Entities {
		drawEntity(dst, e)
	}

	drawHUD(dst, snap)

	switch snap.Phase {
	case PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Reached %s", snap.Score, snap.Tier.Name),
			"R: restart  |  M: menu  |  Q: quit")
	case PhaseVictory:
		drawCenteredMessage(dst, "VICTORY!",
			fmt.Sprintf("All %d levels cleared with %d points", snap.TierCount, snap.Score),
			"R: play again  |  M: menu  |  Q: quit")
	case PhasePlaying:
		if snap.LevelUpPending {
			dst.DrawTextCentered(2, "LEVEL COMPLETE!")
		}
	}
}

// drawEntity draws a fruit as a filled circle of cells.
func drawEntity(dst *core.Screen, e Entity) {
	c := e.Center()
	cx := c.X / CellW
	cy := c.Y / CellH
	rx := e.Size / 2 / CellW
	ry := e.Size / 2 / CellH
	dst.FillEllipse(cx, cy, rx, ry, e.Kind.Glyph(), e.Kind.Color())
}

// drawHUD draws score, lives and tier on the top row.
func drawHUD(dst *core.Screen, snap Snapshot) {
	score := fmt.Sprintf(" Score: %d ", snap.Score)
	dst.DrawTextColored(1, 0, score, core.ColorWhite)

	x := 1 + len(score) + 1
	for i := 0; i < snap.Lives; i++ {
		dst.SetColored(x+i, 0, HeartChar, core.ColorBrightRed)
	}
	if snap.Lives == 0 {
		dst.SetColored(x, 0, EmptyHeart, core.ColorGray)
	}

	level := fmt.Sprintf(" Level %d/%d: %s ", snap.Tier.Number, snap.TierCount, snap.Tier.Name)
	dst.DrawTextColored(dst.Width()-len(level)-1, 0, level, core.ColorCyan)
}

// drawMenu draws the title screen.
func drawMenu(dst *core.Screen, snap Snapshot) {
	h := dst.Height()
	top := core.Max((h-10)/2, 0)

	title := "F R U I T   C A T C H E R"
	dst.DrawTextColored((dst.Width()-len([]rune(title)))/2, top, title, core.ColorBrightGreen)

	lines := []string{
		"Click falling fruit to catch them.",
		"Missed fruit cost a life. Do not catch bombs!",
		"",
		"Enter: start  |  Q: quit",
	}
	for i, line := range lines {
		dst.DrawTextCentered(top+2+i, line)
	}

	// Fruit legend
	legend := make([]string, 0, len(fruitKinds))
	for _, k := range fruitKinds {
		legend = append(legend, k.String())
	}
	dst.DrawTextCentered(top+2+len(lines)+1, strings.Join(legend, " · "))
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle, hint string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(core.Max(len(title), len(subtitle)), len(hint)) + 4
	boxH := 7
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
	dst.DrawTextColored(boxX+(boxW-len(hint))/2, boxY+5, hint, core.ColorGray)
}
