// Package fruit implements the fruit catcher game: fruit fall from the top
// of the viewport, taps catch them for points, misses cost lives, and
// cumulative score climbs through five difficulty tiers.
//
// The package is pure simulation. Time advances only through Step, all
// randomness comes from a seeded generator, and the same seed and input
// log always produce the same run.
package fruit

import "github.com/vovakirdan/fruitcatch/internal/core"

// Kind identifies a type of falling object.
type Kind int

const (
	KindApple Kind = iota
	KindBanana
	KindOrange
	KindGrape
	KindMelon
	KindPear
	KindStrawberry
	KindWatermelon
	KindBomb

	kindCount
)

type kindInfo struct {
	name   string
	glyph  rune
	color  core.Color
	points int // Default points, overridable through config
}

var kinds = [kindCount]kindInfo{
	KindApple:      {"apple", '●', core.ColorBrightRed, 10},
	KindBanana:     {"banana", '●', core.ColorBrightYellow, 20},
	KindOrange:     {"orange", '●', core.ColorOrange, 30},
	KindGrape:      {"grape", '●', core.ColorPurple, 40},
	KindMelon:      {"melon", '●', core.ColorBrightGreen, 50},
	KindPear:       {"pear", '●', core.ColorGreen, 60},
	KindStrawberry: {"strawberry", '●', core.ColorPink, 70},
	KindWatermelon: {"watermelon", '●', core.ColorRed, 80},
	KindBomb:       {"bomb", '✱', core.ColorGray, -30},
}

// fruitKinds lists every kind except the bomb, in table order.
var fruitKinds = []Kind{
	KindApple, KindBanana, KindOrange, KindGrape,
	KindMelon, KindPear, KindStrawberry, KindWatermelon,
}

// Kinds returns all kinds in table order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindByName looks up a kind by its config name.
func KindByName(name string) (Kind, bool) {
	for k := Kind(0); k < kindCount; k++ {
		if kinds[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// String returns the config name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kinds[k].name
}

// Glyph returns the rune used to draw the kind.
func (k Kind) Glyph() rune {
	if k < 0 || k >= kindCount {
		return '?'
	}
	return kinds[k].glyph
}

// Color returns the display color of the kind.
func (k Kind) Color() core.Color {
	if k < 0 || k >= kindCount {
		return core.ColorDefault
	}
	return kinds[k].color
}

// IsBomb reports whether the kind penalizes on catch.
func (k Kind) IsBomb() bool {
	return k == KindBomb
}
