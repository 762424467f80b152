package fruit

import "github.com/vovakirdan/fruitcatch/internal/core"

// Entity is a falling object. X and Y are the top-left corner of its
// bounding square in viewport units.
type Entity struct {
	ID   int
	X, Y float64
	Kind Kind
	Size float64
}

// Center returns the center of the entity.
func (e Entity) Center() core.Vec {
	half := e.Size / 2
	return core.Vec{X: e.X + half, Y: e.Y + half}
}

// HitCircle returns the circular tap region of the entity.
func (e Entity) HitCircle() core.Circle {
	return core.Circle{Center: e.Center(), Radius: e.Size / 2}
}
