// Package core provides fundamental types and utilities shared by the
// simulation and the terminal layer. It has no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an axis-aligned box of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Vec is a point in viewport units.
type Vec struct {
	X, Y float64
}

// Circle is a hit region in viewport units.
type Circle struct {
	Center Vec
	Radius float64
}

// Contains reports whether p lies inside or on the circle.
// Compares squared distances, no square root needed.
func (c Circle) Contains(p Vec) bool {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
