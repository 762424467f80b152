package fruit

import "github.com/vovakirdan/fruitcatch/internal/core"

// HitTest returns the index of the first entity, in slice order, whose
// hit circle contains the tap, or -1 if none does.
func HitTest(entities []Entity, tap core.Tap) int {
	p := core.Vec{X: tap.X, Y: tap.Y}
	for i, e := range entities {
		if e.HitCircle().Contains(p) {
			return i
		}
	}
	return -1
}

// removeAt deletes the entity at index i, preserving order.
func removeAt(entities []Entity, i int) []Entity {
	copy(entities[i:], entities[i+1:])
	return entities[:len(entities)-1]
}
