package fruit

// Advance moves every entity down by speed, then splits them at the miss
// line. Entities with Y < missLine are kept (in order, reusing the backing
// array of entities); the rest are returned as missed.
func Advance(entities []Entity, speed, missLine float64) (kept, missed []Entity) {
	kept = entities[:0]
	for _, e := range entities {
		e.Y += speed
		if e.Y < missLine {
			kept = append(kept, e)
		} else {
			missed = append(missed, e)
		}
	}
	return kept, missed
}

// LivesLost counts the missed entities that cost a life.
// Bombs that fall past the miss line are free.
func LivesLost(missed []Entity) int {
	n := 0
	for _, e := range missed {
		if !e.Kind.IsBomb() {
			n++
		}
	}
	return n
}
