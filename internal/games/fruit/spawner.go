package fruit

import (
	"math/rand"

	"github.com/vovakirdan/fruitcatch/internal/core"
)

// Spawner creates new entities on a tier-dependent cadence.
type Spawner struct {
	rng     *rand.Rand
	nextID  int
	elapsed int // Ticks since the last spawn tick
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng, nextID: 1}
}

// Reset restarts id numbering and the spawn timer with a new generator.
func (s *Spawner) Reset(rng *rand.Rand) {
	s.rng = rng
	s.nextID = 1
	s.elapsed = 0
}

// Due advances the spawn timer by one tick and reports whether this tick
// is a spawn tick. intervalTicks below 1 is treated as 1.
func (s *Spawner) Due(intervalTicks int) bool {
	if intervalTicks < 1 {
		intervalTicks = 1
	}
	s.elapsed++
	if s.elapsed < intervalTicks {
		return false
	}
	s.elapsed = 0
	return true
}

// Spawn creates one entity just above the viewport.
// The kind is a bomb with probability tier.BombChance, otherwise uniform
// over the fruit kinds. Returns false without consuming an id when the
// viewport cannot hold an entity of the given size.
func (s *Spawner) Spawn(view core.Viewport, size float64, tier Tier) (Entity, bool) {
	if !view.Valid() || size <= 0 || view.W < size {
		return Entity{}, false
	}

	kind := KindBomb
	if s.rng.Float64() >= tier.BombChance {
		kind = fruitKinds[s.rng.Intn(len(fruitKinds))]
	}
	x := s.rng.Float64() * (view.W - size)

	e := Entity{
		ID:   s.nextID,
		X:    x,
		Y:    -size,
		Kind: kind,
		Size: size,
	}
	s.nextID++
	return e, true
}

// NextID returns the id the next spawned entity will get.
func (s *Spawner) NextID() int {
	return s.nextID
}
