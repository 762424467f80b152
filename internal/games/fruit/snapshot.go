package fruit

import (
	"math"

	"github.com/vovakirdan/fruitcatch/internal/core"
)

// Snapshot is a read-only copy of the session for rendering, replay
// verification and tests. It shares no memory with the session.
type Snapshot struct {
	Tick           uint64
	Phase          Phase
	Score          int
	Lives          int
	Tier           Tier
	TierCount      int
	LevelUpPending bool
	View           core.Viewport
	Entities       []Entity
	NextID         int
}

// Snapshot returns the current state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:           s.tick,
		Phase:          s.phase,
		Score:          s.score,
		Lives:          s.lives,
		Tier:           s.rules.Tier(s.tierIndex),
		TierCount:      len(s.rules.Tiers),
		LevelUpPending: s.progression.Pending(),
		View:           s.view,
		Entities:       append([]Entity(nil), s.entities...),
		NextID:         s.spawner.NextID(),
	}
}

// Hash returns a simple hash of the snapshot for determinism checks.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Tier.Number) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NextID)      //#nosec G115 -- hash computation
	if snap.LevelUpPending {
		h = h*31 + 1
	}

	for _, e := range snap.Entities {
		h = h*31 + uint64(e.ID)   //#nosec G115 -- hash computation
		h = h*31 + uint64(e.Kind) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
	}

	return h
}
