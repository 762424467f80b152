package storage

import (
	"fmt"

	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

// ReplayCheck is the result of re-simulating a stored replay.
type ReplayCheck struct {
	Replay Replay
	Final  fruit.Snapshot // Snapshot produced by the re-simulation
	Match  bool           // Final hash equals the stored hash
}

// VerifyReplay re-simulates a replay from its seed and input log and
// compares the outcome with what was recorded when the run ended.
func (s *Store) VerifyReplay(id int64) (ReplayCheck, error) {
	r, err := s.ReplayByID(id)
	if err != nil {
		return ReplayCheck{}, err
	}

	rec, err := s.LoadRecording(id)
	if err != nil {
		return ReplayCheck{}, err
	}

	final, err := fruit.Simulate(rec)
	if err != nil {
		return ReplayCheck{}, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	return ReplayCheck{
		Replay: r,
		Final:  final,
		Match:  final.Hash() == r.FinalHash,
	}, nil
}
