package fruit

import (
	"fmt"

	"github.com/vovakirdan/fruitcatch/internal/config"
	"github.com/vovakirdan/fruitcatch/internal/core"
)

// InputKind distinguishes recorded inputs.
type InputKind int

const (
	InputTap InputKind = iota
	InputResize
)

// InputRecord is one input applied at a given tick. For resizes X and Y
// hold the new viewport width and height.
type InputRecord struct {
	Tick uint64
	Kind InputKind
	X, Y float64
}

// Recording is everything needed to reproduce a run.
type Recording struct {
	Seed     int64
	TickRate int
	View     core.Viewport
	Config   config.FruitConfig
	Ticks    uint64 // Ticks stepped while playing
	Inputs   []InputRecord
}

// Simulate replays a recording headlessly and returns the final snapshot.
func Simulate(rec Recording) (Snapshot, error) {
	rules, err := NewRules(rec.Config)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fruit: replay rules: %w", err)
	}

	s := NewSession(rules, rec.TickRate)
	s.Start(rec.Seed, rec.View)

	next := 0
	frame := core.NewInputFrame()
	for t := uint64(1); t <= rec.Ticks && s.Phase() == PhasePlaying; t++ {
		frame.Clear()
		for next < len(rec.Inputs) && rec.Inputs[next].Tick == t {
			in := rec.Inputs[next]
			switch in.Kind {
			case InputTap:
				frame.AddTap(in.X, in.Y)
			case InputResize:
				frame.SetResize(core.Viewport{W: in.X, H: in.Y})
			}
			next++
		}
		if next < len(rec.Inputs) && rec.Inputs[next].Tick < t {
			return Snapshot{}, fmt.Errorf("fruit: replay inputs out of order at tick %d", rec.Inputs[next].Tick)
		}
		s.Step(frame)
	}
	return s.Snapshot(), nil
}
