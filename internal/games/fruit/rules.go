package fruit

import (
	"fmt"
	"time"

	"github.com/vovakirdan/fruitcatch/internal/config"
)

// Tier is one difficulty level. Tiers are totally ordered by Number.
type Tier struct {
	Number        int
	Name          string
	RequiredScore int // Cumulative score needed to leave this tier
	FruitSpeed    float64
	SpawnInterval time.Duration
	BombChance    float64
}

// Rules is the immutable rule set of a session, built from config.
type Rules struct {
	Tiers       []Tier
	Lives       int
	EntitySize  float64
	MissMargin  float64
	SettleDelay time.Duration

	points [kindCount]int
	source config.FruitConfig
}

// NewRules validates cfg and builds the kind and tier tables from it.
func NewRules(cfg config.FruitConfig) (Rules, error) {
	if err := cfg.Validate(); err != nil {
		return Rules{}, fmt.Errorf("fruit: %w", err)
	}

	r := Rules{
		Lives:       cfg.Session.Lives,
		EntitySize:  cfg.Session.EntitySize,
		MissMargin:  cfg.Session.MissMargin,
		SettleDelay: cfg.Session.SettleDelay,
		source:      cfg,
	}

	for k := Kind(0); k < kindCount; k++ {
		r.points[k] = kinds[k].points
	}
	for name, pts := range cfg.Points {
		k, ok := KindByName(name)
		if !ok {
			return Rules{}, fmt.Errorf("fruit: %w: unknown fruit kind %q", config.ErrInvalidConfig, name)
		}
		r.points[k] = pts
	}

	r.Tiers = make([]Tier, len(cfg.Tiers))
	for i, t := range cfg.Tiers {
		r.Tiers[i] = Tier{
			Number:        i + 1,
			Name:          t.Name,
			RequiredScore: t.RequiredScore,
			FruitSpeed:    t.FruitSpeed,
			SpawnInterval: t.SpawnInterval,
			BombChance:    t.BombChance,
		}
	}
	return r, nil
}

// DefaultRules returns the rules of the built-in configuration.
func DefaultRules() Rules {
	r, err := NewRules(config.DefaultFruitConfig())
	if err != nil {
		panic(fmt.Sprintf("fruit: built-in config is invalid: %v", err))
	}
	return r
}

// Points returns the score delta for catching a kind.
func (r Rules) Points(k Kind) int {
	if k < 0 || k >= kindCount {
		return 0
	}
	return r.points[k]
}

// Tier returns the tier at a 0-based index, clamped to the valid range.
func (r Rules) Tier(index int) Tier {
	if index < 0 {
		index = 0
	}
	if index >= len(r.Tiers) {
		index = len(r.Tiers) - 1
	}
	return r.Tiers[index]
}

// Config returns the configuration the rules were built from.
func (r Rules) Config() config.FruitConfig {
	return r.source
}
