package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/fruit.yaml
var defaultFruitYAML []byte

// DefaultFruitConfig returns the built-in configuration.
// It mirrors defaults/fruit.yaml and is used when the embedded file fails to parse.
func DefaultFruitConfig() FruitConfig {
	return FruitConfig{
		Session: SessionConfig{
			Lives:       3,
			EntitySize:  60,
			MissMargin:  60,
			SettleDelay: 500 * time.Millisecond,
		},
		Points: map[string]int{
			"apple":      10,
			"banana":     20,
			"orange":     30,
			"grape":      40,
			"melon":      50,
			"pear":       60,
			"strawberry": 70,
			"watermelon": 80,
			"bomb":       -30,
		},
		Tiers: []TierConfig{
			{Name: "Beginner", RequiredScore: 100, FruitSpeed: 3, SpawnInterval: 1500 * time.Millisecond, BombChance: 0},
			{Name: "Easy", RequiredScore: 250, FruitSpeed: 4, SpawnInterval: 1200 * time.Millisecond, BombChance: 0.10},
			{Name: "Medium", RequiredScore: 450, FruitSpeed: 5, SpawnInterval: 1000 * time.Millisecond, BombChance: 0.15},
			{Name: "Hard", RequiredScore: 700, FruitSpeed: 6, SpawnInterval: 800 * time.Millisecond, BombChance: 0.20},
			{Name: "Expert", RequiredScore: 1000, FruitSpeed: 7.5, SpawnInterval: 650 * time.Millisecond, BombChance: 0.25},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFruitYAML
}
