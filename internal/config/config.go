// Package config provides YAML-based game configuration loading,
// validation and difficulty presets.
package config

import "time"

// FruitConfig contains all configuration for a fruit catcher session.
type FruitConfig struct {
	Session SessionConfig  `yaml:"session"`
	Points  map[string]int `yaml:"points"`
	Tiers   []TierConfig   `yaml:"tiers"`
}

// SessionConfig defines per-session constants.
type SessionConfig struct {
	Lives       int           `yaml:"lives"`        // Lives at start and after restart
	EntitySize  float64       `yaml:"entity_size"`  // Fruit diameter in viewport units
	MissMargin  float64       `yaml:"miss_margin"`  // Miss line distance above the viewport bottom
	SettleDelay time.Duration `yaml:"settle_delay"` // Pause before a level-up takes effect
}

// TierConfig defines one difficulty tier.
type TierConfig struct {
	Name          string        `yaml:"name"`
	RequiredScore int           `yaml:"required_score"` // Cumulative score to leave this tier
	FruitSpeed    float64       `yaml:"fruit_speed"`    // Viewport units per tick
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	BombChance    float64       `yaml:"bomb_chance"` // 0.0 - 1.0
}

// TierCount is the fixed number of difficulty tiers.
const TierCount = 5
