package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadFruit loads the fruit catcher configuration.
// Search order: customPath -> ~/.fruitcatch/configs/fruit.yaml -> ./configs/fruit.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may override only the
// fields it names. The result is validated before it is returned.
func LoadFruit(customPath string) (FruitConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FruitConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FruitConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory.
	// Broken files in these locations are skipped rather than fatal.
	for _, path := range []string{userConfigPath("fruit.yaml"), filepath.Join("configs", "fruit.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFruitYAML)
	if err != nil {
		return DefaultFruitConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (FruitConfig, error) {
	cfg := DefaultFruitConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FruitConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FruitConfig{}, err
	}
	return cfg, nil
}

// Validate checks the structural rules the simulation relies on.
func (c FruitConfig) Validate() error {
	if c.Session.Lives <= 0 {
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalidConfig, c.Session.Lives)
	}
	if c.Session.EntitySize <= 0 {
		return fmt.Errorf("%w: entity_size must be positive, got %g", ErrInvalidConfig, c.Session.EntitySize)
	}
	if c.Session.MissMargin < 0 {
		return fmt.Errorf("%w: miss_margin must not be negative, got %g", ErrInvalidConfig, c.Session.MissMargin)
	}
	if c.Session.SettleDelay < 0 {
		return fmt.Errorf("%w: settle_delay must not be negative, got %s", ErrInvalidConfig, c.Session.SettleDelay)
	}

	for name, pts := range c.Points {
		if name == "bomb" && pts >= 0 {
			return fmt.Errorf("%w: bomb points must be negative, got %d", ErrInvalidConfig, pts)
		}
		if name != "bomb" && pts <= 0 {
			return fmt.Errorf("%w: %s points must be positive, got %d", ErrInvalidConfig, name, pts)
		}
	}

	if len(c.Tiers) != TierCount {
		return fmt.Errorf("%w: expected %d tiers, got %d", ErrInvalidConfig, TierCount, len(c.Tiers))
	}
	prev := 0
	for i, t := range c.Tiers {
		n := i + 1
		if t.Name == "" {
			return fmt.Errorf("%w: tier %d has no name", ErrInvalidConfig, n)
		}
		if t.RequiredScore <= prev {
			return fmt.Errorf("%w: tier %d required_score %d must exceed %d", ErrInvalidConfig, n, t.RequiredScore, prev)
		}
		if t.FruitSpeed <= 0 {
			return fmt.Errorf("%w: tier %d fruit_speed must be positive", ErrInvalidConfig, n)
		}
		if t.SpawnInterval <= 0 {
			return fmt.Errorf("%w: tier %d spawn_interval must be positive", ErrInvalidConfig, n)
		}
		if t.BombChance < 0 || t.BombChance > 1 {
			return fmt.Errorf("%w: tier %d bomb_chance %g outside [0, 1]", ErrInvalidConfig, n, t.BombChance)
		}
		prev = t.RequiredScore
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fruitcatch", "configs", filename)
}
