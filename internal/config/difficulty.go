package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// LivesForPreset returns the starting lives for a difficulty preset.
// Returns 0 for presets that keep the configured value.
func LivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 2
	default:
		return 0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *FruitConfig, preset DifficultyPreset) {
	if lives := LivesForPreset(preset); lives > 0 {
		cfg.Session.Lives = lives
	}
}
