package config

import "fmt"

// DifficultyPreset selects a named set of tuning overrides.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name from the command line.
// An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Easy gives more blitz time and slower cascades, hard the opposite.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Blitz.Duration *= 1.5
		cfg.Board.FallSpeed *= 0.75
		cfg.Board.MatchDelay *= 1.5
	case DifficultyHard:
		cfg.Blitz.Duration *= 0.5
		cfg.Board.FallSpeed *= 1.5
		cfg.Board.MatchDelay *= 0.5
	}
}
