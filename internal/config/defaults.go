package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			TileSize:   42,
			FallSpeed:  8,
			MatchDelay: 0.2,
		},
		Feedback: FeedbackConfig{
			MaxPopups:      32,
			PopupLifetime:  1.0,
			PopupRiseSpeed: 30,
			PulseScale:     2.0,
			PulseDecay:     2.5,
		},
		Blitz: BlitzConfig{
			Duration: 120,
		},
		Hints: HintsConfig{
			Duration: 2.0,
		},
		Audio: AudioConfig{
			Enabled: true,
			Music:   true,
			Volume:  0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_blitz":
		return defaultMatch3YAML
	default:
		return nil
	}
}
