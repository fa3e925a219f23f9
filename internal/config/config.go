// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-3 game.
package config

import (
	"errors"
	"fmt"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board    BoardConfig    `yaml:"board"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Blitz    BlitzConfig    `yaml:"blitz"`
	Hints    HintsConfig    `yaml:"hints"`
	Audio    AudioConfig    `yaml:"audio"`
}

// BoardConfig defines the fall animation and cascade timing.
type BoardConfig struct {
	TileSize   int     `yaml:"tile_size"`   // virtual pixels per tile
	FallSpeed  float64 `yaml:"fall_speed"`  // pixels per tick
	MatchDelay float64 `yaml:"match_delay"` // seconds between landing and re-check
}

// FeedbackConfig defines score popups and the score pulse.
type FeedbackConfig struct {
	MaxPopups      int     `yaml:"max_popups"`
	PopupLifetime  float64 `yaml:"popup_lifetime"`   // seconds
	PopupRiseSpeed float64 `yaml:"popup_rise_speed"` // pixels per second
	PulseScale     float64 `yaml:"pulse_scale"`
	PulseDecay     float64 `yaml:"pulse_decay"` // scale units per second
}

// BlitzConfig defines the timed mode.
type BlitzConfig struct {
	Duration float64 `yaml:"duration"` // seconds
}

// HintsConfig defines how long a requested hint stays visible.
type HintsConfig struct {
	Duration float64 `yaml:"duration"` // seconds
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Music   bool    `yaml:"music"`
	Volume  float64 `yaml:"volume"` // beep volume exponent, 0 is unchanged
}

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid value")

// Validate rejects values the game cannot run with.
func (c Match3Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"board.tile_size", c.Board.TileSize > 0},
		{"board.fall_speed", c.Board.FallSpeed > 0},
		{"board.match_delay", c.Board.MatchDelay >= 0},
		{"feedback.max_popups", c.Feedback.MaxPopups > 0},
		{"feedback.popup_lifetime", c.Feedback.PopupLifetime > 0},
		{"feedback.popup_rise_speed", c.Feedback.PopupRiseSpeed >= 0},
		{"feedback.pulse_scale", c.Feedback.PulseScale >= 1},
		{"feedback.pulse_decay", c.Feedback.PulseDecay > 0},
		{"blitz.duration", c.Blitz.Duration > 0},
		{"hints.duration", c.Hints.Duration > 0},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.name)
		}
	}
	return nil
}
