// Package audio plays the game's sound cues and background music.
// The beep-backed Speaker owns the process-wide audio device; Nop stands in
// wherever there is no local sound card to talk to, such as SSH sessions.
package audio

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
)

// Player is the sound output used by the platform.
type Player interface {
	PlayMatch()
	PlayReject()
	StartMusic()
	StopMusic()
	Close()
}

// Nop is a Player that makes no sound.
type Nop struct{}

func (Nop) PlayMatch()  {}
func (Nop) PlayReject() {}
func (Nop) StartMusic() {}
func (Nop) StopMusic()  {}
func (Nop) Close()      {}

// New returns a Speaker for cfg, or Nop when audio is disabled.
func New(cfg config.AudioConfig) (Player, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	return NewSpeaker(cfg)
}

// PlayEvents turns one tick's game events into sound cues.
// Several matches in one tick share a single chime.
func PlayEvents(p Player, events []core.Event) {
	if core.CountEvents(events, core.EventMatch) > 0 {
		p.PlayMatch()
	}
	if core.CountEvents(events, core.EventSwapRejected) > 0 {
		p.PlayReject()
	}
}
