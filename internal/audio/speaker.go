package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-match3/internal/config"
)

const (
	sampleRate = beep.SampleRate(44100)

	chimeLength  = 180 * time.Millisecond
	rejectLength = 120 * time.Millisecond
)

// Speaker plays through the default audio device via beep.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	music  *beep.Ctrl
	withBG bool
	closed bool
}

// NewSpeaker opens the audio device and starts an empty mixer on it.
func NewSpeaker(cfg config.AudioConfig) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot init speaker: %w", err)
	}

	s := &Speaker{
		mixer:  &beep.Mixer{},
		withBG: cfg.Music,
	}
	speaker.Play(&effects.Volume{Streamer: s.mixer, Base: 2, Volume: cfg.Volume})
	return s, nil
}

// add hands a streamer to the mixer while the speaker is locked.
func (s *Speaker) add(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// PlayMatch plays the match chime.
func (s *Speaker) PlayMatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.add(beep.Take(sampleRate.N(chimeLength), NewChime(sampleRate)))
}

// PlayReject plays the short buzz for a reverted swap.
func (s *Speaker) PlayReject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.add(beep.Take(sampleRate.N(rejectLength), NewBuzz(sampleRate, 110)))
}

// StartMusic starts or resumes the background loop.
func (s *Speaker) StartMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.withBG {
		return
	}

	if s.music != nil {
		speaker.Lock()
		s.music.Paused = false
		speaker.Unlock()
		return
	}
	s.music = &beep.Ctrl{Streamer: NewArpeggio(sampleRate)}
	s.add(s.music)
}

// StopMusic pauses the background loop.
func (s *Speaker) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = true
	speaker.Unlock()
}

// Close silences everything. The device itself stays open since beep
// allows a single Init per process.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Clear()
	s.music = nil
	s.closed = true
}
