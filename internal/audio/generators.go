package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Chime is a bright two-note rising ping with an exponential tail.
type Chime struct {
	sr  beep.SampleRate
	pos int
}

// NewChime creates a chime generator.
func NewChime(sr beep.SampleRate) *Chime {
	return &Chime{sr: sr}
}

func (g *Chime) Stream(samples [][2]float64) (n int, ok bool) {
	half := g.sr.N(60 * time.Millisecond)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// E6 then A6
		freq := 1318.5
		if g.pos >= half {
			freq = 1760.0
		}
		sample := 0.25 * math.Exp(-t*14) * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Chime) Err() error {
	return nil
}

// Buzz is a low square-ish tone with a short fade in.
type Buzz struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzz creates a buzz generator at freq Hz.
func NewBuzz(sr beep.SampleRate, freq float64) *Buzz {
	return &Buzz{sr: sr, freq: freq}
}

func (g *Buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.1*math.Sin(2*math.Pi*g.freq*3*t) +
			0.06*math.Sin(2*math.Pi*g.freq*5*t)
		envelope := math.Min(t/0.01, 1.0)
		sample *= envelope * 0.4

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Buzz) Err() error {
	return nil
}

// arpeggioNotes is an A minor arpeggio, one note per step.
var arpeggioNotes = [...]float64{220.0, 261.63, 329.63, 440.0, 329.63, 261.63}

// Arpeggio is an endless soft background loop.
type Arpeggio struct {
	sr   beep.SampleRate
	pos  int
	step int // samples per note
}

// NewArpeggio creates the background music generator.
func NewArpeggio(sr beep.SampleRate) *Arpeggio {
	return &Arpeggio{sr: sr, step: sr.N(250 * time.Millisecond)}
}

func (g *Arpeggio) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (g.pos / g.step) % len(arpeggioNotes)
		inNote := float64(g.pos%g.step) / float64(g.sr)
		t := float64(g.pos) / float64(g.sr)

		freq := arpeggioNotes[note]
		envelope := math.Exp(-inNote * 6)
		pad := 0.04 * math.Sin(2*math.Pi*110*t)
		sample := 0.08*envelope*math.Sin(2*math.Pi*freq*t) + pad

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Arpeggio) Err() error {
	return nil
}
