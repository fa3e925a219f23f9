package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
)

// drain reads st to the end (or limit samples) and returns what it produced.
func drain(st beep.Streamer, limit int) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := st.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out
}

func TestGeneratorsStayInRange(t *testing.T) {
	tests := []struct {
		name string
		st   beep.Streamer
	}{
		{"chime", NewChime(sampleRate)},
		{"buzz", NewBuzz(sampleRate, 110)},
		{"arpeggio", NewArpeggio(sampleRate)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			samples := drain(tc.st, sampleRate.N(time.Second))
			require.NotEmpty(t, samples)

			loud := false
			for _, s := range samples {
				assert.LessOrEqual(t, s[0], 1.0)
				assert.GreaterOrEqual(t, s[0], -1.0)
				assert.Equal(t, s[0], s[1], "mono signal on both channels")
				if s[0] > 0.01 || s[0] < -0.01 {
					loud = true
				}
			}
			assert.True(t, loud, "generator should be audible")
			assert.NoError(t, tc.st.Err())
		})
	}
}

func TestChimeIsFiniteWhenTaken(t *testing.T) {
	want := sampleRate.N(chimeLength)
	samples := drain(beep.Take(want, NewChime(sampleRate)), 10*want)
	assert.Len(t, samples, want)
}

func rms(samples [][2]float64) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s[0] * s[0]
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func TestArpeggioRestrikesEachNote(t *testing.T) {
	g := NewArpeggio(sampleRate)
	window := sampleRate.N(10 * time.Millisecond)

	g.pos = g.step - window
	tail := drain(beep.Take(window, g), window)
	attack := drain(beep.Take(window, g), window)

	assert.Greater(t, rms(attack), 1.5*rms(tail))
}

type recordingPlayer struct {
	Nop
	matches, rejects int
}

func (r *recordingPlayer) PlayMatch()  { r.matches++ }
func (r *recordingPlayer) PlayReject() { r.rejects++ }

func TestPlayEvents(t *testing.T) {
	p := &recordingPlayer{}

	PlayEvents(p, []core.Event{core.EventMatch, core.EventMatch, core.EventCascade})
	assert.Equal(t, 1, p.matches, "one chime per tick")
	assert.Zero(t, p.rejects)

	PlayEvents(p, []core.Event{core.EventSwapRejected})
	assert.Equal(t, 1, p.rejects)

	PlayEvents(p, nil)
	assert.Equal(t, 1, p.matches)
}

func TestNewDisabledIsNop(t *testing.T) {
	p, err := New(config.AudioConfig{Enabled: false})
	require.NoError(t, err)
	assert.Equal(t, Nop{}, p)

	// Nop never panics
	p.StartMusic()
	p.PlayMatch()
	p.PlayReject()
	p.StopMusic()
	p.Close()
}
