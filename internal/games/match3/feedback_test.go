package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/config"
)

func newTestFeedback() *Feedback {
	return NewFeedback(config.DefaultMatch3Config().Feedback)
}

func TestFeedbackScore(t *testing.T) {
	f := newTestFeedback()
	f.Score(Point{2, 3}, 42)

	assert.Equal(t, 10, f.Total())
	assert.Equal(t, 2.0, f.Pulse())

	pops := f.Popups()
	require.Len(t, pops, 1)
	assert.Equal(t, Popup{X: 105, Y: 147, Amount: 10, Lifetime: 1.0}, pops[0])
}

func TestFeedbackPulseDecaysAndLocks(t *testing.T) {
	f := newTestFeedback()
	f.Score(Point{0, 0}, 42)

	f.Update(0.2)
	assert.InDelta(t, 1.5, f.Pulse(), 1e-9)

	f.Update(1.0)
	assert.Equal(t, 1.0, f.Pulse())

	f.Update(1.0)
	assert.Equal(t, 1.0, f.Pulse(), "pulse stays locked at rest")

	// a new match re-arms it
	f.Score(Point{0, 0}, 42)
	assert.Equal(t, 2.0, f.Pulse())
}

func TestFeedbackPopupRisesAndFades(t *testing.T) {
	f := newTestFeedback()
	f.Score(Point{0, 0}, 42)

	f.Update(0.5)
	pops := f.Popups()
	require.Len(t, pops, 1)
	assert.InDelta(t, 21-15, pops[0].Y, 1e-9)
	assert.InDelta(t, 0.5, pops[0].Alpha(1.0), 1e-9)

	f.Update(0.5)
	assert.Empty(t, f.Popups(), "popup is reclaimed once its lifetime runs out")
}

func TestFeedbackPopupPoolCapacity(t *testing.T) {
	f := newTestFeedback()
	for range 40 {
		f.Score(Point{1, 1}, 42)
	}

	assert.Equal(t, 400, f.Total(), "score counts every match even when popups are dropped")
	assert.Len(t, f.Popups(), 32)

	f.Update(1.0)
	assert.Empty(t, f.Popups())

	for range 32 {
		f.Score(Point{1, 1}, 42)
	}
	assert.Len(t, f.Popups(), 32, "expired slots are reused")
}

func TestFeedbackReset(t *testing.T) {
	f := newTestFeedback()
	f.Score(Point{1, 1}, 42)
	f.Reset()

	assert.Zero(t, f.Total())
	assert.Equal(t, 1.0, f.Pulse())
	assert.Empty(t, f.Popups())
}

func TestPopupAlphaClamped(t *testing.T) {
	tests := []struct {
		lifetime float64
		want     float64
	}{
		{2.0, 1.0},
		{0.25, 0.25},
		{-0.1, 0},
	}

	for _, tc := range tests {
		p := Popup{Lifetime: tc.lifetime}
		assert.InDelta(t, tc.want, p.Alpha(1.0), 1e-9)
	}
	assert.Zero(t, Popup{Lifetime: 1}.Alpha(0))
}
