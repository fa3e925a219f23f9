package match3

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-match3/internal/config"
)

// PointsPerMatch is the score for one triple.
const PointsPerMatch = 10

// Popup is a floating "+N" label in board pixel space.
type Popup struct {
	X, Y     float64 // centre, in virtual pixels from the board's top-left
	Amount   int
	Lifetime float64 // seconds left
}

// popupSlot identifies a popup within the pool.
type popupSlot uint32

// popupPool is a fixed-capacity arena. Live popups are keyed by slot and
// free slots are kept on a stack.
type popupPool struct {
	live *intmap.Map[popupSlot, Popup]
	free []popupSlot
	size int
}

func newPopupPool(size int) *popupPool {
	p := &popupPool{
		live: intmap.New[popupSlot, Popup](size),
		free: make([]popupSlot, 0, size),
		size: size,
	}
	p.reset()
	return p
}

func (p *popupPool) reset() {
	p.live.Clear()
	p.free = p.free[:0]
	for i := p.size - 1; i >= 0; i-- {
		p.free = append(p.free, popupSlot(i))
	}
}

// add stores pop in a free slot. It reports false when the pool is full.
func (p *popupPool) add(pop Popup) bool {
	if len(p.free) == 0 {
		return false
	}
	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.live.Put(slot, pop)
	return true
}

func (p *popupPool) release(slot popupSlot) {
	p.live.Del(slot)
	p.free = append(p.free, slot)
}

func (p *popupPool) len() int {
	return p.live.Len()
}

// each visits live popups in slot order.
func (p *popupPool) each(fn func(Popup)) {
	for i := range p.size {
		if pop, ok := p.live.Get(popupSlot(i)); ok {
			fn(pop)
		}
	}
}

// Feedback tracks the score, the score pulse and the popups.
type Feedback struct {
	cfg config.FeedbackConfig

	score  int
	scale  float64
	decay  float64 // current pulse velocity, 0 when locked
	popups *popupPool
}

// NewFeedback creates a tracker with a zero score.
func NewFeedback(cfg config.FeedbackConfig) *Feedback {
	return &Feedback{
		cfg:    cfg,
		scale:  1,
		popups: newPopupPool(cfg.MaxPopups),
	}
}

// Reset zeroes the score and drops all popups.
func (f *Feedback) Reset() {
	f.score = 0
	f.scale = 1
	f.decay = 0
	f.popups.reset()
}

// Score records one triple starting at cell: points, pulse and popup.
// The popup is dropped silently when the pool is full.
func (f *Feedback) Score(cell Point, tileSize int) {
	f.score += PointsPerMatch
	f.scale = f.cfg.PulseScale
	f.decay = f.cfg.PulseDecay

	ts := float64(tileSize)
	f.popups.add(Popup{
		X:        float64(cell.X)*ts + ts/2,
		Y:        float64(cell.Y)*ts + ts/2,
		Amount:   PointsPerMatch,
		Lifetime: f.cfg.PopupLifetime,
	})
}

// Update ages popups and decays the pulse by dt seconds.
func (f *Feedback) Update(dt float64) {
	for i := range f.popups.size {
		slot := popupSlot(i)
		pop, ok := f.popups.live.Get(slot)
		if !ok {
			continue
		}
		pop.Lifetime -= dt
		pop.Y -= f.cfg.PopupRiseSpeed * dt
		if pop.Lifetime <= 0 {
			f.popups.release(slot)
			continue
		}
		f.popups.live.Put(slot, pop)
	}

	if f.decay > 0 {
		f.scale -= f.decay * dt
		if f.scale <= 1 {
			f.scale = 1
			f.decay = 0
		}
	}
}

// Total returns the current score.
func (f *Feedback) Total() int {
	return f.score
}

// Pulse returns the current score scale; 1 means at rest.
func (f *Feedback) Pulse() float64 {
	return f.scale
}

// Popups returns the live popups in slot order.
func (f *Feedback) Popups() []Popup {
	out := make([]Popup, 0, f.popups.len())
	f.popups.each(func(p Popup) {
		out = append(out, p)
	})
	return out
}

// Alpha returns the popup's opacity in [0, 1].
func (p Popup) Alpha(lifetime float64) float64 {
	if lifetime <= 0 {
		return 0
	}
	a := p.Lifetime / lifetime
	switch {
	case a < 0:
		return 0
	case a > 1:
		return 1
	}
	return a
}
