package match3

import "github.com/vovakirdan/tui-match3/internal/core"

// TileState is the externally visible phase of the board.
type TileState int

const (
	StateIdle       TileState = iota // accepting clicks
	StateAnimating                   // tiles are falling
	StateMatchDelay                  // short pause before the cascade check
)

// String returns a human-readable name for the state.
func (s TileState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateMatchDelay:
		return "match_delay"
	default:
		return "unknown"
	}
}

// phase is the board state machine. Only matchDelayPhase carries data.
type phase interface {
	state() TileState
}

type idlePhase struct{}

type animatingPhase struct{}

type matchDelayPhase struct {
	remaining float64 // seconds
}

func (idlePhase) state() TileState       { return StateIdle }
func (animatingPhase) state() TileState  { return StateAnimating }
func (matchDelayPhase) state() TileState { return StateMatchDelay }

// advancePhase runs one tick of the board state machine.
// A fall that finishes this tick starts its delay in the same tick.
func (g *Game) advancePhase(dt float64) {
	if _, ok := g.phase.(animatingPhase); ok {
		if !g.board.settle(g.cfg.Board.FallSpeed) {
			g.phase = matchDelayPhase{remaining: g.cfg.Board.MatchDelay}
		}
	}

	if p, ok := g.phase.(matchDelayPhase); ok {
		p.remaining -= dt
		if p.remaining > 0 {
			g.phase = p
			return
		}
		if g.detect() {
			g.emit(core.EventCascade)
			g.resolve()
			return
		}
		g.phase = idlePhase{}
		g.onSettled()
	}
}

// resolve collapses matched cells, refills, and starts the fall.
func (g *Game) resolve() {
	g.board.Resolve(g.src, g.cfg.Board.TileSize)
	g.phase = animatingPhase{}
}

// detect scans the board and turns every triple into score feedback.
func (g *Game) detect() bool {
	triples := g.board.Detect()
	for _, t := range triples {
		g.feedback.Score(t.Start, g.cfg.Board.TileSize)
		g.emit(core.EventMatch)
	}
	return len(triples) > 0
}
