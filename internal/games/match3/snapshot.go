package match3

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Score        int
	State        string // board state machine: idle, animating, match_delay
	Rows         []string
	Falling      bool
	Selected     Point
	HasSelection bool
	Popups       int
	Pulse        float64
	TimeLeft     float64
	GameOver     bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Score:        g.feedback.Total(),
		State:        g.phase.state().String(),
		Rows:         g.board.Rows(),
		Falling:      !g.board.Stable(),
		Selected:     g.selected,
		HasSelection: g.hasSelection,
		Popups:       g.feedback.popups.len(),
		Pulse:        g.feedback.Pulse(),
		TimeLeft:     g.timeLeft,
		GameOver:     g.gameOver,
	}
}
