package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     1,
}

// oneMoveRows has exactly one scoring swap: (2,0) with (3,0).
var oneMoveRows = withRow(0, "##$#&#@$")

// newTestGame builds a game on a fixed board, idle and ready for input.
// Refills cycle through TileKinds.
func newTestGame(t *testing.T, mode Mode, rows ...string) *Game {
	t.Helper()
	g := &Game{mode: mode}
	g.reset(testRuntime, config.DefaultMatch3Config(), &seqSource{tiles: TileKinds[:]})

	g.board = mustBoard(t, rows...)
	g.phase = idlePhase{}
	g.gameOver = false
	g.overReason = ""
	g.events = nil
	return g
}

func press(g *Game, p Point) core.InputFrame {
	in := core.NewInputFrame()
	in.Press(g.boardX+p.X*cellWidth+2, g.boardY+p.Y*cellHeight+1)
	return in
}

func clickCell(g *Game, p Point) core.StepResult {
	return g.Step(press(g, p))
}

func stepWith(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"match3", "match3_blitz"} {
		require.True(t, registry.Exists(id), id)
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		_, resizable := g.(registry.Resizable)
		assert.True(t, resizable)
	}

	endless, _ := registry.Create("match3")
	blitz, _ := registry.Create("match3_blitz")
	assert.True(t, endless.(registry.Checkpointer).ScoreOnQuit())
	assert.False(t, blitz.(registry.Checkpointer).ScoreOnQuit())
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { difficultyPreset = "" })

	SetDifficultyPreset("hard")
	assert.Equal(t, config.DifficultyHard, difficultyPreset)

	SetDifficultyPreset("bogus")
	assert.Equal(t, config.DifficultyNormal, difficultyPreset)
}

func TestCellAt(t *testing.T) {
	g := newTestGame(t, ModeEndless, quietRows...)
	require.Equal(t, 19, g.boardX)
	require.Equal(t, 4, g.boardY)

	tests := []struct {
		name   string
		sx, sy int
		want   Point
		ok     bool
	}{
		{"outer corner", 19, 4, Point{}, false},
		{"first cell", 20, 5, Point{0, 0}, true},
		{"inner line goes left", 24, 5, Point{0, 0}, true},
		{"second column", 25, 5, Point{1, 0}, true},
		{"inner line goes up", 21, 6, Point{0, 0}, true},
		{"last cell", 59, 20, Point{7, 7}, true},
		{"right of board", 60, 5, Point{}, false},
		{"below board", 22, 21, Point{}, false},
		{"hud", 22, 1, Point{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := g.cellAt(tc.sx, tc.sy)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, p)
			}
		})
	}
}

func TestSwapWithMatchScores(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)

	res := clickCell(g, Point{2, 0})
	assert.Empty(t, res.Events)
	sel, ok := g.Selection()
	require.True(t, ok)
	assert.Equal(t, Point{2, 0}, sel)

	res = clickCell(g, Point{3, 0})
	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventMatch))
	assert.Equal(t, StateAnimating, g.Phase())
	_, ok = g.Selection()
	assert.False(t, ok)

	b := g.Board()
	assert.Equal(t, "&#@$&#@$", b.Rows()[0])
	assert.Greater(t, b.Fall[0][0], 0.0)

	// The refill leaves no move, so the endless game ends once the board settles
	var events []core.Event
	for range 200 {
		res = g.Step(core.NewInputFrame())
		events = append(events, res.Events...)
		if res.State.GameOver {
			break
		}
	}
	require.True(t, res.State.GameOver)
	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, 1, core.CountEvents(events, core.EventGameOver))
	assert.Equal(t, "No moves left", g.overReason)
	assert.Equal(t, StateIdle, g.Phase())
	assert.True(t, g.board.Stable())
}

func TestRejectedSwapRestoresBoard(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)

	clickCell(g, Point{5, 5})
	res := clickCell(g, Point{6, 5})

	assert.Equal(t, []core.Event{core.EventSwapRejected}, res.Events)
	assert.Equal(t, oneMoveRows, g.board.Rows())
	assert.Zero(t, res.State.Score)
	assert.Equal(t, StateIdle, g.Phase())
	_, ok := g.Selection()
	assert.False(t, ok)
}

func TestSecondClickWithoutSwap(t *testing.T) {
	tests := []struct {
		name   string
		second Point
	}{
		{"non-adjacent", Point{2, 2}},
		{"diagonal", Point{1, 1}},
		{"same cell", Point{0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, ModeEndless, oneMoveRows...)

			clickCell(g, Point{0, 0})
			res := clickCell(g, tc.second)

			assert.Empty(t, res.Events)
			assert.Equal(t, oneMoveRows, g.board.Rows())
			_, ok := g.Selection()
			assert.False(t, ok, "selection is cleared")
		})
	}
}

func TestClickOutsideBoardIgnored(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)
	clickCell(g, Point{2, 0})

	in := core.NewInputFrame()
	in.Press(0, 0)
	g.Step(in)

	sel, ok := g.Selection()
	assert.True(t, ok)
	assert.Equal(t, Point{2, 0}, sel)
}

func TestInputIgnoredWhileAnimating(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)
	g.board.Fall[7][7] = 420
	g.phase = animatingPhase{}

	clickCell(g, Point{0, 0})
	_, ok := g.Selection()
	assert.False(t, ok)

	stepWith(g, core.ActionHint)
	assert.Zero(t, g.hintLeft)
}

func TestStateMachineTiming(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)
	g.board.Fall[0][0] = 42
	g.phase = animatingPhase{}

	// 42 px at 8 px per tick lands on the sixth tick
	for i := range 5 {
		g.Step(core.NewInputFrame())
		require.Equal(t, StateAnimating, g.Phase(), "tick %d", i+1)
	}
	g.Step(core.NewInputFrame())
	assert.Equal(t, StateMatchDelay, g.Phase())
	assert.True(t, g.board.Stable())

	// 0.2 s at 60 ticks per second
	for range 5 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, StateMatchDelay, g.Phase())

	for range 9 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, StateIdle, g.Phase())
	assert.False(t, g.State().GameOver)
}

func TestCascadeEmitsEvent(t *testing.T) {
	g := newTestGame(t, ModeEndless, withRow(0, "###%&#@$")...)
	g.phase = matchDelayPhase{remaining: 0}

	res := g.Step(core.NewInputFrame())
	assert.Equal(t, 10, res.State.Score)
	assert.Contains(t, res.Events, core.EventCascade)
	assert.Contains(t, res.Events, core.EventMatch)
	assert.Equal(t, StateAnimating, g.Phase())
}

func TestNoMovesEndsEndlessGame(t *testing.T) {
	g := newTestGame(t, ModeEndless, quietRows...)
	g.phase = matchDelayPhase{remaining: 0}

	res := g.Step(core.NewInputFrame())
	assert.True(t, res.State.GameOver)
	assert.Equal(t, []core.Event{core.EventGameOver}, res.Events)
	assert.Equal(t, "No moves left", g.overReason)

	// Nothing moves after game over
	before := g.Snapshot()
	g.Step(press(g, Point{0, 0}))
	assert.Equal(t, before.Rows, g.Snapshot().Rows)
	assert.False(t, g.Snapshot().HasSelection)
}

func TestBlitzTimeUp(t *testing.T) {
	g := newTestGame(t, ModeBlitz, oneMoveRows...)
	g.timeLeft = 0.5

	for range 25 {
		g.Step(core.NewInputFrame())
	}
	require.False(t, g.State().GameOver)

	var events []core.Event
	for range 10 {
		events = append(events, g.Step(core.NewInputFrame()).Events...)
	}
	assert.True(t, g.State().GameOver)
	assert.Equal(t, "Time's up", g.overReason)
	assert.Equal(t, 1, core.CountEvents(events, core.EventGameOver))
	assert.Zero(t, g.timeLeft)
}

func TestBlitzWaitsForBoardToSettle(t *testing.T) {
	g := newTestGame(t, ModeBlitz, oneMoveRows...)
	g.timeLeft = 0.001
	g.board.Fall[0][0] = 42
	g.phase = animatingPhase{}

	g.Step(core.NewInputFrame())
	assert.Zero(t, g.timeLeft)
	assert.False(t, g.State().GameOver, "the running cascade finishes first")

	for range 100 {
		if g.Step(core.NewInputFrame()).State.GameOver {
			break
		}
	}
	assert.True(t, g.State().GameOver)
	assert.Equal(t, StateIdle, g.Phase())
	assert.Equal(t, "Time's up", g.overReason)
}

func TestEndlessHasNoClock(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)
	g.timeLeft = 0.001
	for range 120 {
		g.Step(core.NewInputFrame())
	}
	assert.False(t, g.State().GameOver)
}

func TestHint(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)

	stepWith(g, core.ActionHint)
	assert.Equal(t, Move{A: Point{2, 0}, B: Point{3, 0}}, g.hint)
	assert.Greater(t, g.hintLeft, 0.0)

	// The hint expires
	for range 200 {
		g.Step(core.NewInputFrame())
	}
	assert.LessOrEqual(t, g.hintLeft, 0.0)
}

func TestKeyboardCursorSwap(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)
	require.Equal(t, Point{4, 4}, g.cursor)

	for range 10 {
		stepWith(g, core.ActionUp)
	}
	assert.Equal(t, Point{4, 0}, g.cursor, "cursor stops at the top edge")

	stepWith(g, core.ActionLeft)
	stepWith(g, core.ActionLeft)
	stepWith(g, core.ActionConfirm)
	sel, ok := g.Selection()
	require.True(t, ok)
	assert.Equal(t, Point{2, 0}, sel)

	stepWith(g, core.ActionRight)
	res := stepWith(g, core.ActionConfirm)
	assert.Equal(t, 10, res.State.Score)
}

func TestPauseFreezesBoard(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)
	g.board.Fall[0][0] = 42
	g.phase = animatingPhase{}

	res := stepWith(g, core.ActionPause)
	assert.True(t, res.State.Paused)
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 42.0, g.board.Fall[0][0])

	res = stepWith(g, core.ActionPause)
	assert.False(t, res.State.Paused)
	assert.Equal(t, 34.0, g.board.Fall[0][0])
}

func TestResizeKeepsState(t *testing.T) {
	g := newTestGame(t, ModeEndless, oneMoveRows...)
	clickCell(g, Point{2, 0})

	g.Resize(30, 10)
	assert.True(t, g.State().Paused, "too small a window pauses the game")
	g.Step(core.NewInputFrame())

	g.Resize(100, 30)
	assert.False(t, g.State().Paused)
	assert.Equal(t, oneMoveRows, g.board.Rows())
	_, ok := g.Selection()
	assert.True(t, ok)
	assert.Equal(t, (100-boardW)/2, g.boardX)
}

func TestInitialBoardSettles(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rc := testRuntime
		rc.Seed = seed
		g := New()
		g.reset(rc, config.DefaultMatch3Config(), NewRandomSource(seed))

		for range 2000 {
			if g.Phase() == StateIdle {
				break
			}
			g.Step(core.NewInputFrame())
		}
		require.Equal(t, StateIdle, g.Phase(), "seed %d", seed)
		assert.False(t, g.board.HasMatch(), "seed %d", seed)
		assert.True(t, g.board.Stable(), "seed %d", seed)
		assert.Zero(t, g.State().Score%PointsPerMatch)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 900)
	dirs := []core.Action{core.ActionRight, core.ActionDown, core.ActionLeft, core.ActionUp}
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%7 == 0:
			inputs[i].Set(core.ActionConfirm)
		case i%3 == 0:
			inputs[i].Set(dirs[(i/3)%len(dirs)])
		}
	}

	run := func() Snapshot {
		g := NewBlitz()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345})
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	assert.Equal(t, run(), run())
}
