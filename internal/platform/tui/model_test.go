package tui

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// fakeGame is a scriptable game: tests set score, events and game over.
type fakeGame struct {
	id      string
	endless bool

	score    int
	gameOver bool
	paused   bool
	events   []core.Event

	resets  int
	resized [2]int
	inputs  []core.InputFrame
}

func (g *fakeGame) ID() string    { return g.id }
func (g *fakeGame) Title() string { return "Fake " + g.id }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.score = 0
	g.gameOver = false
	g.paused = false
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	events := g.events
	g.events = nil
	return core.StepResult{State: g.State(), Events: events}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "score "+g.id)
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}

func (g *fakeGame) Resize(w, h int)   { g.resized = [2]int{w, h} }
func (g *fakeGame) ScoreOnQuit() bool { return g.endless }

func init() {
	registry.Register("zz_fake", func() registry.Game { return &fakeGame{id: "zz_fake", endless: true} })
}

// recorder counts sound cues.
type recorder struct {
	matches, rejects int
	music            bool
}

func (r *recorder) PlayMatch()  { r.matches++ }
func (r *recorder) PlayReject() { r.rejects++ }
func (r *recorder) StartMusic() { r.music = true }
func (r *recorder) StopMusic()  { r.music = false }
func (r *recorder) Close()      {}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, g *fakeGame, store *storage.Store, rec *recorder) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1, Player: "alice"}
	m := NewModel(g, store, cfg, WithAudio(rec))
	m.Init()
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func tick(m Model) Model {
	m, _ = send(m, TickMsg{At: time.Now(), Gen: m.gen})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelMousePressReachesGame(t *testing.T) {
	g := &fakeGame{id: "zz_fake"}
	m := newTestModel(t, g, nil, &recorder{})

	m, _ = send(m, tea.MouseMsg{X: 7, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(m)
	m = tick(m)

	require.Len(t, g.inputs, 2)
	x, y, ok := g.inputs[0].Clicked()
	assert.True(t, ok)
	assert.Equal(t, [2]int{7, 9}, [2]int{x, y})

	_, _, ok = g.inputs[1].Clicked()
	assert.False(t, ok, "input is cleared after each tick")
}

func TestModelKeysBecomeActions(t *testing.T) {
	g := &fakeGame{id: "zz_fake"}
	m := newTestModel(t, g, nil, &recorder{})

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(m, keyRunes("?"))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	tick(m)

	require.Len(t, g.inputs, 1)
	in := g.inputs[0]
	assert.True(t, in.Has(core.ActionLeft))
	assert.True(t, in.Has(core.ActionHint))
	assert.True(t, in.Has(core.ActionConfirm))
}

func TestModelPlaysEventSounds(t *testing.T) {
	g := &fakeGame{id: "zz_fake"}
	rec := &recorder{}
	m := newTestModel(t, g, nil, rec)
	assert.True(t, rec.music)

	g.events = []core.Event{core.EventMatch, core.EventMatch, core.EventSwapRejected}
	m = tick(m)
	assert.Equal(t, 1, rec.matches)
	assert.Equal(t, 1, rec.rejects)

	g.gameOver = true
	g.events = []core.Event{core.EventGameOver}
	tick(m)
	assert.False(t, rec.music, "music stops on game over")
}

func TestModelSavesScoreOnceOnGameOver(t *testing.T) {
	store := testStore(t)
	g := &fakeGame{id: "zz_fake"}
	m := newTestModel(t, g, store, &recorder{})

	g.score = 120
	g.gameOver = true
	m = tick(m)
	m = tick(m)

	scores, err := store.TopScores("zz_fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 120, scores[0].Score)
	assert.Equal(t, "alice", scores[0].Player)

	// Restart then finish again: a second record
	m, _ = send(m, keyRunes("r"))
	m = tick(m)
	assert.Equal(t, 2, g.resets)
	assert.False(t, m.State().GameOver)

	g.score = 30
	g.gameOver = true
	tick(m)

	scores, err = store.TopScores("zz_fake", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := testStore(t)
	g := &fakeGame{id: "zz_fake"}
	m := newTestModel(t, g, store, &recorder{})

	g.gameOver = true
	tick(m)

	scores, err := store.TopScores("zz_fake", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestModelQuitSavesRunningScore(t *testing.T) {
	tests := []struct {
		name    string
		endless bool
		want    int
	}{
		{"endless records on quit", true, 1},
		{"timed discards on quit", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testStore(t)
			g := &fakeGame{id: "zz_fake", endless: tt.endless}
			m := newTestModel(t, g, store, &recorder{})

			g.score = 50
			m = tick(m)
			m, cmd := send(m, keyRunes("q"))

			assert.True(t, m.IsQuitting())
			assert.NotNil(t, cmd)

			scores, err := store.TopScores("zz_fake", 10)
			require.NoError(t, err)
			assert.Len(t, scores, tt.want)
		})
	}
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	g := &fakeGame{id: "zz_fake"}
	m := newTestModel(t, g, nil, &recorder{})
	m = tick(m)

	m, _ = send(m, keyRunes("b"))
	assert.False(t, m.BackToMenu(), "back ignored while playing")
	m.inputFrame.Clear()

	m, _ = send(m, keyRunes("p"))
	m = tick(m)
	require.True(t, m.State().Paused)

	m, cmd := send(m, keyRunes("b"))
	assert.True(t, m.BackToMenu())
	assert.NotNil(t, cmd)
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{id: "zz_fake"}
	m := newTestModel(t, g, nil, &recorder{})
	require.Equal(t, 1, g.resets)

	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 1, g.resets)
	assert.Equal(t, [2]int{100, 40}, g.resized)
	assert.Equal(t, 100, m.screen.Width())
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	g := &fakeGame{id: "zz_fake"}
	m := newTestModel(t, g, nil, &recorder{})

	m, cmd := send(m, TickMsg{At: time.Now(), Gen: m.gen + 1000})
	assert.Nil(t, cmd)
	assert.Empty(t, g.inputs)

	_, cmd = send(m, TickMsg{At: time.Now(), Gen: m.gen})
	assert.NotNil(t, cmd)
	assert.Len(t, g.inputs, 1)
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorDarkGray)
	s.SetColored(5, 1, '◆', core.ColorBrightYellow)

	out := ansiSeq.ReplaceAllString(RenderScreen(s), "")
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, s.Row(0), lines[0])
	assert.Equal(t, s.Row(1), lines[1])
}

func TestSessionMenuGameMenu(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Player: "bob"}
	var sm tea.Model = NewSessionModel(nil, cfg, nil)

	update := func(msg tea.Msg) tea.Cmd {
		var cmd tea.Cmd
		sm, cmd = sm.Update(msg)
		return cmd
	}

	// Move the cursor to the fake game, which sorts last
	for range registry.List() {
		update(tea.KeyMsg{Type: tea.KeyDown})
	}
	update(tea.KeyMsg{Type: tea.KeyEnter})

	s := sm.(SessionModel)
	require.Equal(t, screenGame, s.active)
	assert.Equal(t, "zz_fake", s.game.game.ID())

	update(keyRunes("p"))
	update(TickMsg{At: time.Now(), Gen: sm.(SessionModel).game.gen})
	cmd := update(keyRunes("b"))

	s = sm.(SessionModel)
	assert.Equal(t, screenMenu, s.active)
	assert.False(t, s.quitting)
	assert.Nil(t, cmd)
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 90, ScreenH: 30, TickRate: 60}
	var sm tea.Model = NewSessionModel(testStore(t), cfg, nil)

	sm, _ = sm.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScores, sm.(SessionModel).active)
	assert.Contains(t, sm.View(), "HIGH SCORES")

	sm, _ = sm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, sm.(SessionModel).active)

	sm, cmd := sm.Update(keyRunes("q"))
	assert.True(t, sm.(SessionModel).quitting)
	assert.NotNil(t, cmd)
}
