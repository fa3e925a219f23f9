package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeEndless Mode = "endless" // play until no swap can match
	ModeBlitz   Mode = "blitz"   // play against the clock
)

// Layout constants, in screen cells.
const (
	cellWidth  = 5 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1

	minScreenW = boardW + 4
	minScreenH = hudHeight + 1 + boardH + 1
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// Game is one match-3 session: board, state machine, feedback and input.
type Game struct {
	mode Mode
	cfg  config.Match3Config
	src  TileSource
	tick uint64
	dt   float64

	board    Board
	phase    phase
	feedback *Feedback

	selected     Point
	hasSelection bool
	cursor       Point

	hint     Move
	hintLeft float64

	timeLeft float64 // blitz only

	// Screen dimensions and board origin
	screenW int
	screenH int
	boardX  int
	boardY  int

	// Game state flags
	gameOver   bool
	overReason string
	paused     bool
	tooSmall   bool

	events []core.Event
}

// New creates a new endless match-3 game.
func New() *Game {
	return &Game{mode: ModeEndless}
}

// NewBlitz creates a new timed match-3 game.
func NewBlitz() *Game {
	return &Game{mode: ModeBlitz}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_blitz", func() registry.Game {
		return NewBlitz()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeBlitz {
		return "match3_blitz"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBlitz {
		return "Match-3 Blitz"
	}
	return "Match-3"
}

// ScoreOnQuit reports whether a quit mid-game still records the score.
// Endless games have no other ending the player controls.
func (g *Game) ScoreOnQuit() bool {
	return g.mode == ModeEndless
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}
	if difficultyPreset != "" {
		config.ApplyMatch3Preset(&cfg, difficultyPreset)
	}
	g.reset(rc, cfg, NewRandomSource(rc.Seed))
}

func (g *Game) reset(rc core.RuntimeConfig, cfg config.Match3Config, src TileSource) {
	g.cfg = cfg
	g.src = src
	g.dt = rc.FrameTime()
	g.tick = 0
	g.feedback = NewFeedback(cfg.Feedback)
	g.events = nil

	g.hasSelection = false
	g.cursor = Point{X: BoardSize / 2, Y: BoardSize / 2}
	g.hintLeft = 0
	g.timeLeft = cfg.Blitz.Duration

	g.gameOver = false
	g.overReason = ""
	g.paused = false

	g.Resize(rc.ScreenW, rc.ScreenH)

	g.board.fill(g.src)
	g.phase = idlePhase{}
	if g.detect() {
		g.resolve()
	} else {
		g.onSettled()
	}
}

// Resize re-lays out the board for a new screen size, keeping game state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
	g.boardX = (w - boardW) / 2
	g.boardY = hudHeight + 1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		// Restart after game over is handled by the platform
		return g.result()
	}

	g.handleInput(in)
	g.advancePhase(g.dt)
	g.feedback.Update(g.dt)
	if g.hintLeft > 0 {
		g.hintLeft -= g.dt
	}
	g.updateTimer()

	return g.result()
}

func (g *Game) result() core.StepResult {
	events := g.events
	g.events = nil
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// handleInput moves the cursor and, while idle, applies hint and click input.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, BoardSize-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, BoardSize-1)

	if _, idle := g.phase.(idlePhase); !idle {
		return
	}

	if in.Has(core.ActionHint) {
		if m, ok := FindMove(&g.board); ok {
			g.hint = m
			g.hintLeft = g.cfg.Hints.Duration
		}
	}

	if sx, sy, ok := in.Clicked(); ok {
		if p, ok := g.cellAt(sx, sy); ok {
			g.cursor = p
			g.click(p)
		}
		return
	}
	if in.Has(core.ActionConfirm) {
		g.click(g.cursor)
	}
}

// click applies one tile click. The first click selects; the second
// always clears the selection and swaps if the cells are adjacent.
// A swap that creates no triple is reverted.
func (g *Game) click(p Point) {
	if !g.hasSelection {
		g.selected = p
		g.hasSelection = true
		return
	}

	sel := g.selected
	g.hasSelection = false
	if !Adjacent(sel, p) {
		return
	}

	g.hintLeft = 0
	g.board.Swap(sel, p)
	if g.detect() {
		g.resolve()
		return
	}
	g.board.Swap(sel, p)
	g.emit(core.EventSwapRejected)
}

// cellAt maps a screen cell to a board cell. Inner grid lines belong to
// the cell on their left or above them.
func (g *Game) cellAt(sx, sy int) (Point, bool) {
	rx := sx - g.boardX
	ry := sy - g.boardY
	if rx < 1 || rx >= boardW || ry < 1 || ry >= boardH {
		return Point{}, false
	}
	return Point{X: (rx - 1) / cellWidth, Y: (ry - 1) / cellHeight}, true
}

// onSettled runs whenever the board comes to rest.
func (g *Game) onSettled() {
	if _, ok := FindMove(&g.board); !ok {
		g.endGame("No moves left")
	}
}

// updateTimer counts the blitz clock down. Time running out only ends
// the game once the board is at rest.
func (g *Game) updateTimer() {
	if g.mode != ModeBlitz || g.gameOver {
		return
	}
	if g.timeLeft > 0 {
		g.timeLeft -= g.dt
		if g.timeLeft < 0 {
			g.timeLeft = 0
		}
	}
	if _, idle := g.phase.(idlePhase); idle && g.timeLeft <= 0 {
		g.endGame("Time's up")
	}
}

func (g *Game) endGame(reason string) {
	g.gameOver = true
	g.overReason = reason
	g.hasSelection = false
	g.hintLeft = 0
	g.emit(core.EventGameOver)
}

// Phase returns the board state machine's current state.
func (g *Game) Phase() TileState {
	return g.phase.state()
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

// Selection returns the selected cell, if any.
func (g *Game) Selection() (Point, bool) {
	return g.selected, g.hasSelection
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.feedback.Total(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}
