package match3

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderGrid(dst)
	g.renderTiles(dst)
	g.renderPopups(dst)

	dst.DrawTextCentered(g.boardY+boardH, g.Controls(), core.ColorGray)

	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH), core.ColorGray)
}

// renderHUD draws title, score and the mode line.
func (g *Game) renderHUD(dst *core.Screen) {
	title := "MATCH-3"
	if g.mode == ModeBlitz {
		title = "MATCH-3 BLITZ"
	}
	dst.DrawTextCentered(0, title, core.ColorBrightWhite)

	// Score grows wider while the pulse is active
	score := fmt.Sprintf("Score: %d", g.feedback.Total())
	scoreColor := core.ColorWhite
	if g.feedback.Pulse() > 1.05 {
		score = spaced(score)
		scoreColor = core.ColorBrightYellow
	}
	dst.DrawTextColored(g.boardX, 1, score, scoreColor)

	var info string
	infoColor := core.ColorWhite
	if g.mode == ModeBlitz {
		secs := int(math.Ceil(g.timeLeft))
		info = fmt.Sprintf("Time: %d:%02d", secs/60, secs%60)
		if secs <= 10 {
			infoColor = core.ColorBrightRed
		}
	} else {
		info = "Endless"
	}
	infoX := max(g.boardX+boardW-len(info), g.boardX)
	dst.DrawTextColored(infoX, 1, info, infoColor)

	if _, idle := g.phase.(idlePhase); !idle && !g.gameOver {
		dst.DrawTextCentered(2, "* cascade *", core.ColorCyan)
	}
}

// spaced puts a space between every rune of s.
func spaced(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// renderGrid draws the 8x8 grid, then highlights the hint, cursor and selection.
func (g *Game) renderGrid(dst *core.Screen) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := g.boardX + x*cellWidth
			py := g.boardY + y*cellHeight

			dst.SetColored(px, py, gridJoint(x, y), core.ColorDarkGray)

			// Draw horizontal line to the right
			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorDarkGray)
				}
			}

			// Draw vertical line down
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorDarkGray)
				}
			}
		}
	}

	if g.hintLeft > 0 {
		g.outlineCell(dst, g.hint.A, core.ColorBrightGreen)
		g.outlineCell(dst, g.hint.B, core.ColorBrightGreen)
	}
	if !g.gameOver {
		g.outlineCell(dst, g.cursor, core.ColorCyan)
	}
	if g.hasSelection {
		g.outlineCell(dst, g.selected, core.ColorYellow)
	}
}

func gridJoint(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == BoardSize:
		return '┐'
	case y == BoardSize && x == 0:
		return '└'
	case y == BoardSize && x == BoardSize:
		return '┘'
	case y == 0:
		return '┬'
	case y == BoardSize:
		return '┴'
	case x == 0:
		return '├'
	case x == BoardSize:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) outlineCell(dst *core.Screen, p Point, c core.Color) {
	dst.DrawBox(core.NewRect(g.boardX+p.X*cellWidth, g.boardY+p.Y*cellHeight, cellWidth+1, cellHeight+1), c)
}

// tileGlyph returns the symbol and colour a tile is drawn with.
func tileGlyph(t Tile) (rune, core.Color) {
	switch t {
	case TileDiamond:
		return '◆', core.ColorRed
	case TileCircle:
		return '●', core.ColorBlue
	case TileSquare:
		return '■', core.ColorGreen
	case TileTriangle:
		return '▲', core.ColorYellow
	case TileHexagon:
		return '⬢', core.ColorMagenta
	default:
		return ' ', core.ColorDefault
	}
}

// renderTiles draws every tile, lifted by its fall offset.
// Tiles still above the board are not drawn.
func (g *Game) renderTiles(dst *core.Screen) {
	ts := float64(g.cfg.Board.TileSize)
	for y := range BoardSize {
		for x := range BoardSize {
			t := g.board.Tiles[y][x]
			if t == TileEmpty {
				continue
			}

			lift := int(math.Round(g.board.Fall[y][x] / ts * cellHeight))
			cx := g.boardX + x*cellWidth + 1
			cy := g.boardY + y*cellHeight + 1 - lift
			if cy <= g.boardY {
				continue
			}

			glyph, color := tileGlyph(t)
			if g.board.Matched[y][x] {
				dst.SetColored(cx, cy, '[', core.ColorBrightYellow)
				dst.SetColored(cx+1, cy, glyph, core.ColorBrightYellow)
				dst.SetColored(cx+2, cy, ']', core.ColorBrightYellow)
				continue
			}
			dst.SetColored(cx+1, cy, glyph, color)
		}
	}
}

// renderPopups draws the floating score labels, fading with age.
func (g *Game) renderPopups(dst *core.Screen) {
	ts := float64(g.cfg.Board.TileSize)
	life := g.cfg.Feedback.PopupLifetime
	for _, p := range g.feedback.Popups() {
		label := "+" + strconv.Itoa(p.Amount)
		col := g.boardX + int(p.X/ts*cellWidth) - len(label)/2
		row := g.boardY + int(math.Floor(p.Y/ts*cellHeight))
		if row < 0 {
			continue
		}

		color := core.ColorGray
		switch a := p.Alpha(life); {
		case a > 0.66:
			color = core.ColorBrightYellow
		case a > 0.33:
			color = core.ColorYellow
		}
		dst.DrawTextColored(col, row, label, color)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	centerX := g.boardX + boardW/2
	centerY := g.boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		scoreStr := fmt.Sprintf("Score: %d", g.feedback.Total())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", g.overReason, scoreStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Click/Enter: swap  ?: hint  P: pause  Q: quit"
}
