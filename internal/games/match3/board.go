package match3

import (
	"fmt"
	"math/rand"
	"strings"
)

// BoardSize is the width and height of the grid.
const BoardSize = 8

// Tile is the symbol held by one board cell.
type Tile byte

const (
	TileEmpty    Tile = ' '
	TileDiamond  Tile = '#'
	TileCircle   Tile = '@'
	TileSquare   Tile = '$'
	TileTriangle Tile = '%'
	TileHexagon  Tile = '&'
)

// TileKinds lists every tile a cell can hold during play.
var TileKinds = [...]Tile{TileDiamond, TileCircle, TileSquare, TileTriangle, TileHexagon}

// Valid reports whether t is one of the playable tile kinds.
func (t Tile) Valid() bool {
	switch t {
	case TileDiamond, TileCircle, TileSquare, TileTriangle, TileHexagon:
		return true
	}
	return false
}

// Point is a board coordinate. X is the column, Y the row (0 at the top).
type Point struct {
	X, Y int
}

// InBounds reports whether p lies on the board.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Adjacent reports whether a and b are 4-neighbours (Manhattan distance 1).
func Adjacent(a, b Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Board is the grid plus the per-cell match mask and fall offsets.
// All arrays are indexed [y][x].
type Board struct {
	Tiles   [BoardSize][BoardSize]Tile
	Matched [BoardSize][BoardSize]bool
	// Fall is the remaining upward displacement of each cell's tile in
	// virtual pixels while it drops into place.
	Fall [BoardSize][BoardSize]float64
}

// At returns the tile at p.
func (b *Board) At(p Point) Tile {
	return b.Tiles[p.Y][p.X]
}

// Swap exchanges the tiles at a and b. Adjacency is the caller's concern.
func (b *Board) Swap(a, c Point) {
	b.Tiles[a.Y][a.X], b.Tiles[c.Y][c.X] = b.Tiles[c.Y][c.X], b.Tiles[a.Y][a.X]
}

// Stable reports whether every tile has finished falling.
func (b *Board) Stable() bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if b.Fall[y][x] > 0 {
				return false
			}
		}
	}
	return true
}

// Rows returns the tile symbols one string per row, top first.
func (b *Board) Rows() []string {
	rows := make([]string, BoardSize)
	var sb strings.Builder
	for y := range BoardSize {
		sb.Reset()
		for x := range BoardSize {
			sb.WriteByte(byte(b.Tiles[y][x]))
		}
		rows[y] = sb.String()
	}
	return rows
}

// BoardFromRows builds a board from eight 8-symbol rows, top first.
// A space is an empty cell.
func BoardFromRows(rows ...string) (Board, error) {
	var b Board
	if len(rows) != BoardSize {
		return b, fmt.Errorf("match3: want %d rows, got %d", BoardSize, len(rows))
	}
	for y, row := range rows {
		if len(row) != BoardSize {
			return b, fmt.Errorf("match3: row %d has %d cells, want %d", y, len(row), BoardSize)
		}
		for x := range BoardSize {
			t := Tile(row[x])
			if t != TileEmpty && !t.Valid() {
				return b, fmt.Errorf("match3: row %d col %d: unknown tile %q", y, x, row[x])
			}
			b.Tiles[y][x] = t
		}
	}
	return b, nil
}

// TileSource supplies new tiles for the initial fill and for refills.
type TileSource interface {
	NextTile() Tile
}

// RandomSource draws tiles uniformly from a seeded generator.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a tile source seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// NextTile returns a uniformly random playable tile.
func (s *RandomSource) NextTile() Tile {
	return TileKinds[s.rng.Intn(len(TileKinds))]
}

// fill replaces every cell with a tile from src and clears all animation state.
func (b *Board) fill(src TileSource) {
	*b = Board{}
	for y := range BoardSize {
		for x := range BoardSize {
			b.Tiles[y][x] = src.NextTile()
		}
	}
}
