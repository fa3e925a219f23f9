package match3

// Axis is the direction of a triple.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Triple is one scored run of three equal tiles starting at Start
// and extending right (Horizontal) or down (Vertical).
type Triple struct {
	Start Point
	Axis  Axis
}

// Cells returns the three cells covered by the triple.
func (t Triple) Cells() [3]Point {
	dx, dy := 1, 0
	if t.Axis == Vertical {
		dx, dy = 0, 1
	}
	return [3]Point{
		t.Start,
		{X: t.Start.X + dx, Y: t.Start.Y + dy},
		{X: t.Start.X + 2*dx, Y: t.Start.Y + 2*dy},
	}
}

// Detect recomputes the match mask and returns every triple on the board,
// rows first (top to bottom) and then columns (left to right).
// Overlapping triples are all reported, so a run of four yields two.
func (b *Board) Detect() []Triple {
	b.Matched = [BoardSize][BoardSize]bool{}

	var triples []Triple
	for y := range BoardSize {
		for x := 0; x < BoardSize-2; x++ {
			t := b.Tiles[y][x]
			if t.Valid() && t == b.Tiles[y][x+1] && t == b.Tiles[y][x+2] {
				b.Matched[y][x], b.Matched[y][x+1], b.Matched[y][x+2] = true, true, true
				triples = append(triples, Triple{Start: Point{X: x, Y: y}, Axis: Horizontal})
			}
		}
	}
	for x := range BoardSize {
		for y := 0; y < BoardSize-2; y++ {
			t := b.Tiles[y][x]
			if t.Valid() && t == b.Tiles[y+1][x] && t == b.Tiles[y+2][x] {
				b.Matched[y][x], b.Matched[y+1][x], b.Matched[y+2][x] = true, true, true
				triples = append(triples, Triple{Start: Point{X: x, Y: y}, Axis: Vertical})
			}
		}
	}
	return triples
}

// HasMatch reports whether any triple exists without touching the mask.
func (b *Board) HasMatch() bool {
	for y := range BoardSize {
		for x := 0; x < BoardSize-2; x++ {
			t := b.Tiles[y][x]
			if t.Valid() && t == b.Tiles[y][x+1] && t == b.Tiles[y][x+2] {
				return true
			}
		}
	}
	for x := range BoardSize {
		for y := 0; y < BoardSize-2; y++ {
			t := b.Tiles[y][x]
			if t.Valid() && t == b.Tiles[y+1][x] && t == b.Tiles[y+2][x] {
				return true
			}
		}
	}
	return false
}

// Move is a swap of two adjacent cells.
type Move struct {
	A, B Point
}

// FindMove returns the first swap, scanning rows top to bottom, that
// would create at least one triple.
func FindMove(b *Board) (Move, bool) {
	probe := *b
	for y := range BoardSize {
		for x := range BoardSize {
			a := Point{X: x, Y: y}
			for _, c := range [2]Point{{X: x + 1, Y: y}, {X: x, Y: y + 1}} {
				if !c.InBounds() || probe.At(a) == probe.At(c) {
					continue
				}
				probe.Swap(a, c)
				found := probe.HasMatch()
				probe.Swap(a, c)
				if found {
					return Move{A: a, B: c}, true
				}
			}
		}
	}
	return Move{}, false
}
