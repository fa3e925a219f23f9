package match3

// Resolve removes matched cells column by column. Surviving tiles slide
// down preserving their order and get a fall offset equal to the distance
// they moved; the cells left at the top are refilled from src with offsets
// that stack them above the board. The match mask is left as is.
func (b *Board) Resolve(src TileSource, tileSize int) {
	ts := float64(tileSize)
	for x := range BoardSize {
		write := BoardSize - 1
		for y := BoardSize - 1; y >= 0; y-- {
			if b.Matched[y][x] {
				continue
			}
			if y != write {
				b.Tiles[write][x] = b.Tiles[y][x]
				b.Fall[write][x] = float64(write-y) * ts
				b.Tiles[y][x] = TileEmpty
			}
			write--
		}

		for ; write >= 0; write-- {
			b.Tiles[write][x] = src.NextTile()
			b.Fall[write][x] = float64(write+1) * ts
		}
	}
}

// settle moves every falling tile speed pixels closer to its cell.
// It reports whether any tile is still above its resting place.
func (b *Board) settle(speed float64) bool {
	falling := false
	for y := range BoardSize {
		for x := range BoardSize {
			if b.Fall[y][x] <= 0 {
				continue
			}
			b.Fall[y][x] -= speed
			if b.Fall[y][x] < 0 {
				b.Fall[y][x] = 0
			}
			if b.Fall[y][x] > 0 {
				falling = true
			}
		}
	}
	return falling
}
