package eval

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

var allDirections = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// StableDiscs counts the discs of the colour that are considered stable.
//
// Corners are stable. The rest is computed as a fixed point: an edge disc becomes stable when an unbroken run of
// its own colour along the edge reaches a stable disc, and an interior disc becomes stable when such runs reach
// stable discs in at least StableDirections directions.
func StableDiscs(b *reversi.Board, c game.Colour) int {
	var stable [reversi.Cells]bool
	for _, m := range reversi.Corners {
		if b.At(m.Row, m.Col) == c {
			stable[m.Row*reversi.Size+m.Col] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < reversi.Cells; i++ {
			if b[i] != c || stable[i] {
				continue
			}
			if isStable(b, i/reversi.Size, i%reversi.Size, &stable) {
				stable[i] = true
				changed = true
			}
		}
	}

	var n int
	for _, s := range stable {
		if s {
			n++
		}
	}
	return n
}

func isStable(b *reversi.Board, row, col int, stable *[reversi.Cells]bool) bool {
	edge := row == 0 || row == reversi.Size-1 || col == 0 || col == reversi.Size-1
	if !edge {
		return anchored(b, row, col, allDirections[:], stable) >= StableDirections
	}

	var dirs [][2]int
	if row == 0 || row == reversi.Size-1 {
		dirs = append(dirs, [2]int{0, 1}, [2]int{0, -1})
	}
	if col == 0 || col == reversi.Size-1 {
		dirs = append(dirs, [2]int{1, 0}, [2]int{-1, 0})
	}
	return anchored(b, row, col, dirs, stable) > 0
}

// anchored counts the directions in which a run of the disc's colour reaches a stable disc.
func anchored(b *reversi.Board, row, col int, dirs [][2]int, stable *[reversi.Cells]bool) (n int) {
	c := b.At(row, col)
	for _, d := range dirs {
		r, cc := row+d[0], col+d[1]
		for r >= 0 && r < reversi.Size && cc >= 0 && cc < reversi.Size {
			if b.At(r, cc) != c {
				break
			}
			if stable[r*reversi.Size+cc] {
				n++
				break
			}
			r += d[0]
			cc += d[1]
		}
	}
	return n
}
