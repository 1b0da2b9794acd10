package reversi

import (
	"strings"
	"unicode"

	"github.com/othellobot/othello/game"
)

// FromGrid builds a board from a row-major grid. The grid must be exactly 8x8 and only hold None, Black or White.
func FromGrid(grid [][]game.Colour) (Board, error) {
	var b Board
	if len(grid) != Size {
		return b, malformed("expected %d rows, got %d", Size, len(grid))
	}
	for r, row := range grid {
		if len(row) != Size {
			return b, malformed("row %d: expected %d cells, got %d", r, Size, len(row))
		}
		for c, v := range row {
			switch v {
			case game.None, game.Black, game.White:
				b.Set(r, c, v)
			default:
				return b, malformed("row %d col %d: invalid cell state %d", r, c, int32(v))
			}
		}
	}
	return b, nil
}

// FromCells builds a board from a grid of cell names. Accepted names are
// "black", "white", "empty" (any case) and the single characters understood by ParseBoard.
func FromCells(cells [][]string) (Board, error) {
	var b Board
	if len(cells) != Size {
		return b, malformed("expected %d rows, got %d", Size, len(cells))
	}
	for r, row := range cells {
		if len(row) != Size {
			return b, malformed("row %d: expected %d cells, got %d", r, Size, len(row))
		}
		for c, name := range row {
			v, ok := cellFromName(name)
			if !ok {
				return b, malformed("row %d col %d: invalid cell %q", r, c, name)
			}
			b.Set(r, c, v)
		}
	}
	return b, nil
}

// ParseBoard parses 64 cell characters in row-major order. Whitespace and the
// frame characters printed by Board.Format are ignored.
//	X, x, B, b are black
//	O, o, W, w are white
//	., -, _, · are empty
func ParseBoard(s string) (Board, error) {
	var b Board
	var i int
	for _, r := range s {
		if unicode.IsSpace(r) || r == '⎢' || r == '⎥' {
			continue
		}
		v, ok := cellFromRune(r)
		if !ok {
			return b, malformed("invalid cell %q at position %d", r, i)
		}
		if i >= Cells {
			return b, malformed("more than %d cells", Cells)
		}
		b[i] = v
		i++
	}
	if i != Cells {
		return b, malformed("expected %d cells, got %d", Cells, i)
	}
	return b, nil
}

func cellFromName(name string) (game.Colour, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black":
		return game.Black, true
	case "white":
		return game.White, true
	case "empty":
		return game.None, true
	}
	rs := []rune(strings.TrimSpace(name))
	if len(rs) == 1 {
		return cellFromRune(rs[0])
	}
	return game.None, false
}

func cellFromRune(r rune) (game.Colour, bool) {
	switch r {
	case 'X', 'x', 'B', 'b':
		return game.Black, true
	case 'O', 'o', 'W', 'w':
		return game.White, true
	case '.', '-', '_', '·':
		return game.None, true
	}
	return game.None, false
}
