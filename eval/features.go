package eval

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"gorgonia.org/vecf32"
)

var diagonals = [2][reversi.Size]reversi.Move{
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}, {Row: 4, Col: 4}, {Row: 5, Col: 5}, {Row: 6, Col: 6}, {Row: 7, Col: 7}},
	{{Row: 0, Col: 7}, {Row: 1, Col: 6}, {Row: 2, Col: 5}, {Row: 3, Col: 4}, {Row: 4, Col: 3}, {Row: 5, Col: 2}, {Row: 6, Col: 1}, {Row: 7, Col: 0}},
}

// dangerCells maps the cells next to each corner to that corner.
var dangerCells = []struct{ cell, corner reversi.Move }{
	{reversi.Move{Row: 0, Col: 1}, reversi.Move{Row: 0, Col: 0}}, {reversi.Move{Row: 1, Col: 0}, reversi.Move{Row: 0, Col: 0}}, {reversi.Move{Row: 1, Col: 1}, reversi.Move{Row: 0, Col: 0}},
	{reversi.Move{Row: 0, Col: 6}, reversi.Move{Row: 0, Col: 7}}, {reversi.Move{Row: 1, Col: 6}, reversi.Move{Row: 0, Col: 7}}, {reversi.Move{Row: 1, Col: 7}, reversi.Move{Row: 0, Col: 7}},
	{reversi.Move{Row: 6, Col: 0}, reversi.Move{Row: 7, Col: 0}}, {reversi.Move{Row: 6, Col: 1}, reversi.Move{Row: 7, Col: 0}}, {reversi.Move{Row: 7, Col: 1}, reversi.Move{Row: 7, Col: 0}},
	{reversi.Move{Row: 6, Col: 6}, reversi.Move{Row: 7, Col: 7}}, {reversi.Move{Row: 6, Col: 7}, reversi.Move{Row: 7, Col: 7}}, {reversi.Move{Row: 7, Col: 6}, reversi.Move{Row: 7, Col: 7}},
}

// DangerCorner returns the corner a cell is adjacent to, if it is one of the X or C squares.
func DangerCorner(m reversi.Move) (corner reversi.Move, ok bool) {
	for _, d := range dangerCells {
		if d.cell == m {
			return d.corner, true
		}
	}
	return reversi.Move{}, false
}

func ratio(mine, theirs int) float32 {
	if mine+theirs == 0 {
		return 0
	}
	return float32(mine-theirs) / float32(mine+theirs)
}

func material(b *reversi.Board, p game.Player) float32 {
	return ratio(b.Count(game.Colour(p)), b.Count(game.Colour(p.Opponent())))
}

func positional(b *reversi.Board, p game.Player) float32 {
	encoded := EncodeTwoPlayerBoard(b, p, nil)
	vecf32.Mul(encoded, positionTable.Float32s())
	return vecf32.Sum(encoded) / positionNorm
}

func mobility(b *reversi.Board, p game.Player) float32 {
	mine := len(b.LegalMoves(p))
	theirs := len(b.LegalMoves(p.Opponent()))
	switch {
	case mine == 0 && theirs == 0:
		return 0
	case theirs == 0:
		return 1
	case mine == 0:
		return -1
	}
	return ratio(mine, theirs)
}

func stability(b *reversi.Board, p game.Player) float32 {
	return ratio(StableDiscs(b, game.Colour(p)), StableDiscs(b, game.Colour(p.Opponent())))
}

func corners(b *reversi.Board, p game.Player) float32 {
	own, opp := game.Colour(p), game.Colour(p.Opponent())
	var mine, theirs int
	for _, c := range reversi.Corners {
		switch b.At(c.Row, c.Col) {
		case own:
			mine++
		case opp:
			theirs++
		}
	}
	switch {
	case mine == 4:
		return 1
	case theirs == 4:
		return -1
	}
	return float32(mine-theirs) / 4
}

func edges(b *reversi.Board, p game.Player) float32 {
	own, opp := game.Colour(p), game.Colour(p.Opponent())
	var mine, theirs int
	for i := 0; i < reversi.Cells; i++ {
		m := reversi.Move{Row: i / reversi.Size, Col: i % reversi.Size}
		if !m.IsEdge() {
			continue
		}
		switch b.At(m.Row, m.Col) {
		case own:
			mine++
		case opp:
			theirs++
		}
	}
	return float32(mine-theirs) / 24
}

func pattern(b *reversi.Board, p game.Player) (score float32) {
	own, opp := game.Colour(p), game.Colour(p.Opponent())
	for _, diag := range diagonals {
		var mine, theirs int
		for _, m := range diag {
			switch b.At(m.Row, m.Col) {
			case own:
				mine++
			case opp:
				theirs++
			}
		}
		switch {
		case mine > theirs:
			score += 0.1
		case theirs > mine:
			score -= 0.1
		}
	}
	return score
}

// parity assumes Black moved first: with an even number of empty cells left the tempo
// favours White, with an odd number it favours Black.
func parity(b *reversi.Board, p game.Player, phase reversi.Phase) float32 {
	empty := b.Empty()
	if phase != reversi.Late || empty >= 10 {
		return 0
	}
	even := empty%2 == 0
	if (p == reversi.Black && even) || (p == reversi.White && !even) {
		return -0.1
	}
	return 0.1
}

// dangerAdjustment penalises owning, and rewards the opponent owning, a cell next to an empty corner.
func dangerAdjustment(b *reversi.Board, p game.Player) (adj float32) {
	own, opp := game.Colour(p), game.Colour(p.Opponent())
	for _, d := range dangerCells {
		if b.At(d.corner.Row, d.corner.Col) != game.None {
			continue
		}
		switch b.At(d.cell.Row, d.cell.Col) {
		case own:
			adj -= 0.05
		case opp:
			adj += 0.05
		}
	}
	return adj
}
