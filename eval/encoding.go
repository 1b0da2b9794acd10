package eval

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

// EncodeTwoPlayerBoard encodes the player's discs as 1 and the opponent's discs as -1.
func EncodeTwoPlayerBoard(b *reversi.Board, p game.Player, prealloc []float32) []float32 {
	if len(prealloc) != reversi.Cells {
		prealloc = make([]float32, reversi.Cells)
	}
	own := game.Colour(p)
	opp := game.Colour(p.Opponent())
	for i, c := range b {
		switch c {
		case own:
			prealloc[i] = 1
		case opp:
			prealloc[i] = -1
		default:
			prealloc[i] = 0
		}
	}
	return prealloc
}
