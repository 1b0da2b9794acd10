package othello

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

// ApplyMove plays the move on a copy of the board. The board passed in is never modified.
func ApplyMove(b reversi.Board, row, col int, p game.Player) (reversi.Board, error) {
	next := b.Clone()
	if !next.Apply(row, col, p) {
		return b, reversi.IllegalMove(p, reversi.Move{Row: row, Col: col})
	}
	return next, nil
}

// LegalMoves lists the player's legal moves in row-major order.
func LegalMoves(b reversi.Board, p game.Player) []reversi.Move { return b.LegalMoves(p) }

// IsTerminal returns true if neither player can move.
func IsTerminal(b reversi.Board) bool { return b.IsTerminal() }

// Winner returns the winner of a finished game, reversi.Tie for a draw. ok is false if the game is not over.
func Winner(b reversi.Board) (winner game.Player, ok bool) { return b.Winner() }
