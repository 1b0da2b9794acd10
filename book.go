package othello

import (
	"strings"

	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/pkg/errors"
)

// ParseBook parses an opening line written as consecutive moves, e.g. "F5D6C3".
func ParseBook(s string) ([]reversi.Move, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, errors.Errorf("Opening book %q has an odd length", s)
	}
	retVal := make([]reversi.Move, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		m, err := reversi.ParseMove(s[i : i+2])
		if err != nil {
			return nil, errors.WithMessagef(err, "Opening book move %d", i/2)
		}
		retVal = append(retVal, m)
	}
	return retVal, nil
}

// bookMove returns the book move for the position. The book is indexed by the number of half-moves played,
// counted from the discs on the board, and a move is only returned if it is legal.
func bookMove(book []reversi.Move, b *reversi.Board, p game.Player) (reversi.Move, bool) {
	ply := b.Fingerprint().Discs() - 4
	if ply < 0 || ply >= len(book) {
		return reversi.Move{}, false
	}
	m := book[ply]
	if !b.IsLegal(m.Row, m.Col, p) {
		return reversi.Move{}, false
	}
	return m, true
}
