package reversi

import (
	"fmt"

	"github.com/othellobot/othello/game"
	"github.com/pkg/errors"
)

// ErrMalformedBoard is the cause of every error returned for a snapshot that is not an 8x8 grid of valid cells.
var ErrMalformedBoard = errors.New("malformed board")

type moveError game.PlayerMove

func (err moveError) Error() string {
	pm := game.PlayerMove(err)
	if m, ok := MoveFromSingle(pm.Single); ok {
		return fmt.Sprintf("Unable to make %v@%v", pm.Player, m)
	}
	return fmt.Sprintf("Unable to make %v", pm)
}

// IllegalMove returns the error reported when a player attempts a move that is not legal.
func IllegalMove(p game.Player, m Move) error { return moveError{Player: p, Single: m.Single()} }

// IsIllegalMove returns true if the cause of err is an illegal move.
func IsIllegalMove(err error) bool {
	_, ok := errors.Cause(err).(moveError)
	return ok
}

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedBoard, format, args...)
}
