package reversi

import (
	"fmt"
	"strings"
	"testing"

	"github.com/othellobot/othello/game"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameApplyUndo(t *testing.T) {
	assert := assert.New(t)
	g := NewGame()
	start := g.Hash()

	assert.False(g.Check(game.PlayerMove{Player: Black, Single: Pass}), "cannot pass with moves available")
	assert.False(g.Check(game.PlayerMove{Player: Black, Single: Resign}))

	illegal := game.PlayerMove{Player: Black, Single: Move{0, 0}.Single()}
	g.Apply(illegal)
	assert.Equal(0, g.MoveNumber(), "illegal moves leave the game unchanged")

	f5 := game.PlayerMove{Player: Black, Single: Move{4, 5}.Single()}
	g.Apply(f5)
	assert.Equal(1, g.MoveNumber())
	assert.Equal(White, g.ToMove())
	assert.True(f5.Eq(g.LastMove()))
	assert.Equal(float32(4), g.Score(Black))
	assert.NotEqual(start, g.Hash())

	cl := g.Clone().(*Game)
	assert.True(g.Eq(cl))

	g.UndoLastMove()
	assert.Equal(0, g.MoveNumber())
	assert.Equal(Black, g.ToMove())
	assert.Equal(New(), g.Current())
	assert.Equal(start, g.Hash())
	assert.Equal(1, cl.MoveNumber(), "clones are independent")
}

func TestGamePass(t *testing.T) {
	assert := assert.New(t)
	b, err := ParseBoard(`
		X O . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .`)
	require.NoError(t, err)
	g := NewGameFrom(b, White)
	pass := game.PlayerMove{Player: White, Single: Pass}
	assert.True(g.Check(pass))
	g.Apply(pass)
	assert.Equal(1, g.Passes())
	assert.Equal(Black, g.ToMove())

	g.Apply(game.PlayerMove{Player: Black, Single: Move{0, 2}.Single()})
	assert.Equal(0, g.Passes())
	ended, winner := g.Ended()
	assert.True(ended)
	assert.Equal(Black, winner)
}

func TestParseBoardErrors(t *testing.T) {
	_, err := ParseBoard(strings.Repeat(".", 63))
	require.Error(t, err)
	assert.Equal(t, ErrMalformedBoard, errors.Cause(err))

	_, err = ParseBoard(strings.Repeat(".", 65))
	assert.Equal(t, ErrMalformedBoard, errors.Cause(err))

	_, err = ParseBoard(strings.Repeat(".", 63) + "Z")
	assert.Equal(t, ErrMalformedBoard, errors.Cause(err))

	b := New()
	parsed, err := ParseBoard(fmt.Sprintf("%s", b))
	require.NoError(t, err)
	assert.Equal(t, b, parsed, "boards round trip through their printed form")
}

func TestFromGrid(t *testing.T) {
	grid := make([][]game.Colour, Size)
	for i := range grid {
		grid[i] = make([]game.Colour, Size)
	}
	grid[0][0] = game.Black
	b, err := FromGrid(grid)
	require.NoError(t, err)
	assert.Equal(t, game.Black, b.At(0, 0))

	grid[3][3] = game.Colour(7)
	_, err = FromGrid(grid)
	assert.Equal(t, ErrMalformedBoard, errors.Cause(err))

	_, err = FromGrid(grid[:7])
	assert.Equal(t, ErrMalformedBoard, errors.Cause(err))
}

func TestFromCells(t *testing.T) {
	cells := make([][]string, Size)
	for i := range cells {
		cells[i] = []string{"empty", "empty", "empty", "empty", "empty", "empty", "empty", "empty"}
	}
	cells[2][5] = "Black"
	cells[5][2] = "white"
	b, err := FromCells(cells)
	require.NoError(t, err)
	assert.Equal(t, game.Black, b.At(2, 5))
	assert.Equal(t, game.White, b.At(5, 2))

	cells[7] = cells[7][:7]
	_, err = FromCells(cells)
	assert.Equal(t, ErrMalformedBoard, errors.Cause(err))

	cells[7] = []string{"empty", "empty", "empty", "empty", "empty", "empty", "empty", "red"}
	_, err = FromCells(cells)
	assert.Equal(t, ErrMalformedBoard, errors.Cause(err))
}

func TestIllegalMoveError(t *testing.T) {
	err := errors.WithMessage(IllegalMove(Black, Move{0, 0}), "apply")
	assert.True(t, IsIllegalMove(err))
	assert.Contains(t, err.Error(), "A1")
	assert.False(t, IsIllegalMove(ErrMalformedBoard))
}

func TestCoordConversion(t *testing.T) {
	g := NewGame()
	s := g.Ltoi(game.Coord{X: 4, Y: 5})
	assert.Equal(t, Move{4, 5}.Single(), s)
	assert.Equal(t, game.Coord{X: 4, Y: 5}, g.Itol(s))
	assert.Equal(t, game.Coord{X: -1, Y: -1}, g.Itol(Pass))
}
