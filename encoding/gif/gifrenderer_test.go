package gif

import (
	"bytes"
	stdgif "image/gif"
	"testing"

	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	*reversi.Game
}

func (m meta) Name() string                { return "test game" }
func (m meta) Epoch() int                  { return 1 }
func (m meta) GameNumber() int             { return 2 }
func (m meta) Score(p game.Player) float64 { return float64(m.Game.Score(p)) }
func (m meta) State() game.State           { return m.Game }

func TestEncoder(t *testing.T) {
	const cell = 20
	g := reversi.NewGame()
	ms := meta{g}
	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, cell)
	assert.Error(t, enc.Flush(), "nothing to write yet")

	require.NoError(t, enc.Encode(ms))
	g.Apply(game.PlayerMove{Player: reversi.Black, Single: reversi.Move{Row: 4, Col: 5}.Single()})
	require.NoError(t, enc.Encode(ms))
	assert.Equal(t, 2, enc.Frames())

	b, err := reversi.ParseBoard(`
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X O`)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(meta{reversi.NewGameFrom(b, reversi.White)}))
	require.NoError(t, enc.Flush())

	out, err := stdgif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, out.Image, 3)
	assert.Equal(t, []int{0, 0, endDelay}, out.Delay)

	first := out.Image[0]
	assert.Equal(t, enc.W, first.Bounds().Dx())
	assert.Equal(t, enc.H, first.Bounds().Dy())

	at := func(im interface {
		ColorIndexAt(x, y int) uint8
	}, row, col int) uint8 {
		x, y := enc.center(row*reversi.Size + col)
		return im.ColorIndexAt(x, y)
	}
	assert.Equal(t, white, at(first, 3, 3))
	assert.Equal(t, black, at(first, 3, 4))
	assert.Equal(t, felt, at(first, 0, 0))

	second := out.Image[1]
	assert.Equal(t, black, at(second, 4, 4), "flipped")
	assert.Equal(t, marker, at(second, 4, 5), "last move")

	third := out.Image[2]
	assert.Equal(t, white, at(third, 7, 7))
}

func TestEncoderSizeChange(t *testing.T) {
	enc := NewGifEncoder(&bytes.Buffer{}, 10)
	require.NoError(t, enc.Encode(meta{reversi.NewGame()}))
	enc.cols = 7
	assert.Error(t, enc.Encode(meta{reversi.NewGame()}))
}
