package reversi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/othellobot/othello/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"
)

func seeded(seed byte) *frand.RNG {
	key := make([]byte, 32)
	key[0] = seed
	return frand.NewCustom(key, 1024, 12)
}

func TestNewBoard(t *testing.T) {
	assert := assert.New(t)
	b := New()
	assert.Equal(game.White, b.At(3, 3))
	assert.Equal(game.Black, b.At(3, 4))
	assert.Equal(game.Black, b.At(4, 3))
	assert.Equal(game.White, b.At(4, 4))
	assert.Equal(60, b.Empty())
	assert.Equal(Early, PhaseOf(&b))

	want := []Move{{2, 3}, {3, 2}, {4, 5}, {5, 4}}
	if diff := cmp.Diff(want, b.LegalMoves(Black)); diff != "" {
		t.Errorf("legal moves for black (-want +got):\n%s", diff)
	}
	assert.Equal("D3", want[0].String())
	assert.Equal("F5", want[2].String())
}

func TestValid(t *testing.T) {
	b := New()
	assert.True(t, b.Valid())
	b.Set(7, 7, game.Colour(3))
	assert.False(t, b.Valid())
	var empty Board
	assert.True(t, empty.Valid())
}

func TestIsLegal(t *testing.T) {
	assert := assert.New(t)
	b := New()
	assert.False(b.IsLegal(3, 3, Black), "occupied")
	assert.False(b.IsLegal(-1, 0, Black), "off board")
	assert.False(b.IsLegal(8, 8, Black), "off board")
	assert.False(b.IsLegal(0, 0, Black), "no bracket")
	assert.False(b.IsLegal(2, 3, Tie), "not a player")
	assert.True(b.IsLegal(4, 5, Black))
	assert.True(b.IsLegal(2, 4, White))
}

func TestApply(t *testing.T) {
	assert := assert.New(t)
	b := New()
	before := b
	assert.False(b.Apply(0, 0, Black))
	assert.Equal(before, b, "illegal moves must not mutate the board")

	assert.True(b.Apply(4, 5, Black))
	assert.Equal(game.Black, b.At(4, 5))
	assert.Equal(game.Black, b.At(4, 4))
	assert.Equal(4, b.Count(game.Black))
	assert.Equal(1, b.Count(game.White))
	assert.Equal(game.White, before.At(4, 4), "boards are values")
}

func TestFlipsForMultipleDirections(t *testing.T) {
	b, err := ParseBoard(`
		X X X . . . . .
		X O O . . . . .
		X O . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .`)
	require.NoError(t, err)
	flips := b.FlipsFor(2, 2, Black)
	want := []Move{{1, 1}, {1, 2}, {2, 1}}
	if diff := cmp.Diff(want, flips); diff != "" {
		t.Errorf("flips (-want +got):\n%s", diff)
	}

	// an empty-terminated run flips nothing
	assert.Empty(t, b.FlipsFor(2, 2, White))
	assert.False(t, b.IsLegal(2, 2, White))
}

// TestRandomPlayouts checks the flip and legality properties over many random games.
func TestRandomPlayouts(t *testing.T) {
	for seed := byte(0); seed < 20; seed++ {
		rng := seeded(seed)
		b := New()
		p := Black
		for !b.IsTerminal() {
			moves := b.LegalMoves(p)
			if len(moves) == 0 {
				p = p.Opponent()
				continue
			}
			for _, m := range moves {
				if !b.IsLegal(m.Row, m.Col, p) {
					t.Fatalf("seed %d: %v listed but not legal", seed, m)
				}
				if len(b.FlipsFor(m.Row, m.Col, p)) == 0 {
					t.Fatalf("seed %d: %v is legal but flips nothing", seed, m)
				}
			}
			m := moves[rng.Intn(len(moves))]
			flips := b.FlipsFor(m.Row, m.Col, p)
			own, opp := b.Count(game.Colour(p)), b.Count(game.Colour(p.Opponent()))
			next := b.Clone()
			require.True(t, next.Apply(m.Row, m.Col, p))

			assert.Equal(t, own+len(flips)+1, next.Count(game.Colour(p)))
			assert.Equal(t, opp-len(flips), next.Count(game.Colour(p.Opponent())))
			changed := 0
			for i := range b {
				if b[i] != next[i] {
					changed++
				}
			}
			assert.Equal(t, len(flips)+1, changed, "only the placed and flipped cells change")
			for _, f := range flips {
				assert.Equal(t, game.Colour(p), next.At(f.Row, f.Col))
			}

			_, ok := b.Winner()
			assert.False(t, ok, "winner is undefined before the end")
			b = next
			p = p.Opponent()
		}
		winner, ok := b.Winner()
		require.True(t, ok)
		black, white := b.Count(game.Black), b.Count(game.White)
		switch {
		case black > white:
			assert.Equal(t, Black, winner)
		case white > black:
			assert.Equal(t, White, winner)
		default:
			assert.Equal(t, Tie, winner)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert := assert.New(t)

	// both players stuck with empty cells left
	b, err := ParseBoard(`
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X X X
		X X X X X X . .
		X X X X X X . .`)
	require.NoError(t, err)
	assert.True(b.IsTerminal())
	winner, ok := b.Winner()
	assert.True(ok)
	assert.Equal(Black, winner)

	full, err := ParseBoard(`
		X X X X O O O O
		X X X X O O O O
		X X X X O O O O
		X X X X O O O O
		X X X X O O O O
		X X X X O O O O
		X X X X O O O O
		X X X X O O O O`)
	require.NoError(t, err)
	assert.True(full.IsTerminal())
	winner, ok = full.Winner()
	assert.True(ok)
	assert.Equal(Tie, winner)

	// white has no move, black does: not terminal
	pass, err := ParseBoard(`
		X O . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .`)
	require.NoError(t, err)
	assert.Empty(pass.LegalMoves(White))
	assert.Equal([]Move{{0, 2}}, pass.LegalMoves(Black))
	assert.False(pass.IsTerminal())
}

func TestFingerprint(t *testing.T) {
	a := New()
	b := New()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	b.Apply(4, 5, Black)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, 5, b.Fingerprint().Discs())
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("f5")
	require.NoError(t, err)
	assert.Equal(t, Move{Row: 4, Col: 5}, m)
	assert.True(t, Move{0, 7}.IsCorner())
	assert.True(t, Move{0, 3}.IsEdge())
	assert.False(t, Move{0, 0}.IsEdge())
	assert.False(t, Move{3, 3}.IsEdge())

	_, err = ParseMove("J9")
	assert.Error(t, err)
	_, err = ParseMove("F")
	assert.Error(t, err)
}
