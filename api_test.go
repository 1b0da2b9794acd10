package othello

import (
	"strings"
	"testing"
	"time"

	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMove(t *testing.T) {
	b := reversi.New()
	next, err := ApplyMove(b, 4, 5, reversi.Black)
	require.NoError(t, err)
	assert.Equal(t, game.Black, next.At(4, 4))
	assert.Equal(t, reversi.New(), b, "the board passed in is untouched")

	same, err := ApplyMove(b, 0, 0, reversi.Black)
	require.Error(t, err)
	assert.True(t, reversi.IsIllegalMove(err))
	assert.Equal(t, b, same)

	_, err = ApplyMove(b, 4, 5, reversi.White)
	assert.True(t, reversi.IsIllegalMove(err))

	assert.Len(t, LegalMoves(b, reversi.White), 4)
	assert.False(t, IsTerminal(b))
	_, ok := Winner(b)
	assert.False(t, ok)

	var full reversi.Board
	for i := range full {
		full[i] = game.White
	}
	assert.True(t, IsTerminal(full))
	w, ok := Winner(full)
	assert.True(t, ok)
	assert.Equal(t, reversi.White, w)
}

func TestLoadConfig(t *testing.T) {
	conf, err := LoadConfig(strings.NewReader(`{
		"name": "tiny",
		"use_book": false,
		"mcts_budget": 100,
		"search": {"min_depth": 2, "time_limit": 1000000},
		"mcts": {"exploration": 2}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "tiny", conf.Name)
	assert.False(t, conf.UseBook)
	assert.True(t, conf.SafeFilter, "missing fields keep their defaults")
	assert.Equal(t, DefaultBook, conf.Book)
	assert.Equal(t, 100, conf.MCTSBudget)
	assert.Equal(t, 2, conf.Search.MinDepth)
	assert.Equal(t, time.Millisecond, conf.Search.TimeLimit)
	assert.NotNil(t, conf.Search.Eval)
	assert.Equal(t, float32(2), conf.MCTS.Exploration)
	assert.Equal(t, DefaultConfig().MCTS.Budget, conf.MCTS.Budget)
	assert.NotNil(t, conf.MCTS.Eval)

	_, err = LoadConfig(strings.NewReader(`{"mcts_budget": `))
	assert.Error(t, err)
	_, err = LoadConfig(strings.NewReader(`{"book": "F5D"}`))
	assert.Error(t, err)
	_, err = LoadConfig(strings.NewReader(`{"mcts_budget": -1}`))
	assert.Error(t, err)

	assert.True(t, DefaultConfig().IsValid())
}

func TestStrength(t *testing.T) {
	for _, s := range []Strength{Weak, Medium, Strong} {
		parsed, err := ParseStrength(strings.ToUpper(s.String()))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStrength("grandmaster")
	assert.Error(t, err)
}

func TestSource(t *testing.T) {
	assert.False(t, FromBook.IsEngine())
	assert.False(t, FromScript.IsEngine())
	assert.True(t, FromMCTS.IsEngine())
	assert.True(t, FromAlphaBeta.IsEngine())
	assert.False(t, MAXSOURCE.IsEngine())
	assert.Panics(t, func() { newBot(t, DefaultConfig()).SetEngine(FromCorner, &stubEngine{}) })
}
