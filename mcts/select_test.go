package mcts

import (
	"testing"
	"time"

	"github.com/othellobot/othello/game/reversi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	move    reversi.Move
	visits  uint32
	winRate float32
}

// arena builds a root with one child per entry and the given statistics. The root's visits are set last.
func arena(conf Config, rootVisits uint32, kids ...stats) (*MCTS, []naughty) {
	tree := New(conf)
	b := reversi.New()
	root := tree.newRoot(b, Black)
	retVal := make([]naughty, 0, len(kids))
	for _, k := range kids {
		n := tree.New(b, k.move, Black)
		N := tree.nodeFromNaughty(n)
		N.visits = k.visits
		N.wins = k.winRate * float32(k.visits)
		tree.addChild(root, n)
		retVal = append(retVal, n)
	}
	tree.nodeFromNaughty(root).visits = rootVisits
	tree.root = root
	return tree, retVal
}

func TestSelectUnvisitedFirst(t *testing.T) {
	tree, kids := arena(testConfig(1), 20,
		stats{reversi.Move{Row: 2, Col: 3}, 10, 0.9},
		stats{reversi.Move{Row: 3, Col: 2}, 10, 0.9},
		stats{reversi.Move{Row: 4, Col: 5}, 0, 0},
	)
	assert.Equal(t, kids[2], tree.selectChild(tree.root))
}

func TestSelectCornerBonus(t *testing.T) {
	kids := []stats{
		{reversi.Move{Row: 0, Col: 0}, 5, 0.5},
		{reversi.Move{Row: 2, Col: 3}, 5, 0.6},
	}
	tree, n := arena(testConfig(1), 10, kids...)
	assert.Equal(t, n[0], tree.selectChild(tree.root), "the bonus lifts the corner above the better interior move")

	conf := testConfig(1)
	conf.CornerBonus = 0
	tree, n = arena(conf, 10, kids...)
	assert.Equal(t, n[1], tree.selectChild(tree.root))
}

// With c = 1.414 the rarely visited move wins on exploration. With c scaled by 0.9 the well visited one wins.
func TestSelectManyVisitedChildren(t *testing.T) {
	often := stats{reversi.Move{Row: 2, Col: 3}, 80, 0.98}
	rarely := stats{reversi.Move{Row: 3, Col: 2}, 5, 0.02}
	third := stats{reversi.Move{Row: 4, Col: 5}, 15, 0}

	tree, n := arena(testConfig(1), 100, often, rarely)
	assert.Equal(t, n[1], tree.selectChild(tree.root), "two visited children keep the full exploration weight")

	tree, n = arena(testConfig(1), 100, often, rarely, third)
	assert.Equal(t, n[0], tree.selectChild(tree.root), "three visited children scale the exploration weight by 0.9")
}

// The factor must be 0.8 exactly: 0.9 or no scaling would still pick the rarely visited move.
func TestSelectManyParentVisits(t *testing.T) {
	often := stats{reversi.Move{Row: 2, Col: 3}, 900, 0.7}
	rarely := stats{reversi.Move{Row: 3, Col: 2}, 20, 0.1}

	tree, n := arena(testConfig(1), 500, often, rarely)
	assert.Equal(t, n[1], tree.selectChild(tree.root))

	tree, n = arena(testConfig(1), 1000, often, rarely)
	assert.Equal(t, n[0], tree.selectChild(tree.root), "over 500 parent visits scale the exploration weight by 0.8")

	root := tree.nodeFromNaughty(tree.root)
	c := tree.Exploration * 0.9
	assert.True(t, tree.nodeFromNaughty(n[1]).uct(root.visits, c, 0) > tree.nodeFromNaughty(n[0]).uct(root.visits, c, 0))
}

func TestTimeout(t *testing.T) {
	conf := testConfig(5)
	conf.Timeout = time.Nanosecond
	tree := New(conf)
	b := reversi.New()
	r, ok := tree.BestMove(b, Black, 3000)
	require.True(t, ok)
	assert.True(t, b.IsLegal(r.Move.Row, r.Move.Col, Black))
	assert.Less(t, tree.Iterations(), 3000, "the clock stops the search before the budget is used")
}

func TestLogIsSafeDuringSearch(t *testing.T) {
	tree := New(testConfig(6))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = tree.Log()
		}
	}()
	_, ok := tree.BestMove(reversi.New(), Black, 100)
	<-done
	require.True(t, ok)
}
