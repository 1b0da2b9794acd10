// Package search implements depth limited game tree search for Othello: an alpha-beta engine with
// iterative deepening and a principal variation search engine, both backed by a transposition table.
package search

import (
	"time"

	"github.com/othellobot/othello/eval"
	"github.com/othellobot/othello/game/reversi"
	"github.com/samber/lo"
)

// CornerScore is the score reported when a corner is taken without searching.
const CornerScore float32 = 1000

// Result is a chosen move and its score. Scores are engine specific.
type Result struct {
	Move  reversi.Move
	Score float32
}

// Shortcut resolves the cases every engine handles before searching.
// done is true when no search is needed, in which case ok reports whether a move exists at all.
func Shortcut(moves []reversi.Move) (r Result, ok, done bool) {
	switch len(moves) {
	case 0:
		return Result{}, false, true
	case 1:
		return Result{Move: moves[0], Score: 0}, true, true
	}
	if corner, found := lo.Find(moves, reversi.Move.IsCorner); found {
		return Result{Move: corner, Score: CornerScore}, true, true
	}
	return Result{}, false, false
}

// Order sorts moves corners first, then edges, then interior cells, keeping the given order within each class.
func Order(moves []reversi.Move) []reversi.Move {
	retVal := make([]reversi.Move, 0, len(moves))
	retVal = append(retVal, lo.Filter(moves, func(m reversi.Move, _ int) bool { return m.IsCorner() })...)
	retVal = append(retVal, lo.Filter(moves, func(m reversi.Move, _ int) bool { return m.IsEdge() })...)
	retVal = append(retVal, lo.Reject(moves, func(m reversi.Move, _ int) bool { return m.IsCorner() || m.IsEdge() })...)
	return retVal
}

// DefaultDepth is the search depth used when none is given.
func DefaultDepth(empty int) int {
	switch {
	case empty <= 10:
		return 9
	case empty <= 15:
		return 7
	}
	return 5
}

// Config configures the depth limited engines.
type Config struct {
	TimeLimit time.Duration `json:"time_limit"` // wall clock budget of one BestMove call
	MinDepth  int           `json:"min_depth"`  // first depth of iterative deepening
	Eval      eval.Func     `json:"-"`          // leaf evaluator
	TableSize int           `json:"table_size"` // transposition table capacity, <= 0 is unbounded
	Epsilon   float32       `json:"epsilon"`    // null window width of the PVS engine
}

func DefaultConfig() Config {
	return Config{
		TimeLimit: 500 * time.Millisecond,
		MinDepth:  3,
		Eval:      eval.Evaluate,
		TableSize: 1 << 20,
		Epsilon:   1e-4,
	}
}

func (c Config) IsValid() bool {
	return c.TimeLimit > 0 && c.MinDepth > 0 && c.Eval != nil && c.Epsilon > 0
}
