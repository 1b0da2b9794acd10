package mcts

import (
	"github.com/othellobot/othello/eval"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

// pair is a tuple of score and move
type pair struct {
	Move  reversi.Move
	Score float32
}

// byScore is a sortable list of pairs. It sorts the list with best score first
type byScore []pair

func (l byScore) Len() int           { return len(l) }
func (l byScore) Less(i, j int) bool { return l[i].Score > l[j].Score }
func (l byScore) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

type byMove struct {
	t *MCTS
	l []naughty
}

func (l byMove) Len() int { return len(l.l) }
func (l byMove) Less(i, j int) bool {
	li := l.t.nodeFromNaughty(l.l[i])
	lj := l.t.nodeFromNaughty(l.l[j])
	return li.move.Single() < lj.move.Single()
}
func (l byMove) Swap(i, j int) {
	l.l[i], l.l[j] = l.l[j], l.l[i]
}

// mostPositional returns the index of the move with the highest positional weight. Ties go to the first.
func mostPositional(moves []reversi.Move) int {
	var retVal int
	for i := range moves {
		if eval.PositionWeight(moves[i]) > eval.PositionWeight(moves[retVal]) {
			retVal = i
		}
	}
	return retVal
}

// rolloutValue is how much the rollout policy likes a move: its positional weight, a bonus for corners and edges,
// and 10 for every disc the mover gains.
func rolloutValue(b *reversi.Board, m reversi.Move, p game.Player) float32 {
	retVal := eval.PositionWeight(m)
	switch {
	case m.IsCorner():
		retVal += 1000
	case m.IsEdge():
		retVal += 100
	}
	gained := len(b.FlipsFor(m.Row, m.Col, p)) + 1
	return retVal + float32(gained*10)
}

func outcome(winner, p game.Player) float32 {
	switch winner {
	case p:
		return 1
	case reversi.Tie:
		return 0.5
	}
	return 0
}
