package mcts

import (
	"sort"
	"time"

	"github.com/chewxy/math32"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/othellobot/othello/search"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

/*
Here lies the search code, while node.go and tree.go handle the data structure stuff.

Each iteration runs the usual pipeline:
	SELECT, EXPAND, SIMULATE, BACKPROPAGATE.
*/

// BestMove searches for the player's best move with at most the given number of iterations
// (Config.Budget if iterations <= 0). The score is the chosen child's win rate.
// ok is false if the player has no legal move.
func (t *MCTS) BestMove(b reversi.Board, p game.Player, iterations int) (r search.Result, ok bool) {
	moves := b.LegalMoves(p)
	if r, ok, done := search.Shortcut(moves); done {
		return r, ok
	}
	if iterations <= 0 {
		iterations = t.Budget
	}

	t.Lock()
	defer t.Unlock()
	t.log("SEARCH. Player %v\n%v", p, b)
	t.updateRoot(b, p)

	deadline := time.Now().Add(t.Timeout)
	t.iterations = 0
	for t.iterations < iterations && time.Now().Before(deadline) {
		t.iterate()
		t.iterations++
	}

	best := t.bestChild(t.root)
	if !best.isValid() {
		return search.Result{Move: moves[0], Score: 0}, true
	}
	N := t.nodeFromNaughty(best)
	log.Debug().
		Int("iterations", t.iterations).
		Int("nodes", t.Nodes()).
		Bool("reused", t.reused).
		Str("move", N.move.String()).
		Uint32("visits", N.visits).
		Float32("winrate", N.WinRate()).
		Msg("mcts")
	return search.Result{Move: N.move, Score: N.WinRate()}, true
}

func (t *MCTS) iterate() {
	leaf := t.selectLeaf(t.root)
	if t.nodeFromNaughty(leaf).IsExpandable() {
		leaf = t.expand(leaf)
	}
	result := t.simulate(leaf)
	t.backpropagate(leaf, result)
}

// selectLeaf descends from n until it reaches a node with untried moves or no children.
func (t *MCTS) selectLeaf(n naughty) naughty {
	for {
		if t.nodeFromNaughty(n).IsExpandable() || len(t.children[n]) == 0 {
			return n
		}
		n = t.selectChild(n)
	}
}

// selectChild picks the child with the highest UCT value. Unvisited children are picked first.
func (t *MCTS) selectChild(of naughty) naughty {
	n := t.nodeFromNaughty(of)
	children := t.children[of]

	c := t.Exploration
	visited := lo.CountBy(children, func(kid naughty) bool { return t.nodeFromNaughty(kid).visits > 0 })
	switch {
	case n.visits > 500:
		c *= 0.8
	case visited > 2:
		c *= 0.9
	}

	best := nilNode
	bestValue := math32.Inf(-1)
	for _, kid := range children {
		child := t.nodeFromNaughty(kid)
		if child.visits == 0 {
			return kid
		}
		if v := child.uct(n.visits, c, t.CornerBonus); v > bestValue {
			bestValue = v
			best = kid
		}
	}
	if best == nilNode {
		panic("Cannot return nil")
	}
	return best
}

// expand takes one untried move of the node and creates its child.
func (t *MCTS) expand(parent naughty) naughty {
	n := t.nodeFromNaughty(parent)
	var i int
	if float32(t.rand.Float64()) < t.ExpandGreedy {
		i = mostPositional(n.untried)
	} else {
		i = t.rand.Intn(len(n.untried))
	}
	m := n.untried[i]
	n.untried = append(n.untried[:i], n.untried[i+1:]...)

	b := n.board
	mover := n.toMove
	b.Apply(m.Row, m.Col, mover)
	child := t.New(b, m, mover) // n is no longer safe to use
	t.addChild(parent, child)
	t.log("\tEXPAND %v -> %v", parent, t.nodeFromNaughty(child))
	return child
}

// simulate plays out the game from the node and returns the result for the player who moved into it:
// 1 for a win, 0.5 for a draw and 0 for a loss. If the rollout is cut short the evaluator decides.
func (t *MCTS) simulate(leaf naughty) float32 {
	n := t.nodeFromNaughty(leaf)
	b := n.board
	p := n.toMove
	perspective := n.mover

	for plies := 0; plies < t.RolloutCap && !b.IsTerminal(); {
		moves := b.LegalMoves(p)
		if len(moves) == 0 {
			p = p.Opponent()
			continue
		}
		m := t.rolloutMove(&b, p, moves)
		b.Apply(m.Row, m.Col, p)
		p = p.Opponent()
		plies++
	}

	if winner, ok := b.Winner(); ok {
		return outcome(winner, perspective)
	}
	return (t.Eval(&b, perspective, reversi.PhaseOf(&b)) + 1) / 2
}

// rolloutMove mostly plays the move the rollout heuristic likes best, sometimes one of its top 3,
// and sometimes a uniformly random one.
func (t *MCTS) rolloutMove(b *reversi.Board, p game.Player, moves []reversi.Move) reversi.Move {
	if float32(t.rand.Float64()) >= t.RolloutHeuristic {
		return moves[t.rand.Intn(len(moves))]
	}
	scored := lo.Map(moves, func(m reversi.Move, _ int) pair {
		return pair{Move: m, Score: rolloutValue(b, m, p)}
	})
	sort.Stable(byScore(scored))
	if float32(t.rand.Float64()) < t.RolloutGreedy {
		return scored[0].Move
	}
	top := lo.Min([]int{3, len(scored)})
	return scored[t.rand.Intn(top)].Move
}

// backpropagate adds the result to every node from the leaf up to the root. The result is seen from the
// leaf's mover and is inverted for nodes whose mover is the other player.
func (t *MCTS) backpropagate(leaf naughty, result float32) {
	perspective := t.nodeFromNaughty(leaf).mover
	for n := leaf; n.isValid(); n = t.nodeFromNaughty(n).parent {
		t.nodeFromNaughty(n).update(result, perspective)
	}
}

// bestChild returns the most visited child. Ties go to the first child created.
func (t *MCTS) bestChild(of naughty) naughty {
	best := nilNode
	var bestVisits uint32
	for _, kid := range t.children[of] {
		if v := t.nodeFromNaughty(kid).visits; !best.isValid() || v > bestVisits {
			best = kid
			bestVisits = v
		}
	}
	return best
}
