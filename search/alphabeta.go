package search

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

// AlphaBeta is a negamax alpha-beta engine with iterative deepening and a transposition table.
type AlphaBeta struct {
	searcher
}

func NewAlphaBeta(conf Config) *AlphaBeta {
	return &AlphaBeta{searcher: newSearcher("alphabeta", conf)}
}

// BestMove searches for the player's best move. The leaves are evaluated with the weights of the given phase.
// A maxDepth <= 0 picks a depth from the number of empty cells. ok is false if the player has no legal move.
func (e *AlphaBeta) BestMove(b reversi.Board, p game.Player, phase reversi.Phase, maxDepth int) (r Result, ok bool) {
	return e.deepen(b, p, phase, maxDepth, e.negamax)
}

// searchDepth searches the root at exactly the given depth.
func (e *AlphaBeta) searchDepth(b reversi.Board, p game.Player, depth int) (Result, bool) {
	e.setPhase(reversi.PhaseOf(&b))
	e.start()
	r, searched, _ := e.root(&b, p, Order(b.LegalMoves(p)), depth, e.negamax)
	return r, searched
}

func (e *AlphaBeta) negamax(b *reversi.Board, p game.Player, depth int, alpha, beta float32) float32 {
	e.nodes++
	if depth <= 0 || e.expired() {
		return e.leaf(b, p)
	}
	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		if !b.HasMoves(p.Opponent()) {
			return e.leaf(b, p)
		}
		// passing does not use up depth
		return -e.negamax(b, p.Opponent(), depth, -beta, -alpha)
	}

	k := Key{Fingerprint: b.Fingerprint(), Player: p, Depth: depth}
	score, alpha, beta, done := e.probe(k, alpha, beta)
	if done {
		return score
	}
	alphaOrig := alpha

	best := negInf
	for _, m := range Order(moves) {
		child := b.Clone()
		child.Apply(m.Row, m.Col, p)
		v := -e.negamax(&child, p.Opponent(), childDepth(depth, m), -beta, -alpha)
		if v > best {
			best = v
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			break
		}
	}
	e.store(k, best, alphaOrig, beta)
	return best
}
