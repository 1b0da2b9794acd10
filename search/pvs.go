package search

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

// PVS is a principal variation search engine. The first move of every node is searched with the full window,
// the others with a null window that is widened again when the probe lands inside the window.
type PVS struct {
	searcher
}

func NewPVS(conf Config) *PVS {
	return &PVS{searcher: newSearcher("pvs", conf)}
}

// BestMove searches for the player's best move. The leaves are evaluated with the weights of the given phase.
// A maxDepth <= 0 picks a depth from the number of empty cells. ok is false if the player has no legal move.
func (e *PVS) BestMove(b reversi.Board, p game.Player, phase reversi.Phase, maxDepth int) (r Result, ok bool) {
	return e.deepen(b, p, phase, maxDepth, e.pvs)
}

func (e *PVS) searchDepth(b reversi.Board, p game.Player, depth int) (Result, bool) {
	e.setPhase(reversi.PhaseOf(&b))
	e.start()
	r, searched, _ := e.root(&b, p, Order(b.LegalMoves(p)), depth, e.pvs)
	return r, searched
}

func (e *PVS) pvs(b *reversi.Board, p game.Player, depth int, alpha, beta float32) float32 {
	e.nodes++
	if depth <= 0 || e.expired() {
		return e.leaf(b, p)
	}
	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		if !b.HasMoves(p.Opponent()) {
			return e.leaf(b, p)
		}
		return -e.pvs(b, p.Opponent(), depth, -beta, -alpha)
	}

	k := Key{Fingerprint: b.Fingerprint(), Player: p, Depth: depth}
	score, alpha, beta, done := e.probe(k, alpha, beta)
	if done {
		return score
	}
	alphaOrig := alpha

	best := negInf
	for i, m := range Order(moves) {
		child := b.Clone()
		child.Apply(m.Row, m.Col, p)
		d := childDepth(depth, m)
		var v float32
		if i == 0 {
			v = -e.pvs(&child, p.Opponent(), d, -beta, -alpha)
		} else {
			v = -e.pvs(&child, p.Opponent(), d, -alpha-e.Epsilon, -alpha)
			if v > alpha && v < beta {
				v = -e.pvs(&child, p.Opponent(), d, -beta, -alpha)
			}
		}
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
