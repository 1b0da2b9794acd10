package search

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/rs/zerolog/log"
)

var (
	inf    = math32.Inf(1)
	negInf = math32.Inf(-1)
)

// nodeFunc scores a position from the point of view of the player to move, within the window (alpha, beta).
type nodeFunc func(b *reversi.Board, p game.Player, depth int, alpha, beta float32) float32

// searcher holds what the engines share: the configuration, the table, and the state of the current call.
type searcher struct {
	Config
	name string
	tt   *Table

	phase    reversi.Phase // evaluator weights used at the leaves
	deadline time.Time
	timedOut bool
	nodes    int
}

func newSearcher(name string, conf Config) searcher {
	return searcher{
		Config: conf,
		name:   name,
		tt:     NewTable(conf.TableSize),
	}
}

// Reset clears the transposition table.
func (s *searcher) Reset() { s.tt.Reset() }

// Nodes returns the number of nodes visited by the last call.
func (s *searcher) Nodes() int { return s.nodes }

func (s *searcher) start() {
	s.deadline = time.Now().Add(s.TimeLimit)
	s.timedOut = false
	s.nodes = 0
}

// setPhase sets the phase the leaves are evaluated with. Scores stored under another phase are dropped.
func (s *searcher) setPhase(phase reversi.Phase) {
	if phase != s.phase {
		s.tt.Reset()
		s.phase = phase
	}
}

func (s *searcher) expired() bool {
	if s.timedOut {
		return true
	}
	if time.Now().After(s.deadline) {
		s.timedOut = true
	}
	return s.timedOut
}

// leaf scores a position without searching further. Finished games are scored by their outcome, the others
// with the weights of the phase given to the search.
func (s *searcher) leaf(b *reversi.Board, p game.Player) float32 {
	if winner, ok := b.Winner(); ok {
		return outcome(winner, p)
	}
	return s.Eval(b, p, s.phase)
}

func outcome(winner, p game.Player) float32 {
	switch winner {
	case p:
		return 1
	case reversi.Tie:
		return 0
	}
	return -1
}

// probe looks the node up in the table. If the stored bound settles the node, done is true and score is final.
// Otherwise the window is narrowed by the stored bound.
func (s *searcher) probe(k Key, alpha, beta float32) (score, a, bt float32, done bool) {
	e, ok := s.tt.Probe(k)
	if !ok {
		return 0, alpha, beta, false
	}
	switch e.Flag {
	case Exact:
		return e.Score, alpha, beta, true
	case LowerBound:
		if e.Score > alpha {
			alpha = e.Score
		}
	case UpperBound:
		if e.Score < beta {
			beta = e.Score
		}
	}
	if alpha >= beta {
		return e.Score, alpha, beta, true
	}
	return 0, alpha, beta, false
}

// store records a node's score. Nothing is stored once the clock has run out, as the score may be incomplete.
func (s *searcher) store(k Key, best, alphaOrig, beta float32) {
	if s.timedOut {
		return
	}
	flag := Exact
	switch {
	case best <= alphaOrig:
		flag = UpperBound
	case best >= beta:
		flag = LowerBound
	}
	s.tt.Store(k, Entry{Score: best, Depth: k.Depth, Flag: flag})
}

// childDepth is the depth left after playing m. Corners extend the search by one ply.
func childDepth(depth int, m reversi.Move) int {
	if m.IsCorner() {
		return depth
	}
	return depth - 1
}

// root searches every move of the root at the given depth. complete is false if the clock ran out,
// in which case the result is the best move among the ones fully searched, if any.
func (s *searcher) root(b *reversi.Board, p game.Player, moves []reversi.Move, depth int, node nodeFunc) (best Result, searched, complete bool) {
	alpha, beta := negInf, inf
	best.Score = negInf
	for _, m := range moves {
		if s.expired() {
			return best, searched, false
		}
		child := b.Clone()
		child.Apply(m.Row, m.Col, p)
		v := -node(&child, p.Opponent(), childDepth(depth, m), -beta, -alpha)
		if s.timedOut {
			return best, searched, false
		}
		if !searched || v > best.Score {
			best = Result{Move: m, Score: v}
			searched = true
		}
		if v > alpha {
			alpha = v
		}
	}
	return best, searched, true
}

// deepen runs iterative deepening from MinDepth to maxDepth. A completed depth only replaces the
// current best if it scores strictly better. If no depth completes, the best partial result is used.
func (s *searcher) deepen(b reversi.Board, p game.Player, phase reversi.Phase, maxDepth int, node nodeFunc) (Result, bool) {
	moves := b.LegalMoves(p)
	if r, ok, done := Shortcut(moves); done {
		return r, ok
	}
	s.setPhase(phase)
	if maxDepth <= 0 {
		maxDepth = DefaultDepth(b.Empty())
	}
	moves = Order(moves)
	s.start()

	first := s.MinDepth
	if first > maxDepth {
		first = maxDepth
	}
	var best Result
	var found bool
	for depth := first; depth <= maxDepth; depth++ {
		r, searched, complete := s.root(&b, p, moves, depth, node)
		if !complete {
			if !found && searched {
				best, found = r, true
			}
			log.Debug().Str("engine", s.name).Int("depth", depth).Int("nodes", s.nodes).Msg("out of time")
			break
		}
		if !found || r.Score > best.Score {
			best, found = r, true
		}
		log.Debug().Str("engine", s.name).
			Int("depth", depth).
			Str("move", r.Move.String()).
			Float32("score", r.Score).
			Int("nodes", s.nodes).
			Msg("depth complete")
	}
	if !found {
		// not even the first move was searched
		child := b.Clone()
		child.Apply(moves[0].Row, moves[0].Col, p)
		best = Result{Move: moves[0], Score: -s.leaf(&child, p.Opponent())}
	}
	return best, true
}
