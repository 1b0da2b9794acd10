// Package othello picks moves for the game of Othello. A Bot combines an opening book, a few cheap rules
// and three search engines, one per phase of the game.
package othello

import (
	"sync"
	"time"

	"github.com/othellobot/othello/eval"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/othellobot/othello/mcts"
	"github.com/othellobot/othello/search"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Scores reported by the rules that decide without searching.
const (
	SafeScore     float32 = 0.95
	FallbackScore float32 = 0.5
	LastResort    float32 = 0.1
)

// mctsEngine adapts the tree search to the Engine interface. The phase is not used.
type mctsEngine struct {
	*mcts.MCTS
}

func (e mctsEngine) BestMove(b reversi.Board, p game.Player, _ reversi.Phase, iterations int) (search.Result, bool) {
	return e.MCTS.BestMove(b, p, iterations)
}

// Bot chooses moves. It owns its engines and their caches, so a Bot should be used for one game at a time.
type Bot struct {
	sync.Mutex
	Config
	book    []reversi.Move
	engines map[Source]Engine
	stats   map[Source]EngineStats
}

// NewBot creates a Bot from the configuration.
func NewBot(conf Config) (*Bot, error) {
	if !conf.IsValid() {
		return nil, errors.New("Invalid Bot config")
	}
	book, err := ParseBook(conf.Book)
	if err != nil {
		return nil, err
	}
	return &Bot{
		Config: conf,
		book:   book,
		engines: map[Source]Engine{
			FromMCTS:      mctsEngine{mcts.New(conf.MCTS)},
			FromPVS:       search.NewPVS(conf.Search),
			FromAlphaBeta: search.NewAlphaBeta(conf.Search),
		},
		stats: make(map[Source]EngineStats),
	}, nil
}

// SetEngine replaces the engine used for a source. It panics if the source is not an engine.
func (b *Bot) SetEngine(s Source, e Engine) {
	if !s.IsEngine() {
		panic("Not an engine: " + s.String())
	}
	b.Lock()
	b.engines[s] = e
	b.Unlock()
}

type options struct {
	phase    reversi.Phase
	hasPhase bool
	depth    int
}

// Option changes how a single BestMove call searches.
type Option func(*options)

// WithPhase forces the phase instead of deriving it from the number of empty cells.
func WithPhase(phase reversi.Phase) Option {
	return func(o *options) {
		o.phase = phase
		o.hasPhase = true
	}
}

// WithDepth sets the search depth of the alpha-beta engines.
func WithDepth(depth int) Option {
	return func(o *options) { o.depth = depth }
}

// BestMove returns the best move for the player. ok is false if the player has no legal move.
func (b *Bot) BestMove(board reversi.Board, p game.Player, opts ...Option) (search.Result, bool) {
	d, ok := b.Decide(board, p, opts...)
	return d.Result, ok
}

// Suggest validates a raw snapshot (see reversi.FromCells) before choosing a move.
func (b *Bot) Suggest(snapshot [][]string, p game.Player, opts ...Option) (search.Result, bool, error) {
	if !p.IsValid() {
		return search.Result{}, false, errors.Errorf("Cannot suggest a move for %v", p)
	}
	board, err := reversi.FromCells(snapshot)
	if err != nil {
		return search.Result{}, false, err
	}
	r, ok := b.BestMove(board, p, opts...)
	return r, ok, nil
}

// Decide chooses a move and reports how it was chosen. The rules are tried in order: the opening book,
// any corner, the greedy safe move in the opening and finally the engine for the phase.
// A board holding anything but empty, black and white cells, or a player that is neither, gets no move.
func (b *Bot) Decide(board reversi.Board, p game.Player, opts ...Option) (retVal Decision, ok bool) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !board.Valid() || !p.IsValid() {
		log.Error().Str("player", p.String()).Msg("refusing to search an invalid position")
		return Decision{}, false
	}
	moves := board.LegalMoves(p)
	if len(moves) == 0 {
		return Decision{}, false
	}

	empty := board.Empty()
	phase := reversi.PhaseFor(empty)
	if o.hasPhase {
		phase = o.phase
	}
	retVal.Phase = phase

	start := time.Now()
	defer func() {
		retVal.Elapsed = time.Since(start)
		log.Info().
			Str("player", p.String()).
			Str("phase", phase.String()).
			Str("source", retVal.Source.String()).
			Str("move", retVal.Move.String()).
			Float32("score", retVal.Score).
			Dur("elapsed", retVal.Elapsed).
			Msg("move chosen")
	}()

	if b.UseBook {
		if m, ok := bookMove(b.book, &board, p); ok {
			retVal.Result = search.Result{Move: m, Score: search.CornerScore}
			retVal.Source = FromBook
			return retVal, true
		}
	}

	if corner, ok := lo.Find(moves, reversi.Move.IsCorner); ok {
		retVal.Result = search.Result{Move: corner, Score: search.CornerScore}
		retVal.Source = FromCorner
		return retVal, true
	}

	if b.SafeFilter && (empty > 48 || phase == reversi.Early) {
		if m, ok := safeMove(&board, p, moves); ok {
			retVal.Result = search.Result{Move: m, Score: SafeScore}
			retVal.Source = FromSafeFilter
			return retVal, true
		}
	}

	src, limit := dispatch(phase, empty, o.depth, b.MCTSBudget)
	retVal.Source = src
	retVal.Result = b.run(src, board, p, phase, limit, moves)
	return retVal, true
}

// dispatch picks the engine for the phase and the depth or budget it searches with.
func dispatch(phase reversi.Phase, empty, depth, budget int) (Source, int) {
	switch phase {
	case reversi.Early:
		return FromMCTS, budget
	case reversi.Middle:
		if depth > 0 {
			return FromPVS, depth
		}
		if empty < 25 {
			return FromPVS, 6
		}
		return FromPVS, 5
	}
	if depth > 0 {
		return FromAlphaBeta, depth
	}
	if empty < 10 {
		return FromAlphaBeta, 9
	}
	return FromAlphaBeta, 7
}

// run asks the engine for a move and records its statistics. If the engine comes back empty handed the first
// legal move is played instead.
func (b *Bot) run(src Source, board reversi.Board, p game.Player, phase reversi.Phase, limit int, moves []reversi.Move) search.Result {
	b.Lock()
	e := b.engines[src]
	b.Unlock()

	start := time.Now()
	r, ok := e.BestMove(board, p, phase, limit)
	switch {
	case !ok:
		log.Warn().Str("engine", src.String()).Msg("engine found no move")
		r = search.Result{Move: moves[0], Score: FallbackScore}
	case !lo.Contains(moves, r.Move):
		log.Error().Str("engine", src.String()).Str("move", r.Move.String()).Msg("engine returned an illegal move")
		r = search.Result{Move: moves[0], Score: LastResort}
	}

	b.Lock()
	s := b.stats[src]
	s.add(r.Score, time.Since(start))
	b.stats[src] = s
	b.Unlock()
	return r
}

// safeMove drops the moves next to an empty corner and returns the one that leaves the player with the most discs.
// Ties go to the first move in row-major order.
func safeMove(b *reversi.Board, p game.Player, moves []reversi.Move) (reversi.Move, bool) {
	safe := lo.Reject(moves, func(m reversi.Move, _ int) bool { return givesCornerAccess(b, m) })
	if len(safe) == 0 {
		return reversi.Move{}, false
	}
	discs := func(m reversi.Move) int {
		next := b.Clone()
		next.Apply(m.Row, m.Col, p)
		return next.Count(game.Colour(p))
	}
	return lo.MaxBy(safe, func(a, b reversi.Move) bool { return discs(a) > discs(b) }), true
}

// givesCornerAccess returns true if the move is next to a corner that is still empty.
func givesCornerAccess(b *reversi.Board, m reversi.Move) bool {
	corner, ok := eval.DangerCorner(m)
	return ok && b.At(corner.Row, corner.Col) == game.None
}

// Stats returns a copy of the per-engine statistics.
func (b *Bot) Stats() map[Source]EngineStats {
	b.Lock()
	defer b.Unlock()
	retVal := make(map[Source]EngineStats, len(b.stats))
	for k, v := range b.stats {
		retVal[k] = v
	}
	return retVal
}

// ResetStats clears the per-engine statistics.
func (b *Bot) ResetStats() {
	b.Lock()
	b.stats = make(map[Source]EngineStats)
	b.Unlock()
}

// Reset clears the engines' caches, for instance before a new game.
func (b *Bot) Reset() {
	b.Lock()
	defer b.Unlock()
	for _, e := range b.engines {
		e.Reset()
	}
}
