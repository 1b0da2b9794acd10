package othello

import (
	"fmt"
	"time"

	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/othellobot/othello/search"
)

// Source is what decided a move.
type Source int

const (
	FromBook Source = iota
	FromCorner
	FromSafeFilter
	FromScript
	FromMCTS
	FromPVS
	FromAlphaBeta
	MAXSOURCE
)

func (s Source) String() string {
	switch s {
	case FromBook:
		return "book"
	case FromCorner:
		return "corner"
	case FromSafeFilter:
		return "safe"
	case FromScript:
		return "script"
	case FromMCTS:
		return "mcts"
	case FromPVS:
		return "pvs"
	case FromAlphaBeta:
		return "alphabeta"
	}
	return fmt.Sprintf("UNKNOWN SOURCE %d", int(s))
}

// IsEngine returns true if the source is one of the search engines.
func (s Source) IsEngine() bool { return s >= FromMCTS && s < MAXSOURCE }

// Decision is a chosen move along with how it was chosen.
type Decision struct {
	search.Result
	Source  Source
	Phase   reversi.Phase
	Elapsed time.Duration
}

// Engine is a search engine the Bot can dispatch to. limit is a depth or an iteration budget,
// depending on the engine.
type Engine interface {
	BestMove(b reversi.Board, p game.Player, phase reversi.Phase, limit int) (search.Result, bool)
	Reset()
}

// EngineStats are the usage statistics of one engine.
type EngineStats struct {
	Calls    int
	Duration time.Duration
	AvgScore float32 // running average of the scores returned
}

// MeanDuration is the average time spent per call.
func (s EngineStats) MeanDuration() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Calls)
}

func (s *EngineStats) add(score float32, d time.Duration) {
	s.Calls++
	s.Duration += d
	s.AvgScore += (score - s.AvgScore) / float32(s.Calls)
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}
