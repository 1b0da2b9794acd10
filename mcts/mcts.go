package mcts

import (
	"time"

	"github.com/othellobot/othello/eval"
	"github.com/othellobot/othello/game/reversi"
)

// Config is the structure to configure the MCTS tree.
type Config struct {
	Budget  int           `json:"budget"`  // iteration budget used when BestMove is given none
	Timeout time.Duration `json:"timeout"` // wall clock budget of one BestMove call

	// Exploration is the UCT exploration constant.
	Exploration float32 `json:"exploration"`
	// CornerBonus is added to the UCT value of children whose move is a corner.
	CornerBonus float32 `json:"corner_bonus"`

	ExpandGreedy     float32 `json:"expand_greedy"`     // chance of expanding the untried move with the highest positional weight
	RolloutHeuristic float32 `json:"rollout_heuristic"` // chance of a rollout ply using the heuristic policy
	RolloutGreedy    float32 `json:"rollout_greedy"`    // chance of the heuristic policy playing its best move rather than one of its top 3
	RolloutCap       int     `json:"rollout_cap"`       // maximum plies in a rollout

	// Seed seeds the random number generator. If it is not 32 bytes long a random seed is used.
	Seed []byte    `json:"seed,omitempty"`
	Eval eval.Func `json:"-"`
}

func DefaultConfig() Config {
	return Config{
		Budget:           3000,
		Timeout:          500 * time.Millisecond,
		Exploration:      1.414,
		CornerBonus:      0.2,
		ExpandGreedy:     0.7,
		RolloutHeuristic: 0.8,
		RolloutGreedy:    0.8,
		RolloutCap:       40,
		Eval:             eval.Evaluate,
	}
}

func (c Config) IsValid() bool {
	prob := func(p float32) bool { return p >= 0 && p <= 1 }
	return c.Budget > 0 && c.Timeout > 0 && c.Exploration > 0 && c.RolloutCap > 0 && c.Eval != nil &&
		prob(c.ExpandGreedy) && prob(c.RolloutHeuristic) && prob(c.RolloutGreedy)
}

var (
	Black = reversi.Black
	White = reversi.White
)
