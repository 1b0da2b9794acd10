package othello

import (
	"sort"
	"strings"
	"sync"

	"github.com/othellobot/othello/eval"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/othellobot/othello/search"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// Strength is the level of a scripted opponent.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
)

func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	}
	return "UNKNOWN STRENGTH"
}

func ParseStrength(s string) (Strength, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weak":
		return Weak, nil
	case "medium":
		return Medium, nil
	case "strong":
		return Strong, nil
	}
	return Weak, errors.Errorf("Unknown strength %q", s)
}

// An Agent is a player: a Bot, or a scripted opponent.
type Agent struct {
	Bot    *Bot
	Player game.Player
	Name   string

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	scripted *Strength
	opts     []Option
	rand     *frand.RNG
}

// NewAgent makes an agent that plays the Bot's moves.
func NewAgent(name string, bot *Bot) *Agent {
	return &Agent{Bot: bot, Name: name}
}

// NewOpponent makes a scripted opponent. A weak opponent plays at random, avoiding corners. A medium one mostly
// plays one of its three favourite moves. A strong one is a Bot searching to depth 4.
func NewOpponent(name string, s Strength, conf Config, rng *frand.RNG) (*Agent, error) {
	if rng == nil {
		rng = frand.New()
	}
	retVal := &Agent{Name: name, rand: rng}
	if s != Strong {
		retVal.scripted = &s
		return retVal, nil
	}
	bot, err := NewBot(conf)
	if err != nil {
		return nil, errors.WithMessage(err, "Unable to make a strong opponent")
	}
	retVal.Bot = bot
	retVal.opts = []Option{WithDepth(4)}
	return retVal, nil
}

// Search chooses a move for the agent's player. ok is false if the player has to pass.
func (a *Agent) Search(b reversi.Board) (Decision, bool) {
	if a.scripted == nil {
		return a.Bot.Decide(b, a.Player, a.opts...)
	}
	moves := b.LegalMoves(a.Player)
	if len(moves) == 0 {
		return Decision{}, false
	}
	var m reversi.Move
	switch *a.scripted {
	case Weak:
		m = a.weakMove(moves)
	default:
		m = a.mediumMove(&b, moves)
	}
	return Decision{Result: search.Result{Move: m}, Source: FromScript, Phase: reversi.PhaseOf(&b)}, true
}

func (a *Agent) weakMove(moves []reversi.Move) reversi.Move {
	if others := lo.Reject(moves, func(m reversi.Move, _ int) bool { return m.IsCorner() }); len(others) > 0 {
		moves = others
	}
	return moves[a.rand.Intn(len(moves))]
}

// scoredMove is a move and how much a scripted opponent likes it.
type scoredMove struct {
	reversi.Move
	score float32
}

func (a *Agent) mediumMove(b *reversi.Board, moves []reversi.Move) reversi.Move {
	if a.rand.Float64() >= 0.7 {
		return moves[a.rand.Intn(len(moves))]
	}
	scored := lo.Map(moves, func(m reversi.Move, _ int) scoredMove {
		return scoredMove{Move: m, score: mediumScore(b, m, a.Player)}
	})
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	top := lo.Min([]int{3, len(scored)})
	return scored[a.rand.Intn(top)].Move
}

// mediumScore likes corners, then edges, dislikes the cells next to an empty corner, and adds a little per flip.
func mediumScore(b *reversi.Board, m reversi.Move, p game.Player) float32 {
	var retVal float32
	switch {
	case m.IsCorner():
		retVal += 10
	case m.IsEdge():
		retVal += 5
	default:
		if corner, ok := eval.DangerCorner(m); ok && b.At(corner.Row, corner.Col) == game.None {
			retVal -= 5
		}
	}
	return retVal + 0.1*float32(len(b.FlipsFor(m.Row, m.Col, p)))
}

// Reset clears the agent's search caches.
func (a *Agent) Reset() {
	if a.Bot != nil {
		a.Bot.Reset()
	}
}
