// Package eval scores Othello positions with a phase dependent weighted sum of features.
package eval

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/samber/lo"
	"gorgonia.org/vecf32"
)

// Func is the signature of a position evaluator. Scores are from p's point of view.
type Func func(b *reversi.Board, p game.Player, phase reversi.Phase) float32

var _ Func = Evaluate

// Features computes the unweighted features of the position, indexed by Feature.
func Features(b *reversi.Board, p game.Player, phase reversi.Phase) []float32 {
	retVal := make([]float32, NumFeatures)
	retVal[Material] = material(b, p)
	retVal[Positional] = positional(b, p)
	retVal[Mobility] = mobility(b, p)
	retVal[Stability] = stability(b, p)
	retVal[Corners] = corners(b, p)
	retVal[Edges] = edges(b, p)
	retVal[Pattern] = pattern(b, p)
	retVal[Parity] = parity(b, p, phase)
	return retVal
}

// Evaluate scores the position for player p in [-1, 1]. It does not modify the board.
func Evaluate(b *reversi.Board, p game.Player, phase reversi.Phase) float32 {
	features := Features(b, p, phase)
	vecf32.Mul(features, phaseRows[phase])
	score := vecf32.Sum(features) + dangerAdjustment(b, p)
	return lo.Clamp(score, -1, 1)
}
