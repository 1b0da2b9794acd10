package eval

import (
	"github.com/othellobot/othello/game/reversi"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// Feature names one component of the evaluation.
type Feature int

const (
	Material Feature = iota
	Positional
	Mobility
	Stability
	Corners
	Edges
	Pattern
	Parity

	NumFeatures
)

func (f Feature) String() string {
	switch f {
	case Material:
		return "pieces"
	case Positional:
		return "position"
	case Mobility:
		return "mobility"
	case Stability:
		return "stability"
	case Corners:
		return "corners"
	case Edges:
		return "edges"
	case Pattern:
		return "patterns"
	case Parity:
		return "parity"
	}
	return "UNKNOWN FEATURE"
}

// StableDirections is the number of directions in which an interior disc must be
// anchored to stable discs of its own colour to count as stable.
const StableDirections = 4

var positionBacking = []float32{
	120, -20, 20, 5, 5, 20, -20, 120,
	-20, -40, -5, -5, -5, -5, -40, -20,
	20, -5, 15, 3, 3, 15, -5, 20,
	5, -5, 3, 3, 3, 3, -5, 5,
	5, -5, 3, 3, 3, 3, -5, 5,
	20, -5, 15, 3, 3, 15, -5, 20,
	-20, -40, -5, -5, -5, -5, -40, -20,
	120, -20, 20, 5, 5, 20, -20, 120,
}

// rows are phases, columns are features in Feature order.
var phaseBacking = []float32{
	// pieces position mobility stability corners edges patterns parity
	0.05, 0.35, 0.25, 0.05, 0.20, 0.05, 0.05, 0.00, // early
	0.10, 0.30, 0.15, 0.10, 0.25, 0.05, 0.05, 0.00, // middle
	0.30, 0.10, 0.05, 0.20, 0.20, 0.10, 0.00, 0.05, // late
}

var (
	positionTable = tensor.New(tensor.WithShape(reversi.Size, reversi.Size), tensor.WithBacking(positionBacking))
	phaseTable    = tensor.New(tensor.WithShape(3, int(NumFeatures)), tensor.WithBacking(phaseBacking))

	positionRows [][]float32
	phaseRows    [][]float32
	positionNorm float32 // sum of absolute values of the position table
)

func init() {
	var err error
	if positionRows, err = native.MatrixF32(positionTable); err != nil {
		panic(err)
	}
	if phaseRows, err = native.MatrixF32(phaseTable); err != nil {
		panic(err)
	}
	for _, v := range positionTable.Float32s() {
		if v < 0 {
			v = -v
		}
		positionNorm += v
	}
}

// PositionWeight returns the static positional value of a cell.
func PositionWeight(m reversi.Move) float32 { return positionRows[m.Row][m.Col] }

// Weights returns a copy of the feature weights used in the given phase, indexed by Feature.
func Weights(phase reversi.Phase) []float32 {
	retVal := make([]float32, NumFeatures)
	copy(retVal, phaseRows[phase])
	return retVal
}
