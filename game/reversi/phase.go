package reversi

import (
	"strings"

	"github.com/pkg/errors"
)

// Phase is the stage of the game, derived from the number of empty cells.
type Phase int

const (
	Early Phase = iota
	Middle
	Late
)

func (p Phase) String() string {
	switch p {
	case Early:
		return "early"
	case Middle:
		return "middle"
	case Late:
		return "late"
	}
	return "UNKNOWN PHASE"
}

// PhaseFor classifies a count of empty cells: more than 45 is Early, 16 to 45 is Middle, 15 or fewer is Late.
func PhaseFor(empty int) Phase {
	switch {
	case empty > 45:
		return Early
	case empty > 15:
		return Middle
	}
	return Late
}

// PhaseOf returns the phase of the board.
func PhaseOf(b *Board) Phase { return PhaseFor(b.Empty()) }

// ParsePhase parses "early", "middle" or "late".
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early":
		return Early, nil
	case "middle":
		return Middle, nil
	case "late":
		return Late, nil
	}
	return Early, errors.Errorf("Unknown phase %q", s)
}
