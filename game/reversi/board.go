package reversi

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/othellobot/othello/game"
	"github.com/pkg/errors"
)

const (
	Size  = 8
	Cells = Size * Size
)

var (
	Black = game.Player(game.Black)
	White = game.Player(game.White)
	Tie   = game.Player(game.None)

	Pass   = game.Single(-1)
	Resign = game.Single(-2)
)

// directions are the 8 (row, col) offsets scanned when looking for flips.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Corners lists the four corner cells in row-major order.
var Corners = [4]Move{{0, 0}, {0, 7}, {7, 0}, {7, 7}}

// Move is a (row, col) placement on the board.
type Move struct {
	Row, Col int
}

// Single converts the move into its row-major index.
func (m Move) Single() game.Single { return game.Single(m.Row*Size + m.Col) }

// MoveFromSingle converts a row-major index back into a Move. Passes and resignations are not moves.
func MoveFromSingle(s game.Single) (Move, bool) {
	if s < 0 || int(s) >= Cells {
		return Move{}, false
	}
	return Move{Row: int(s) / Size, Col: int(s) % Size}, true
}

// String returns the move in the usual column-letter, 1-based row notation (e.g. "F5").
func (m Move) String() string { return fmt.Sprintf("%c%d", 'A'+m.Col, m.Row+1) }

// ParseMove parses a move written as "F5" (case insensitive).
func ParseMove(s string) (Move, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Move{}, errors.Errorf("Cannot parse move %q", s)
	}
	m := Move{Row: int(s[1] - '1'), Col: int(s[0] - 'A')}
	if !onBoard(m.Row, m.Col) {
		return Move{}, errors.Errorf("Move %q is off the board", s)
	}
	return m, nil
}

// IsCorner returns true if the move lands on one of the four corners.
func (m Move) IsCorner() bool {
	return (m.Row == 0 || m.Row == Size-1) && (m.Col == 0 || m.Col == Size-1)
}

// IsEdge returns true if the move lands on the border but not on a corner.
func (m Move) IsEdge() bool {
	border := m.Row == 0 || m.Row == Size-1 || m.Col == 0 || m.Col == Size-1
	return border && !m.IsCorner()
}

func onBoard(row, col int) bool { return row >= 0 && row < Size && col >= 0 && col < Size }

// Board is an 8x8 grid of cells. It is a value type: assigning or passing a Board copies it.
type Board [Cells]game.Colour

// New returns the standard starting position.
func New() Board {
	var b Board
	b.Set(3, 3, game.White)
	b.Set(3, 4, game.Black)
	b.Set(4, 3, game.Black)
	b.Set(4, 4, game.White)
	return b
}

func (b *Board) At(row, col int) game.Colour { return b[row*Size+col] }

func (b *Board) Set(row, col int, c game.Colour) { b[row*Size+col] = c }

// Valid returns true if every cell is empty, black or white.
func (b *Board) Valid() bool {
	for _, c := range b {
		if c != game.None && c != game.Black && c != game.White {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board { return *b }

// IsLegal returns true if the player may place a disc at (row, col).
func (b *Board) IsLegal(row, col int, p game.Player) bool {
	if !onBoard(row, col) || b.At(row, col) != game.None || !p.IsValid() {
		return false
	}
	for _, d := range directions {
		if b.run(row, col, d[0], d[1], p) > 0 {
			return true
		}
	}
	return false
}

// run returns the length of the run of opponent discs starting next to (row, col) in direction (dr, dc)
// that is closed by one of the player's own discs. Open runs have length 0.
func (b *Board) run(row, col, dr, dc int, p game.Player) int {
	own := game.Colour(p)
	opp := game.Colour(p.Opponent())
	r, c := row+dr, col+dc
	var n int
	for onBoard(r, c) && b.At(r, c) == opp {
		r += dr
		c += dc
		n++
	}
	if n == 0 || !onBoard(r, c) || b.At(r, c) != own {
		return 0
	}
	return n
}

// FlipsFor returns every disc that would be flipped by the player placing at (row, col).
// The result is empty if the placement is not legal.
func (b *Board) FlipsFor(row, col int, p game.Player) []Move {
	if !onBoard(row, col) || b.At(row, col) != game.None || !p.IsValid() {
		return nil
	}
	var flips []Move
	for _, d := range directions {
		n := b.run(row, col, d[0], d[1], p)
		for i := 1; i <= n; i++ {
			flips = append(flips, Move{Row: row + i*d[0], Col: col + i*d[1]})
		}
	}
	return flips
}

// Apply places the player's disc at (row, col) and flips the bracketed discs.
// If the move is not legal, the board is left untouched and false is returned.
func (b *Board) Apply(row, col int, p game.Player) bool {
	flips := b.FlipsFor(row, col, p)
	if len(flips) == 0 {
		return false
	}
	own := game.Colour(p)
	b.Set(row, col, own)
	for _, f := range flips {
		b.Set(f.Row, f.Col, own)
	}
	return true
}

// LegalMoves returns all the legal moves of the player in row-major order.
func (b *Board) LegalMoves(p game.Player) []Move {
	var moves []Move
	for i := 0; i < Cells; i++ {
		row, col := i/Size, i%Size
		if b.IsLegal(row, col, p) {
			moves = append(moves, Move{Row: row, Col: col})
		}
	}
	return moves
}

// HasMoves returns true if the player has at least one legal move.
func (b *Board) HasMoves(p game.Player) bool {
	for i := 0; i < Cells; i++ {
		if b.IsLegal(i/Size, i%Size, p) {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the board is full or neither player can move.
func (b *Board) IsTerminal() bool {
	if b.Empty() == 0 {
		return true
	}
	return !b.HasMoves(Black) && !b.HasMoves(White)
}

// Winner returns the winner of a finished game. A tie is reported as game.None.
// ok is false if the game has not ended.
func (b *Board) Winner() (winner game.Player, ok bool) {
	if !b.IsTerminal() {
		return Tie, false
	}
	black, white := b.Count(game.Black), b.Count(game.White)
	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	}
	return Tie, true
}

// Count counts the cells of the given colour.
func (b *Board) Count(c game.Colour) (n int) {
	for _, v := range b {
		if v == c {
			n++
		}
	}
	return n
}

// Empty counts the empty cells.
func (b *Board) Empty() int { return b.Count(game.None) }

// Fingerprint is an exact, collision free identity of a board.
type Fingerprint struct {
	Black, White uint64
}

// Discs returns the number of discs recorded in the fingerprint.
func (f Fingerprint) Discs() int { return bits.OnesCount64(f.Black) + bits.OnesCount64(f.White) }

func (b *Board) Fingerprint() (f Fingerprint) {
	for i, v := range b {
		switch v {
		case game.Black:
			f.Black |= 1 << uint(i)
		case game.White:
			f.White |= 1 << uint(i)
		}
	}
	return f
}

func (b Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		for i, v := range b {
			if i%Size == 0 {
				fmt.Fprint(s, "⎢ ")
			}
			fmt.Fprintf(s, "%s ", v)
			if (i+1)%Size == 0 {
				fmt.Fprint(s, "⎥\n")
			}
		}
	}
}
