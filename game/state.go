package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// String returns the name of the colour.
func (cl Colour) String() string { return fmt.Sprintf("%v", cl) }

// Player represents a player. It's also a colour.
type Player Colour

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

func (p Player) String() string { return Colour(p).String() }

// Opponent returns the other player. None has no opponent and is returned as is.
func (p Player) Opponent() Player {
	switch Colour(p) {
	case Black:
		return Player(White)
	case White:
		return Player(Black)
	}
	return p
}

// IsValid returns true if the player is Black or White.
func (p Player) IsValid() bool { return Colour(p) == Black || Colour(p) == White }

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Single == other.Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// Coord represents a (row, col) coordinate.
//
// The Coord uses a standard computer cartesian coordinates
//		- (0, 0) represents the top left
//		- (7, 7) represents the bottom right of an 8x8 board
type Coord struct {
	X, Y int16
}

func (c Coord) Eq(other Coord) bool { return c.X == other.X && c.Y == other.Y }

// Single represents a coordinate as a single number, utilized in a rowmajor fashion.
//		- 0 represents the top left
//		- 7 represents the top right
//		- 8 represents (1, 0)
// 		- -1 represents the "pass" move
//		- -2 represents the "resignation" move
type Single int32

// IsResignation returns true when the coordinate represents a "resignation" move
func (c Single) IsResignation() bool { return c == -2 }

// IsPass returns true when the coordinate represents a "pass" move
func (c Single) IsPass() bool { return c == -1 }

// State is any game that implements these and are able to report back
type State interface {
	// These methods represent the game state
	BoardSize() (int, int) // returns the board size
	Board() []Colour       // returns the board state
	ActionSpace() int      // returns the number of permissible actions
	Hash() Zobrist         // returns the hash of the board
	ToMove() Player        // returns the next player to move
	Passes() int           // returns number of consecutive passes that have been made
	MoveNumber() int       // returns count of moves so far that led to this point.
	LastMove() PlayerMove  // returns the last move that was made

	// Meta-game stuff
	Score(p Player) float32             // score of the given player
	Ended() (ended bool, winner Player) // has the game ended? if yes, then who's the winner?

	// interactions
	SetToMove(Player)         // set the next player to move
	Check(m PlayerMove) bool  // check if the placement is legal
	Apply(m PlayerMove) State // should return a GameState. The required side effect is the NextToMove has to change.
	Reset()                   // reset state
	UndoLastMove()

	// generics
	Eq(other State) bool
	Clone() State
}

// Zobrist is a type representing a "zobrist" hash.
type Zobrist uint32

// MetaState is a game being played in a wider context (a named match, a game number in a series).
type MetaState interface {
	Name() string // name of the game
	Epoch() int
	GameNumber() int
	Score(a Player) float64
	State() State
}

type CoordConverter interface {
	Ltoi(Coord) Single
	Itol(Single) Coord
}
