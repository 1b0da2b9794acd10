package reversi

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/othellobot/othello/game"
)

var (
	_ game.State          = &Game{}
	_ game.CoordConverter = &Game{}
)

// Game is a game of Othello with history. Black moves first.
type Game struct {
	sync.Mutex
	board      Board
	nextToMove game.Player
	passes     int

	history    []game.PlayerMove
	historical []historyEntry
}

type historyEntry struct {
	board  Board
	passes int
}

// NewGame creates a game at the standard starting position with Black to move.
func NewGame() *Game {
	return &Game{
		board:      New(),
		nextToMove: Black,
		history:    make([]game.PlayerMove, 0, Cells),
		historical: make([]historyEntry, 0, Cells),
	}
}

// NewGameFrom creates a game from an arbitrary position.
func NewGameFrom(b Board, toMove game.Player) *Game {
	g := NewGame()
	g.board = b
	g.nextToMove = toMove
	return g
}

func (g *Game) Format(s fmt.State, c rune) {
	g.board.Format(s, c)
}

// Current returns a copy of the current board.
func (g *Game) Current() Board { return g.board }

func (g *Game) BoardSize() (int, int) { return Size, Size }

// Board returns a copy of the cells in row-major order.
func (g *Game) Board() []game.Colour {
	retVal := make([]game.Colour, Cells)
	copy(retVal, g.board[:])
	return retVal
}

func (g *Game) ActionSpace() int { return Cells }

func (g *Game) Hash() game.Zobrist {
	f := g.board.Fingerprint()
	h := fnv.New32a()
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[0:], f.Black)
	binary.LittleEndian.PutUint64(buf[8:], f.White)
	buf[16] = byte(g.nextToMove)
	h.Write(buf[:])
	return game.Zobrist(h.Sum32())
}

func (g *Game) ToMove() game.Player { return g.nextToMove }

func (g *Game) SetToMove(p game.Player) { g.Lock(); g.nextToMove = p; g.Unlock() }

func (g *Game) Passes() int { return g.passes }

func (g *Game) MoveNumber() int { return len(g.history) }

func (g *Game) LastMove() game.PlayerMove {
	if len(g.history) > 0 {
		return g.history[len(g.history)-1]
	}
	return game.PlayerMove{Player: Tie, Single: Pass}
}

// Score is the disc count of the player.
func (g *Game) Score(p game.Player) float32 { return float32(g.board.Count(game.Colour(p))) }

func (g *Game) Ended() (ended bool, winner game.Player) {
	winner, ended = g.board.Winner()
	return ended, winner
}

// Check returns true if the move is legal. A pass is only legal when the player has no move
// and the game is not over.
func (g *Game) Check(m game.PlayerMove) bool {
	if !m.Player.IsValid() {
		return false
	}
	if m.Single.IsResignation() {
		return false
	}
	if m.Single.IsPass() {
		return !g.board.HasMoves(m.Player) && !g.board.IsTerminal()
	}
	mv, ok := MoveFromSingle(m.Single)
	if !ok {
		return false
	}
	return g.board.IsLegal(mv.Row, mv.Col, m.Player)
}

// Apply plays the move. Illegal moves leave the game unchanged.
func (g *Game) Apply(m game.PlayerMove) game.State {
	if !g.Check(m) {
		return g // no change to the state
	}
	g.Lock()
	g.historical = append(g.historical, historyEntry{board: g.board, passes: g.passes})
	if m.Single.IsPass() {
		g.passes++
	} else {
		mv, _ := MoveFromSingle(m.Single)
		g.board.Apply(mv.Row, mv.Col, m.Player)
		g.passes = 0
	}
	g.history = append(g.history, m)
	g.nextToMove = m.Player.Opponent()
	g.Unlock()
	return g
}

func (g *Game) Reset() {
	g.Lock()
	g.board = New()
	g.nextToMove = Black
	g.passes = 0
	g.history = g.history[:0]
	g.historical = g.historical[:0]
	g.Unlock()
}

func (g *Game) UndoLastMove() {
	g.Lock()
	defer g.Unlock()
	if len(g.history) == 0 {
		return
	}
	last := len(g.history) - 1
	h := g.historical[last]
	g.board = h.board
	g.passes = h.passes
	g.nextToMove = g.history[last].Player
	g.history = g.history[:last]
	g.historical = g.historical[:last]
}

func (g *Game) Eq(other game.State) bool {
	ot, ok := other.(*Game)
	if !ok {
		return false
	}
	return g.board == ot.board && g.nextToMove == ot.nextToMove
}

func (g *Game) Clone() game.State {
	g.Lock()
	retVal := &Game{
		board:      g.board,
		nextToMove: g.nextToMove,
		passes:     g.passes,
		history:    make([]game.PlayerMove, len(g.history), Cells),
		historical: make([]historyEntry, len(g.historical), Cells),
	}
	copy(retVal.history, g.history)
	copy(retVal.historical, g.historical)
	g.Unlock()
	return retVal
}

// Ltoi converts a coordinate into a row-major index.
func (g *Game) Ltoi(c game.Coord) game.Single { return Move{Row: int(c.X), Col: int(c.Y)}.Single() }

// Itol converts a row-major index into a coordinate.
func (g *Game) Itol(s game.Single) game.Coord {
	m, ok := MoveFromSingle(s)
	if !ok {
		return game.Coord{X: -1, Y: -1}
	}
	return game.Coord{X: int16(m.Row), Y: int16(m.Col)}
}
