package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

type Status uint32

const (
	Invalid Status = iota
	Active
)

func (a Status) String() string {
	switch a {
	case Invalid:
		return "Invalid"
	case Active:
		return "Active"
	}
	return "UNKNOWN STATUS"
}

// Node is a position in the search tree.
//
// wins are counted from the point of view of mover, the player whose move led to the node. A parent
// choosing among its children therefore reads every child's wins from its own side.
type Node struct {
	move    reversi.Move
	board   reversi.Board
	mover   game.Player
	toMove  game.Player // after any forced pass
	untried []reversi.Move

	visits uint32
	wins   float32
	status Status

	id     naughty
	parent naughty
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Move: %v Mover: %v Visits: %v Wins: %v Untried: %d Status: %v}", n.id, n.move, n.mover, n.visits, n.wins, len(n.untried), n.status)
}

// Move gets the move that led to the node.
func (n *Node) Move() reversi.Move { return n.move }

// Board returns the position at the node.
func (n *Node) Board() reversi.Board { return n.board }

// Mover returns the player whose move led to the node.
func (n *Node) Mover() game.Player { return n.mover }

// ToMove returns the player to move at the node.
func (n *Node) ToMove() game.Player { return n.toMove }

func (n *Node) Visits() uint32 { return n.visits }

func (n *Node) Wins() float32 { return n.wins }

// WinRate is the share of wins of the player who moved into the node. Unvisited nodes have a win rate of 0.
func (n *Node) WinRate() float32 {
	if n.visits == 0 {
		return 0
	}
	return n.wins / float32(n.visits)
}

// IsExpandable returns true if there are moves that do not have a child yet.
func (n *Node) IsExpandable() bool { return len(n.untried) > 0 }

func (n *Node) IsActive() bool { return n.status == Active }

func (n *Node) ID() int { return int(n.id) }

// update adds a result seen from the perspective of the given player.
func (n *Node) update(result float32, perspective game.Player) {
	n.visits++
	if perspective == n.mover {
		n.wins += result
		return
	}
	n.wins += 1 - result
}

// uct is the upper confidence bound of the child, given its parent's visits and the exploration weight.
func (n *Node) uct(parentVisits uint32, c, cornerBonus float32) float32 {
	exploration := math32.Sqrt(math32.Log(float32(parentVisits)) / float32(n.visits))
	retVal := n.WinRate() + c*exploration
	if n.move.IsCorner() {
		retVal += cornerBonus
	}
	return retVal
}

func (n *Node) reset() {
	n.move = reversi.Move{}
	n.board = reversi.Board{}
	n.mover = reversi.Tie
	n.toMove = reversi.Tie
	n.untried = n.untried[:0]
	n.visits = 0
	n.wins = 0
	n.status = Invalid
	n.parent = nilNode
}
