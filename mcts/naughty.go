package mcts

// naughty is an index into the tree's node arena. It stands in for *Node.
type naughty int

func (n naughty) isValid() bool { return n >= 0 }

const (
	nilNode naughty = -1
)
