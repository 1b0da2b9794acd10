package mcts

import (
	"sync"

	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"lukechampine.com/frand"
)

// MCTS owns the search tree. Nodes live in a single arena and refer to each other by index,
// so there is no pointer chasing and freed nodes are recycled.
//
// An MCTS is meant to be used by one game at a time. The lock only serialises calls.
type MCTS struct {
	sync.Mutex
	Config
	rand *frand.RNG

	// memory related fields
	nodes    []Node
	children [][]naughty
	freelist []naughty

	root naughty

	// stats of the last search
	iterations int
	reused     bool

	lumberjack
}

func New(conf Config) *MCTS {
	rng := frand.New()
	if len(conf.Seed) == 32 {
		rng = frand.NewCustom(conf.Seed, 1024, 12)
	}
	retVal := &MCTS{
		Config: conf,
		rand:   rng,

		nodes:    make([]Node, 0, 4096),
		children: make([][]naughty, 0, 4096),
		root:     nilNode,

		lumberjack: makeLumberJack(),
	}
	return retVal
}

// New creates a node holding the position after the mover played move. A player who cannot move
// passes, so the node's player to move is the one who actually plays next.
func (t *MCTS) New(b reversi.Board, move reversi.Move, mover game.Player) (retVal naughty) {
	n := t.alloc()
	N := t.nodeFromNaughty(n)
	N.move = move
	N.board = b
	N.mover = mover
	N.toMove = mover.Opponent()
	if !b.HasMoves(N.toMove) && b.HasMoves(mover) {
		N.toMove = mover
	}
	N.untried = append(N.untried[:0], b.LegalMoves(N.toMove)...)
	N.status = Active
	N.parent = nilNode
	return n
}

// newRoot creates a root for the player to move. The root's mover is the player's opponent.
func (t *MCTS) newRoot(b reversi.Board, toMove game.Player) naughty {
	n := t.New(b, reversi.Move{Row: -1, Col: -1}, toMove.Opponent())
	N := t.nodeFromNaughty(n)
	N.toMove = toMove
	N.untried = append(N.untried[:0], b.LegalMoves(toMove)...)
	return n
}

// Nodes returns the number of live nodes.
func (t *MCTS) Nodes() int { return len(t.nodes) - len(t.freelist) }

// Root returns the current root, if any.
func (t *MCTS) Root() (*Node, bool) {
	if !t.root.isValid() {
		return nil, false
	}
	return t.nodeFromNaughty(t.root), true
}

// Iterations returns the number of iterations run by the last search.
func (t *MCTS) Iterations() int { return t.iterations }

// Reused returns true if the last search started from a subtree of the previous one.
func (t *MCTS) Reused() bool { return t.reused }

// nodeFromNaughty gets the node given its index. The pointer is only good until the next alloc.
func (t *MCTS) nodeFromNaughty(ptr naughty) *Node { return &t.nodes[int(ptr)] }

// Children returns a list of children
func (t *MCTS) Children(of naughty) []naughty { return t.children[of] }

func (t *MCTS) addChild(parent, child naughty) {
	t.children[parent] = append(t.children[parent], child)
	t.nodeFromNaughty(child).parent = parent
}

// alloc tries to get a node from the free list. If none is found a new node is allocated into the arena.
func (t *MCTS) alloc() naughty {
	l := len(t.freelist)
	if l == 0 {
		N := Node{
			id:     naughty(len(t.nodes)),
			parent: nilNode,
		}
		t.nodes = append(t.nodes, N)
		t.children = append(t.children, make([]naughty, 0, 16))
		return naughty(len(t.nodes) - 1)
	}

	i := t.freelist[l-1]
	t.freelist = t.freelist[:l-1]
	return i
}

// free puts the node back into the freelist.
func (t *MCTS) free(n naughty) {
	t.children[int(n)] = t.children[int(n)][:0]
	t.freelist = append(t.freelist, n)
	t.nodes[int(n)].reset()
}

// freeTree frees the subtree under n, except for keep and everything under it.
func (t *MCTS) freeTree(n, keep naughty) {
	if n == keep {
		return
	}
	for _, kid := range t.children[n] {
		t.freeTree(kid, keep)
	}
	t.free(n)
}

// findReusable looks for a node of the current tree that holds the given position with the same player to move:
// the root itself, one of its children, or a grandchild reached through the opponent's reply.
func (t *MCTS) findReusable(f reversi.Fingerprint, toMove game.Player) naughty {
	if !t.root.isValid() {
		return nilNode
	}
	matches := func(n naughty) bool {
		N := t.nodeFromNaughty(n)
		return N.toMove == toMove && N.board.Fingerprint() == f
	}
	if matches(t.root) {
		return t.root
	}
	for _, kid := range t.children[t.root] {
		if matches(kid) {
			return kid
		}
	}
	for _, kid := range t.children[t.root] {
		for _, grandkid := range t.children[kid] {
			if matches(grandkid) {
				return grandkid
			}
		}
	}
	return nilNode
}

// updateRoot makes the root hold the position. A matching node of the previous tree is promoted, keeping its
// statistics, and the rest of the tree is freed. Otherwise the tree is dropped and a fresh root is made.
func (t *MCTS) updateRoot(b reversi.Board, toMove game.Player) {
	found := t.findReusable(b.Fingerprint(), toMove)
	t.reused = found.isValid()
	if !t.reused {
		t.reset()
		t.root = t.newRoot(b, toMove)
		t.log("new root %v", t.root)
		return
	}
	if found != t.root {
		t.freeTree(t.root, found)
		t.nodeFromNaughty(found).parent = nilNode
		t.root = found
	}
	t.log("reusing %v", t.nodeFromNaughty(found))
}

// countChildren counts the nodes under n, recursively.
func (t *MCTS) countChildren(n naughty) (retVal int) {
	for _, kid := range t.children[n] {
		retVal += t.countChildren(kid) + 1
	}
	return retVal
}

// Reset drops the whole tree.
func (t *MCTS) Reset() {
	t.Lock()
	t.reset()
	t.Unlock()
}

func (t *MCTS) reset() {
	for i := range t.nodes {
		t.nodes[i].reset()
	}
	for i := range t.children {
		t.children[i] = t.children[i][:0]
	}
	t.nodes = t.nodes[:0]
	t.children = t.children[:0]
	t.freelist = t.freelist[:0]
	t.root = nilNode
}
