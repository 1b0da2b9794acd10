package search

import (
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
)

// Flag is the kind of bound a stored score represents.
type Flag uint8

const (
	Exact Flag = iota
	LowerBound
	UpperBound
)

func (f Flag) String() string {
	switch f {
	case Exact:
		return "Exact"
	case LowerBound:
		return "LowerBound"
	case UpperBound:
		return "UpperBound"
	}
	return "UNKNOWN FLAG"
}

// Key identifies a searched node: the position, the player to move and the remaining depth.
type Key struct {
	reversi.Fingerprint
	Player game.Player
	Depth  int
}

type Entry struct {
	Score float32
	Depth int
	Flag  Flag
}

// Table is a transposition table. It belongs to a single engine and is not safe for concurrent use.
//
// When the table holds more than its capacity it is cleared before the next store.
type Table struct {
	entries  map[Key]Entry
	capacity int

	probes, hits int
}

// NewTable creates a table. A capacity <= 0 means unbounded.
func NewTable(capacity int) *Table {
	return &Table{
		entries:  make(map[Key]Entry),
		capacity: capacity,
	}
}

// Probe returns the entry for the key if one was stored at a depth at least as deep as the key's.
func (t *Table) Probe(k Key) (Entry, bool) {
	t.probes++
	e, ok := t.entries[k]
	if !ok || e.Depth < k.Depth {
		return Entry{}, false
	}
	t.hits++
	return e, true
}

func (t *Table) Store(k Key, e Entry) {
	if t.capacity > 0 && len(t.entries) >= t.capacity {
		t.entries = make(map[Key]Entry)
	}
	t.entries[k] = e
}

func (t *Table) Len() int { return len(t.entries) }

// Stats returns the number of probes and hits since the last reset.
func (t *Table) Stats() (probes, hits int) { return t.probes, t.hits }

func (t *Table) Reset() {
	t.entries = make(map[Key]Entry)
	t.probes = 0
	t.hits = 0
}
