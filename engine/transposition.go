package engine

import "minimax-chess/rules"

// Bound tells how a stored score relates to the true value of the position.
type Bound uint8

const (
	boundNone  Bound = iota // empty slot
	BoundExact              // score is exact
	BoundLower              // search failed high, true value >= score
	BoundUpper              // search failed low, true value <= score
)

const (
	DefaultTTEntries = 1 << 20
	clusterSize      = 4
)

type TTEntry struct {
	Key   uint64
	Depth int
	Move  rules.Move
	Score Score
	Bound Bound
}

// usable returns the cached score when the entry was searched at least as
// deep as requested and, for bounds, proves a cutoff against the window.
func (e *TTEntry) usable(depth int, alpha, beta Score) (Score, bool) {
	if e.Depth < depth {
		return 0, false
	}
	switch e.Bound {
	case BoundExact:
		return e.Score, true
	case BoundLower:
		if e.Score >= beta {
			return e.Score, true
		}
	case BoundUpper:
		if e.Score <= alpha {
			return e.Score, true
		}
	}
	return 0, false
}

// TransTable is a fixed-size table of clusters. A key maps to one cluster
// and may live in any of its slots.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
	used         int
}

// NewTransTable allocates room for capacity entries, rounded up to whole
// clusters.
func NewTransTable(capacity int) *TransTable {
	clusters := (capacity + clusterSize - 1) / clusterSize
	if clusters < 1 {
		clusters = 1
	}
	return &TransTable{
		entries:      make([]TTEntry, clusters*clusterSize),
		clusterCount: uint64(clusters),
	}
}

func (tt *TransTable) cluster(key uint64) []TTEntry {
	base := int(key%tt.clusterCount) * clusterSize
	return tt.entries[base : base+clusterSize]
}

func (tt *TransTable) Lookup(key uint64) (TTEntry, bool) {
	for _, e := range tt.cluster(key) {
		if e.Bound != boundNone && e.Key == key {
			return e, true
		}
	}
	return TTEntry{}, false
}

// Store prefers the slot already holding key, then an empty slot, and
// otherwise evicts the shallowest entry of the cluster.
func (tt *TransTable) Store(key uint64, depth int, score Score, move rules.Move, bound Bound) {
	if bound == boundNone {
		panic(violation("TransTable.Store", "entry for %#x has no bound", key))
	}
	cl := tt.cluster(key)
	target := -1

	for i := range cl {
		if cl[i].Bound != boundNone && cl[i].Key == key {
			target = i
			break
		}
	}

	if target == -1 {
		for i := range cl {
			if cl[i].Bound == boundNone {
				target = i
				tt.used++
				break
			}
		}
	}

	if target == -1 {
		target = 0
		for i := 1; i < len(cl); i++ {
			if cl[i].Depth < cl[target].Depth {
				target = i
			}
		}
	}

	cl[target] = TTEntry{Key: key, Depth: depth, Move: move, Score: score, Bound: bound}
}

func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.used = 0
}

// Len is the number of occupied slots.
func (tt *TransTable) Len() int { return tt.used }

func (tt *TransTable) Cap() int { return len(tt.entries) }
