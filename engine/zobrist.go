package engine

import (
	"math/rand"

	"minimax-chess/rules"
)

// DefaultSeed keeps hashes reproducible between runs and tests.
const DefaultSeed = 0xC0DE

// KeyTable holds the random keys XORed together into a position hash.
type KeyTable struct {
	Pieces     [2][rules.NumPieceTypes][64]uint64
	SideToMove uint64 // black to move
	Castling   [16]uint64
	EnPassant  [8]uint64 // by file
}

// DefaultKeys is built once at startup and never modified.
var DefaultKeys = NewKeyTable(DefaultSeed)

func NewKeyTable(seed int64) *KeyTable {
	rnd := rand.New(rand.NewSource(seed))
	kt := &KeyTable{}
	for c := range kt.Pieces {
		for p := range kt.Pieces[c] {
			for sq := range kt.Pieces[c][p] {
				kt.Pieces[c][p][sq] = rnd.Uint64()
			}
		}
	}
	for cr := range kt.Castling {
		kt.Castling[cr] = rnd.Uint64()
	}
	for f := range kt.EnPassant {
		kt.EnPassant[f] = rnd.Uint64()
	}
	kt.SideToMove = rnd.Uint64()
	return kt
}

// Hasher computes Zobrist hashes from scratch.
type Hasher struct {
	keys *KeyTable
}

func NewHasher(keys *KeyTable) *Hasher {
	if keys == nil {
		keys = DefaultKeys
	}
	return &Hasher{keys: keys}
}

func (h *Hasher) Hash(pos rules.Position) uint64 {
	var key uint64
	for c := rules.White; c <= rules.Black; c++ {
		for p := rules.Pawn; p <= rules.King; p++ {
			squares(pos.Occupancy(c, p), func(sq int) {
				key ^= h.keys.Pieces[c][p][sq]
			})
		}
	}
	if !pos.WhiteToMove() {
		key ^= h.keys.SideToMove
	}
	key ^= h.keys.Castling[pos.CastlingRights()&0xF]
	if sq, ok := pos.EnPassant(); ok {
		key ^= h.keys.EnPassant[sq%8]
	}
	return key
}
