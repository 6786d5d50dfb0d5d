package engine

import (
	"math/bits"

	"minimax-chess/rules"
)

// BitboardSet holds one occupancy mask per (color, piece type). It is a
// cache of the position it was last refreshed from and is never patched
// incrementally.
type BitboardSet struct {
	masks [2][rules.NumPieceTypes]uint64
}

// Refresh rebuilds every mask from pos.
func (bs *BitboardSet) Refresh(pos rules.Position) {
	for c := rules.White; c <= rules.Black; c++ {
		for p := rules.Pawn; p <= rules.King; p++ {
			bs.masks[c][p] = pos.Occupancy(c, p)
		}
	}
}

func (bs *BitboardSet) Mask(c rules.Color, p rules.Piece) uint64 {
	return bs.masks[c][p]
}

// Side is the union of every mask of color c.
func (bs *BitboardSet) Side(c rules.Color) uint64 {
	var all uint64
	for _, m := range bs.masks[c] {
		all |= m
	}
	return all
}

func (bs *BitboardSet) Occupied() uint64 {
	return bs.Side(rules.White) | bs.Side(rules.Black)
}

// Count returns the popcount summed over all twelve masks.
func (bs *BitboardSet) Count() int {
	n := 0
	for c := range bs.masks {
		for _, m := range bs.masks[c] {
			n += bits.OnesCount64(m)
		}
	}
	return n
}

// Check verifies that no square is claimed twice and that the masks agree
// with the piece count reported by the rules engine.
func (bs *BitboardSet) Check(pieceCount int) error {
	var seen uint64
	for c := range bs.masks {
		for p, m := range bs.masks[c] {
			if seen&m != 0 {
				return violation("BitboardSet", "%s %s mask overlaps another mask", rules.Color(c), rules.Piece(p))
			}
			seen |= m
		}
	}
	if n := bs.Count(); n != pieceCount {
		return violation("BitboardSet", "masks hold %d pieces, position reports %d", n, pieceCount)
	}
	return nil
}

// squares calls fn for every set bit of bb, lowest square first.
func squares(bb uint64, fn func(sq int)) {
	for bb != 0 {
		sq := bits.TrailingZeros64(bb)
		fn(sq)
		bb &= bb - 1
	}
}
