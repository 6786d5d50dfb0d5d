package engine

import (
	"math/bits"

	"minimax-chess/rules"
)

// Score is an evaluation in pawns, always from White's point of view.
type Score float64

const (
	// MateScore is returned for a checkmated position, negative when White
	// is mated.
	MateScore Score = 1000
	DrawScore Score = 0

	mobilityWeight = 0.2
	scarcityBase   = 32
)

var bishopRays = [4]int{7, 9, -7, -9}

// Terms breaks a static evaluation into its components. Every term is
// white minus black.
type Terms struct {
	Material   float64
	Positional float64
	KingCorner float64
	KingCenter float64
	Mobility   float64
}

func (t Terms) Total() Score {
	return Score(t.Material + t.Positional + t.KingCorner + t.KingCenter + t.Mobility)
}

// Evaluator scores positions using a fixed set of tables.
type Evaluator struct {
	tables *Tables
}

func NewEvaluator(t *Tables) *Evaluator {
	if t == nil {
		t = DefaultTables
	}
	return &Evaluator{tables: t}
}

// Evaluate scores pos. bs must have been refreshed from pos.
func (e *Evaluator) Evaluate(pos rules.Position, bs *BitboardSet) Score {
	if pos.IsCheckmate() {
		if pos.WhiteToMove() {
			return -MateScore
		}
		return MateScore
	}
	if pos.IsDraw() {
		return DrawScore
	}
	return e.Terms(bs).Total()
}

// Terms computes the non-terminal components from the masks alone.
func (e *Evaluator) Terms(bs *BitboardSet) Terms {
	return Terms{
		Material:   e.material(bs),
		Positional: e.positional(bs),
		KingCorner: e.kingCorner(bs),
		KingCenter: e.kingCenter(bs),
		Mobility:   e.mobility(bs),
	}
}

func (e *Evaluator) material(bs *BitboardSet) float64 {
	var white, black float64
	for p := rules.Pawn; p < rules.King; p++ {
		white += float64(bits.OnesCount64(bs.Mask(rules.White, p))) * e.tables.Material[p]
		black += float64(bits.OnesCount64(bs.Mask(rules.Black, p))) * e.tables.Material[p]
	}
	return white - black
}

// Only knights and pawns have placement tables.
func (e *Evaluator) positional(bs *BitboardSet) float64 {
	t := e.tables
	var white, black float64
	squares(bs.Mask(rules.White, rules.Knight), func(sq int) { white += t.Knight[sq] })
	squares(bs.Mask(rules.White, rules.Pawn), func(sq int) { white += t.WhitePawn[sq] })
	squares(bs.Mask(rules.Black, rules.Knight), func(sq int) { black += t.Knight[sq] })
	squares(bs.Mask(rules.Black, rules.Pawn), func(sq int) { black += t.BlackPawn[sq] })
	return white - black
}

// onlyPawnsAndKings reports whether neither side has a piece other than
// pawns and its king.
func onlyPawnsAndKings(bs *BitboardSet) bool {
	for c := rules.White; c <= rules.Black; c++ {
		if bs.Side(c)&^(bs.Mask(c, rules.Pawn)|bs.Mask(c, rules.King)) != 0 {
			return false
		}
	}
	return true
}

// kingCorner rewards driving the enemy king to the edge, more strongly
// the emptier the board.
func (e *Evaluator) kingCorner(bs *BitboardSet) float64 {
	if onlyPawnsAndKings(bs) {
		return 0
	}
	wk, bk := bs.Mask(rules.White, rules.King), bs.Mask(rules.Black, rules.King)
	if wk == 0 || bk == 0 {
		return 0
	}
	scarcity := float64(scarcityBase-bits.OnesCount64(bs.Occupied())) / 100
	t := e.tables.KingCorner
	return (t[bits.TrailingZeros64(bk)] - t[bits.TrailingZeros64(wk)]) * scarcity
}

func (e *Evaluator) kingCenter(bs *BitboardSet) float64 {
	if !onlyPawnsAndKings(bs) {
		return 0
	}
	wk, bk := bs.Mask(rules.White, rules.King), bs.Mask(rules.Black, rules.King)
	if wk == 0 || bk == 0 {
		return 0
	}
	t := e.tables.KingCenter
	return t[bits.TrailingZeros64(wk)] - t[bits.TrailingZeros64(bk)]
}

// mobility counts empty squares on each bishop diagonal up to the first
// blocker. Rays are only clipped to the board's 0..63 range, so a ray that
// runs off the a or h file wraps onto the next rank.
func (e *Evaluator) mobility(bs *BitboardSet) float64 {
	occupied := bs.Occupied()
	count := func(c rules.Color) int {
		n := 0
		squares(bs.Mask(c, rules.Bishop), func(from int) {
			for _, d := range bishopRays {
				sq := from
				for step := 0; step < 7; step++ {
					sq += d
					if sq < 0 || sq > 63 || occupied&(uint64(1)<<uint(sq)) != 0 {
						break
					}
					n++
				}
			}
		})
		return n
	}
	return float64(count(rules.White)-count(rules.Black)) * mobilityWeight
}
