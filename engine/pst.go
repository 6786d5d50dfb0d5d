package engine

import "minimax-chess/rules"

// Tables holds the fixed evaluation weights, in pawns. Square tables are
// laid out a1..h1 first and a8..h8 last, so index == square.
type Tables struct {
	Material   [rules.NumPieceTypes]float64
	Knight     [64]float64
	WhitePawn  [64]float64
	BlackPawn  [64]float64
	KingCenter [64]float64
	KingCorner [64]float64
}

// DefaultTables are shared by every engine. Do not modify.
var DefaultTables = &Tables{
	Material: [rules.NumPieceTypes]float64{
		rules.Pawn:   1,
		rules.Knight: 3,
		rules.Bishop: 3,
		rules.Rook:   5,
		rules.Queen:  9,
	},

	Knight: [64]float64{
		-0.50, -0.40, -0.30, -0.30, -0.30, -0.30, -0.40, -0.50,
		-0.40, -0.20, 0.00, 0.05, 0.05, 0.00, -0.20, -0.40,
		-0.30, 0.05, 0.10, 0.15, 0.15, 0.10, 0.05, -0.30,
		-0.30, 0.00, 0.15, 0.20, 0.20, 0.15, 0.00, -0.30,
		-0.30, 0.00, 0.15, 0.20, 0.20, 0.15, 0.00, -0.30,
		-0.30, 0.05, 0.10, 0.15, 0.15, 0.10, 0.05, -0.30,
		-0.40, -0.20, 0.00, 0.05, 0.05, 0.00, -0.20, -0.40,
		-0.50, -0.40, -0.30, -0.30, -0.30, -0.30, -0.40, -0.50,
	},

	WhitePawn: [64]float64{
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.05, 0.10, 0.10, -0.20, -0.20, 0.10, 0.10, 0.05,
		0.05, -0.05, -0.10, 0.00, 0.00, -0.10, -0.05, 0.05,
		0.00, 0.00, 0.00, 0.20, 0.20, 0.00, 0.00, 0.00,
		0.05, 0.05, 0.10, 0.25, 0.25, 0.10, 0.05, 0.05,
		0.10, 0.10, 0.20, 0.30, 0.30, 0.20, 0.10, 0.10,
		0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
	},

	// WhitePawn seen from the other side of the board.
	BlackPawn: [64]float64{
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50,
		0.10, 0.10, 0.20, 0.30, 0.30, 0.20, 0.10, 0.10,
		0.05, 0.05, 0.10, 0.25, 0.25, 0.10, 0.05, 0.05,
		0.00, 0.00, 0.00, 0.20, 0.20, 0.00, 0.00, 0.00,
		0.05, -0.05, -0.10, 0.00, 0.00, -0.10, -0.05, 0.05,
		0.05, 0.10, 0.10, -0.20, -0.20, 0.10, 0.10, 0.05,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
	},

	// Pulls kings to the middle once only pawns are left.
	KingCenter: [64]float64{
		-0.50, -0.40, -0.30, -0.20, -0.20, -0.30, -0.40, -0.50,
		-0.30, -0.20, -0.10, 0.00, 0.00, -0.10, -0.20, -0.30,
		-0.30, -0.10, 0.20, 0.30, 0.30, 0.20, -0.10, -0.30,
		-0.30, -0.10, 0.30, 0.40, 0.40, 0.30, -0.10, -0.30,
		-0.30, -0.10, 0.30, 0.40, 0.40, 0.30, -0.10, -0.30,
		-0.30, -0.10, 0.20, 0.30, 0.30, 0.20, -0.10, -0.30,
		-0.30, -0.20, -0.10, 0.00, 0.00, -0.10, -0.20, -0.30,
		-0.50, -0.40, -0.30, -0.20, -0.20, -0.30, -0.40, -0.50,
	},

	// Mating net: high on the edges, highest in the corners.
	KingCorner: [64]float64{
		1.00, 0.80, 0.60, 0.50, 0.50, 0.60, 0.80, 1.00,
		0.80, 0.50, 0.30, 0.20, 0.20, 0.30, 0.50, 0.80,
		0.60, 0.30, 0.10, 0.00, 0.00, 0.10, 0.30, 0.60,
		0.50, 0.20, 0.00, 0.00, 0.00, 0.00, 0.20, 0.50,
		0.50, 0.20, 0.00, 0.00, 0.00, 0.00, 0.20, 0.50,
		0.60, 0.30, 0.10, 0.00, 0.00, 0.10, 0.30, 0.60,
		0.80, 0.50, 0.30, 0.20, 0.20, 0.30, 0.50, 0.80,
		1.00, 0.80, 0.60, 0.50, 0.50, 0.60, 0.80, 1.00,
	},
}
