package engine

import (
	"github.com/samber/lo"

	"minimax-chess/rules"
)

// orderMoves puts captures first. Both groups keep their generation order.
func orderMoves(pos rules.Position, moves []rules.Move) []rules.Move {
	isCapture := func(m rules.Move, _ int) bool { return pos.IsCapture(m) }
	captures := lo.Filter(moves, isCapture)
	quiet := lo.Reject(moves, isCapture)
	return append(captures, quiet...)
}
