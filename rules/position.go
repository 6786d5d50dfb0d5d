package rules

// Position is everything the search core needs from the rules of the game.
// Implementations have value semantics: Apply never changes the receiver.
type Position interface {
	LegalMoves() []Move
	Apply(m Move) Position
	IsCapture(m Move) bool

	IsCheckmate() bool
	InCheck() bool
	IsDraw() bool
	IsGameOver() bool

	PieceCount() int
	PieceAt(sq int) (Piece, Color, bool)
	Occupancy(c Color, p Piece) uint64

	WhiteToMove() bool
	CastlingRights() uint8
	EnPassant() (int, bool)

	FEN() string
	String() string
}

// Castling right bits, as reported by CastlingRights.
const (
	CastleWhiteKing uint8 = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)
