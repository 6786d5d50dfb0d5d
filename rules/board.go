package rules

import (
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

const (
	noSquare       = -1
	fiftyMoveLimit = 100

	fileA uint64 = 0x0101010101010101
	fileH uint64 = 0x8080808080808080
)

// Squares whose occupant losing its place (moved or captured) clears a castling right.
var castleMask = [64]uint8{
	0:  CastleWhiteQueen,
	4:  CastleWhiteKing | CastleWhiteQueen,
	7:  CastleWhiteKing,
	56: CastleBlackQueen,
	60: CastleBlackKing | CastleBlackQueen,
	63: CastleBlackKing,
}

// posKey identifies a position for repetition: placement, side to move,
// castling rights and a usable en passant square. dragontoothmg's own hash
// also covers en passant squares nobody can capture on, so it is not used.
type posKey struct {
	white, black dragontoothmg.Bitboards
	wtomove      bool
	castling     uint8
	epTarget     int8
}

// keyLink is one node of the position history. Links are never modified
// once created, so sibling branches can share their common prefix.
type keyLink struct {
	key  posKey
	prev *keyLink
}

// Board adapts a dragontoothmg board to the Position interface.
type Board struct {
	board    dragontoothmg.Board
	castling uint8
	epTarget int
	history  *keyLink
}

var _ Position = Board{}

func (b Board) LegalMoves() []Move {
	db := b.board
	raw := db.GenerateLegalMoves()
	moves := make([]Move, len(raw))
	for i, m := range raw {
		moves[i] = Move(m)
	}
	return moves
}

func (b Board) Apply(m Move) Position {
	return b.apply(m)
}

func (b Board) apply(m Move) Board {
	from, to := m.From(), m.To()
	ours := b.side(b.sideToMove())
	isPawn := ours.Pawns&(uint64(1)<<uint(from)) != 0

	next := b
	next.board.Apply(dragontoothmg.Move(m))
	next.castling = b.castling &^ castleMask[from] &^ castleMask[to]
	next.epTarget = noSquare
	if isPawn && (to-from == 16 || from-to == 16) {
		target := (from + to) / 2
		if next.pawnCanTake(target) {
			next.epTarget = target
		}
	}
	next.history = &keyLink{key: next.key(), prev: b.history}
	return next
}

// ApplyUCI plays a move given in UCI notation, checking it against the legal moves.
func (b Board) ApplyUCI(text string) (Board, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, m := range b.LegalMoves() {
		if m.String() == text {
			return b.apply(m), nil
		}
	}
	return b, errors.Wrapf(ErrInvalidMove, "%q is not legal in %s", text, b.FEN())
}

func (b Board) IsCapture(m Move) bool {
	to := m.To()
	if b.side(b.sideToMove().Other()).All&(uint64(1)<<uint(to)) != 0 {
		return true
	}
	if to != b.epTarget {
		return false
	}
	return b.side(b.sideToMove()).Pawns&(uint64(1)<<uint(m.From())) != 0
}

func (b Board) InCheck() bool {
	db := b.board
	return db.OurKingInCheck()
}

func (b Board) IsCheckmate() bool {
	return b.InCheck() && !b.hasLegalMoves()
}

func (b Board) IsStalemate() bool {
	return !b.InCheck() && !b.hasLegalMoves()
}

// IsDraw covers stalemate, the fifty-move rule, threefold repetition and
// positions where neither side can mate.
func (b Board) IsDraw() bool {
	if b.board.Halfmoveclock >= fiftyMoveLimit {
		return true
	}
	if b.repetitions() >= 2 {
		return true
	}
	if b.insufficientMaterial() {
		return true
	}
	return b.IsStalemate()
}

func (b Board) IsGameOver() bool {
	return !b.hasLegalMoves() || b.IsDraw()
}

func (b Board) PieceCount() int {
	return bits.OnesCount64(b.board.White.All | b.board.Black.All)
}

func (b Board) PieceAt(sq int) (Piece, Color, bool) {
	if sq < 0 || sq > 63 {
		return 0, White, false
	}
	for _, c := range [2]Color{White, Black} {
		bb := b.side(c)
		if bb.All&(uint64(1)<<uint(sq)) == 0 {
			continue
		}
		for p := Pawn; p <= King; p++ {
			if b.Occupancy(c, p)&(uint64(1)<<uint(sq)) != 0 {
				return p, c, true
			}
		}
	}
	return 0, White, false
}

func (b Board) Occupancy(c Color, p Piece) uint64 {
	bb := b.side(c)
	switch p {
	case Pawn:
		return bb.Pawns
	case Knight:
		return bb.Knights
	case Bishop:
		return bb.Bishops
	case Rook:
		return bb.Rooks
	case Queen:
		return bb.Queens
	case King:
		return bb.Kings
	}
	return 0
}

func (b Board) WhiteToMove() bool {
	return b.board.Wtomove
}

func (b Board) CastlingRights() uint8 {
	return b.castling
}

// EnPassant reports the en passant target square, only when a pawn of the
// side to move actually attacks it.
func (b Board) EnPassant() (int, bool) {
	return b.epTarget, b.epTarget != noSquare
}

// HalfmoveClock is the number of plies since the last capture or pawn move.
func (b Board) HalfmoveClock() int {
	return int(b.board.Halfmoveclock)
}

// FEN renders the position. Castling and en passant come from the adapter's
// own tracking so that the output agrees with CastlingRights and EnPassant.
func (b Board) FEN() string {
	db := b.board
	fields := strings.Fields(db.ToFen())
	if len(fields) < 4 {
		return db.ToFen()
	}
	fields[2] = castlingString(b.castling)
	fields[3] = "-"
	if sq, ok := b.EnPassant(); ok {
		fields[3] = SquareName(sq)
	}
	return strings.Join(fields, " ")
}

var pieceGlyphs = [2][NumPieceTypes]string{
	{"♙", "♘", "♗", "♖", "♕", "♔"},
	{"♟", "♞", "♝", "♜", "♛", "♚"},
}

// String draws the board from White's side.
func (b Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			p, c, ok := b.PieceAt(rank*8 + file)
			if !ok {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(pieceGlyphs[c][p])
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func (b Board) key() posKey {
	return posKey{
		white:    b.board.White,
		black:    b.board.Black,
		wtomove:  b.board.Wtomove,
		castling: b.castling,
		epTarget: int8(b.epTarget),
	}
}

func (b Board) sideToMove() Color {
	if b.board.Wtomove {
		return White
	}
	return Black
}

func (b Board) side(c Color) *dragontoothmg.Bitboards {
	if c == White {
		return &b.board.White
	}
	return &b.board.Black
}

func (b Board) hasLegalMoves() bool {
	db := b.board
	return len(db.GenerateLegalMoves()) > 0
}

// pawnCanTake reports whether a pawn of the side to move attacks target.
func (b Board) pawnCanTake(target int) bool {
	tbb := uint64(1) << uint(target)
	var attackers uint64
	if b.board.Wtomove {
		attackers = ((tbb >> 9) &^ fileH) | ((tbb >> 7) &^ fileA)
		return attackers&b.board.White.Pawns != 0
	}
	attackers = ((tbb << 7) &^ fileH) | ((tbb << 9) &^ fileA)
	return attackers&b.board.Black.Pawns != 0
}

// repetitions counts earlier occurrences of the current position since the
// last irreversible move.
func (b Board) repetitions() int {
	if b.history == nil {
		return 0
	}
	count := 0
	link := b.history.prev
	for i := 1; link != nil && i <= int(b.board.Halfmoveclock); i++ {
		if link.key == b.history.key {
			count++
		}
		link = link.prev
	}
	return count
}

func (b Board) insufficientMaterial() bool {
	w, k := &b.board.White, &b.board.Black
	if w.Pawns|k.Pawns|w.Rooks|k.Rooks|w.Queens|k.Queens != 0 {
		return false
	}
	return bits.OnesCount64(w.Knights|w.Bishops|k.Knights|k.Bishops) <= 1
}
