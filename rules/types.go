package rules

import (
	"github.com/dylhunn/dragontoothmg"
)

// Each bitboard uses little-endian rank-file mapping, same as dragontoothmg:
// square 0 is a1, square 7 is h1, square 63 is h8.

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Piece types are numbered from zero so they can index arrays directly.
type Piece uint8

const (
	Pawn Piece = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const NumPieceTypes = 6

var pieceLetters = [NumPieceTypes]byte{'p', 'n', 'b', 'r', 'q', 'k'}

func (p Piece) String() string {
	if p >= NumPieceTypes {
		return "?"
	}
	return string(pieceLetters[p])
}

// Move uses the dragontoothmg encoding, from LSB:
// 6 bits destination, 6 bits origin, 3 bits promotion piece.
type Move uint16

const NoMove Move = 0

func (m Move) To() int {
	return int(m & 0x3F)
}

func (m Move) From() int {
	return int((m & 0xFC0) >> 6)
}

// Promote reports the promotion piece, if any.
func (m Move) Promote() (Piece, bool) {
	p := dragontoothmg.Piece((m & 0x7000) >> 12)
	if p == dragontoothmg.Nothing {
		return 0, false
	}
	return fromDragonPiece(p), true
}

// String returns the move in UCI notation ("e2e4", "e7e8q", "0000").
func (m Move) String() string {
	dm := dragontoothmg.Move(m)
	return dm.String()
}

func fromDragonPiece(p dragontoothmg.Piece) Piece {
	return Piece(p - 1)
}

// SquareName converts a square index to algebraic form.
func SquareName(sq int) string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{byte('a' + sq%8), byte('1' + sq/8)})
}

func parseSquare(s string) (int, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, false
	}
	return int(s[1]-'1')*8 + int(s[0]-'a'), true
}
