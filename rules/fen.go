package rules

import (
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrInvalidMove = errors.New("invalid move")
)

// NewGame returns the standard starting position.
func NewGame() Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseFEN validates a FEN string and builds a Board from it. The move
// counters may be omitted.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return Board{}, errors.Wrapf(ErrInvalidFEN, "%q: expected 4 to 6 fields, got %d", fen, len(fields))
	}
	for len(fields) < 6 {
		if len(fields) == 4 {
			fields = append(fields, "0")
		} else {
			fields = append(fields, "1")
		}
	}

	grid, err := validatePlacement(fields[0])
	if err != nil {
		return Board{}, errors.Wrapf(err, "%q", fen)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return Board{}, errors.Wrapf(ErrInvalidFEN, "%q: side to move %q", fen, fields[1])
	}
	castling, ok := parseCastling(fields[2])
	if !ok {
		return Board{}, errors.Wrapf(ErrInvalidFEN, "%q: castling field %q", fen, fields[2])
	}
	if err := checkCastlingPieces(grid, castling); err != nil {
		return Board{}, errors.Wrapf(err, "%q", fen)
	}
	ep := noSquare
	if fields[3] != "-" {
		sq, ok := parseSquare(fields[3])
		if !ok || (sq/8 != 2 && sq/8 != 5) {
			return Board{}, errors.Wrapf(ErrInvalidFEN, "%q: en passant field %q", fen, fields[3])
		}
		ep = sq
	}
	// dragontoothmg keeps the clocks in a uint8 and a uint16.
	if _, err := strconv.ParseUint(fields[4], 10, 8); err != nil {
		return Board{}, errors.Wrapf(ErrInvalidFEN, "%q: halfmove clock %q", fen, fields[4])
	}
	if _, err := strconv.ParseUint(fields[5], 10, 16); err != nil {
		return Board{}, errors.Wrapf(ErrInvalidFEN, "%q: fullmove number %q", fen, fields[5])
	}

	b := Board{
		board:    dragontoothmg.ParseFen(strings.Join(fields, " ")),
		castling: castling,
		epTarget: noSquare,
	}
	if ep != noSquare && b.pawnCanTake(ep) {
		b.epTarget = ep
	}
	b.history = &keyLink{key: b.key()}
	return b, nil
}

// validatePlacement checks the board field and returns the piece letter on
// each square, zero for empty squares.
func validatePlacement(placement string) ([64]byte, error) {
	var grid [64]byte
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return grid, errors.Wrapf(ErrInvalidFEN, "expected 8 ranks, got %d", len(ranks))
	}
	var kings [2]int
	for i, rank := range ranks {
		files := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				if files < 8 {
					grid[(7-i)*8+files] = byte(c)
				}
				files++
				if c == 'K' {
					kings[White]++
				} else if c == 'k' {
					kings[Black]++
				}
			default:
				return grid, errors.Wrapf(ErrInvalidFEN, "unexpected character %q in rank %d", c, 8-i)
			}
		}
		if files != 8 {
			return grid, errors.Wrapf(ErrInvalidFEN, "rank %d has %d files", 8-i, files)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return grid, errors.Wrapf(ErrInvalidFEN, "need one king per side, got %d white and %d black", kings[White], kings[Black])
	}
	return grid, nil
}

// Home squares of the king and rook each castling right needs.
var castlingPieces = []struct {
	right      uint8
	king, rook int
	kc, rc     byte
}{
	{CastleWhiteKing, 4, 7, 'K', 'R'},
	{CastleWhiteQueen, 4, 0, 'K', 'R'},
	{CastleBlackKing, 60, 63, 'k', 'r'},
	{CastleBlackQueen, 60, 56, 'k', 'r'},
}

// checkCastlingPieces rejects rights whose king or rook has left home.
// dragontoothmg would otherwise castle with a missing rook.
func checkCastlingPieces(grid [64]byte, rights uint8) error {
	for _, cp := range castlingPieces {
		if rights&cp.right == 0 {
			continue
		}
		if grid[cp.king] != cp.kc || grid[cp.rook] != cp.rc {
			return errors.Wrapf(ErrInvalidFEN, "castling right %s without king on %s and rook on %s",
				castlingString(cp.right), SquareName(cp.king), SquareName(cp.rook))
		}
	}
	return nil
}

func parseCastling(field string) (uint8, bool) {
	if field == "-" {
		return 0, true
	}
	var rights uint8
	for _, c := range field {
		switch c {
		case 'K':
			rights |= CastleWhiteKing
		case 'Q':
			rights |= CastleWhiteQueen
		case 'k':
			rights |= CastleBlackKing
		case 'q':
			rights |= CastleBlackQueen
		default:
			return 0, false
		}
	}
	return rights, true
}

func castlingString(rights uint8) string {
	if rights == 0 {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if rights&(1<<uint(i)) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
