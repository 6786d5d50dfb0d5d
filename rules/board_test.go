package rules

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func mustParse(t *testing.T, fen string) Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func play(t *testing.T, b Board, moves ...string) Board {
	t.Helper()
	for _, text := range moves {
		next, err := b.ApplyUCI(text)
		if err != nil {
			t.Fatalf("ApplyUCI(%s): %v", text, err)
		}
		b = next
	}
	return b
}

func TestParseFENStartPosition(t *testing.T) {
	b := mustParse(t, StartFEN)

	checks := []struct {
		sq    int
		piece Piece
		color Color
	}{
		{0, Rook, White},  // a1
		{4, King, White},  // e1
		{12, Pawn, White}, // e2
		{56, Rook, Black}, // a8
		{60, King, Black}, // e8
		{62, Knight, Black},
	}
	for _, c := range checks {
		p, col, ok := b.PieceAt(c.sq)
		if !ok || p != c.piece || col != c.color {
			t.Errorf("square %s: got %v %v (occupied=%v), want %v %v", SquareName(c.sq), col, p, ok, c.color, c.piece)
		}
	}
	if _, _, ok := b.PieceAt(28); ok {
		t.Errorf("expected e4 to be empty")
	}
	if b.PieceCount() != 32 {
		t.Errorf("piece count: got %d want 32", b.PieceCount())
	}
	if !b.WhiteToMove() {
		t.Errorf("expected white to move")
	}
	if b.CastlingRights() != 0xF {
		t.Errorf("castling rights: got %04b want 1111", b.CastlingRights())
	}
	if _, ok := b.EnPassant(); ok {
		t.Errorf("no en passant expected in the start position")
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNRR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e5 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqkbnr/ppppXppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w K - 0 1",         // no rook for the right
		"r3k2r/8/8/8/8/8/8/R3K1R1 w KQkq - 0 1", // h1 rook has moved
		"r3k2r/8/8/8/8/8/8/R2K3R w Q - 0 1",     // king off e1
		"8/8/8/4k3/8/8/8/4K2R w - - 300 80",     // halfmove clock overflows
		"8/8/8/4k3/8/8/8/4K2R w - - 10 70000",   // fullmove number overflows
	}
	for _, fen := range bad {
		_, err := ParseFEN(fen)
		if err == nil {
			t.Errorf("ParseFEN(%q): expected an error", fen)
			continue
		}
		if !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q): error %v does not wrap ErrInvalidFEN", fen, err)
		}
	}
}

func TestParseFENWithoutMoveCounters(t *testing.T) {
	b := mustParse(t, "2k5/8/8/8/8/1q6/r7/2K5 w - -")
	if b.HalfmoveClock() != 0 {
		t.Errorf("halfmove clock: got %d want 0", b.HalfmoveClock())
	}
}

func TestApplyLeavesReceiverUntouched(t *testing.T) {
	start := NewGame()
	before := start.FEN()

	moved := play(t, start, "e2e4")
	if start.FEN() != before {
		t.Fatalf("receiver changed: %s -> %s", before, start.FEN())
	}
	if moved.FEN() == before {
		t.Fatalf("move had no effect")
	}
	if moved.WhiteToMove() {
		t.Fatalf("expected black to move after e2e4")
	}

	// Sibling branches must not see each other.
	a := play(t, start, "d2d4")
	b := play(t, start, "g1f3")
	if _, _, ok := a.PieceAt(27); !ok {
		t.Errorf("d4 should be occupied in branch a")
	}
	if _, _, ok := b.PieceAt(27); ok {
		t.Errorf("d4 should be empty in branch b")
	}
}

func TestApplyUCIRejectsIllegal(t *testing.T) {
	start := NewGame()
	for _, text := range []string{"e2e5", "e1e2", "zz", "", "a7a6"} {
		_, err := start.ApplyUCI(text)
		if !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ApplyUCI(%q): got %v, want ErrInvalidMove", text, err)
		}
	}
}

func TestCastlingRightsTracking(t *testing.T) {
	b := play(t, NewGame(), "e2e4", "e7e5", "e1e2")
	if got, want := b.CastlingRights(), CastleBlackKing|CastleBlackQueen; got != want {
		t.Errorf("after king move: got %04b want %04b", got, want)
	}

	b = play(t, b, "a7a6", "e2e1", "a8a7")
	if got, want := b.CastlingRights(), CastleBlackKing; got != want {
		t.Errorf("after rook move: got %04b want %04b", got, want)
	}

	// Capturing a rook on its home square removes the owner's right.
	b = mustParse(t, "r3k2r/8/8/8/8/8/6B1/R3K2R w KQkq - 0 1")
	b = play(t, b, "g2a8")
	if got, want := b.CastlingRights(), CastleWhiteKing|CastleWhiteQueen|CastleBlackKing; got != want {
		t.Errorf("after rook capture: got %04b want %04b", got, want)
	}
}

func TestEnPassantOnlyWhenCapturable(t *testing.T) {
	b := play(t, NewGame(), "e2e4")
	if _, ok := b.EnPassant(); ok {
		t.Errorf("no black pawn can take on e3, en passant should be unavailable")
	}

	b = mustParse(t, "rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	b = play(t, b, "e2e4")
	sq, ok := b.EnPassant()
	if !ok || sq != 20 {
		t.Fatalf("expected en passant on e3, got %s (ok=%v)", SquareName(sq), ok)
	}

	var capture Move
	for _, m := range b.LegalMoves() {
		if m.String() == "d4e3" {
			capture = m
		}
	}
	if capture == NoMove {
		t.Fatalf("d4e3 should be legal")
	}
	if !b.IsCapture(capture) {
		t.Errorf("en passant should count as a capture")
	}
	after := b.apply(capture)
	if after.PieceCount() != 31 {
		t.Errorf("piece count after en passant: got %d want 31", after.PieceCount())
	}
	if _, ok := after.EnPassant(); ok {
		t.Errorf("en passant target should clear after the next move")
	}
}

func TestCheckmateAndDraws(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		checkmate bool
		check     bool
		draw      bool
	}{
		{"white mated", "rnb1kbnr/pppp1ppp/4p3/8/5PPq/8/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, true, false},
		{"black mated", "rnbqkbnr/ppppp2p/8/5ppQ/4PP2/8/PPPP2PP/RNB1KBNR b KQkq - 1 3", true, true, false},
		{"stalemate", "2k5/8/8/8/8/1q6/r7/2K5 w - - 0 1", false, false, true},
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", false, false, true},
		{"king and knight", "8/8/8/4k3/8/8/8/4KN2 w - - 0 1", false, false, true},
		{"fifty moves", "8/8/8/4k3/8/8/8/4K2R w - - 100 80", false, false, true},
		{"rook ending", "8/8/8/4k3/8/8/8/4K2R w - - 10 80", false, false, false},
		{"in check", "4k3/8/8/8/8/8/8/R3K2r w - - 0 1", false, true, false},
	}
	for _, tc := range tests {
		b := mustParse(t, tc.fen)
		if got := b.IsCheckmate(); got != tc.checkmate {
			t.Errorf("%s: IsCheckmate got %v want %v", tc.name, got, tc.checkmate)
		}
		if got := b.InCheck(); got != tc.check {
			t.Errorf("%s: InCheck got %v want %v", tc.name, got, tc.check)
		}
		if got := b.IsDraw(); got != tc.draw {
			t.Errorf("%s: IsDraw got %v want %v", tc.name, got, tc.draw)
		}
		if got, want := b.IsGameOver(), tc.checkmate || tc.draw; got != want {
			t.Errorf("%s: IsGameOver got %v want %v", tc.name, got, want)
		}
	}
}

func TestThreefoldRepetitionKnightShuffle(t *testing.T) {
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	b := play(t, NewGame(), cycle...)
	if b.IsDraw() {
		t.Fatalf("second occurrence must not be a draw yet")
	}
	if b.repetitions() != 1 {
		t.Fatalf("repetitions after one cycle: got %d want 1", b.repetitions())
	}

	b = play(t, b, cycle...)
	if !b.IsDraw() {
		t.Fatalf("third occurrence should be a draw")
	}

	// A pawn move resets the window.
	b = play(t, b, "e2e4")
	if b.repetitions() != 0 {
		t.Errorf("repetitions after pawn move: got %d want 0", b.repetitions())
	}
}

func TestRepetitionAfterDoublePush(t *testing.T) {
	// The first occurrence follows e2e4, when no en passant capture exists.
	b := play(t, NewGame(), "e2e4", "g8f6", "g1f3", "f6g8", "f3g1", "g8f6", "g1f3", "f6g8")
	if b.IsDraw() {
		t.Fatalf("second occurrence must not be a draw yet")
	}
	b = play(t, b, "f3g1")
	if got := b.repetitions(); got != 2 {
		t.Fatalf("repetitions: got %d want 2", got)
	}
	if !b.IsDraw() {
		t.Fatalf("third occurrence should be a draw")
	}
}

func TestRepetitionCountsCapturableEnPassant(t *testing.T) {
	// After d7d5 white can take en passant; once the knights shuffle the
	// right is gone, so the later positions are not repetitions of it.
	b := mustParse(t, "rnbqkbnr/pppppppp/8/4P3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	b = play(t, b, "d7d5")
	if _, ok := b.EnPassant(); !ok {
		t.Fatalf("expected en passant on d6")
	}
	b = play(t, b, "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8")
	if got := b.repetitions(); got != 1 {
		t.Fatalf("repetitions: got %d want 1", got)
	}
	if b.IsDraw() {
		t.Fatalf("only two occurrences without en passant rights")
	}
}

func TestParseFENCastlingKeepsMaterial(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	b = play(t, b, "e1g1")
	if b.PieceCount() != 6 {
		t.Fatalf("castling changed the piece count to %d", b.PieceCount())
	}
	if p, c, ok := b.PieceAt(5); !ok || p != Rook || c != White {
		t.Fatalf("expected the h1 rook on f1")
	}
}

func TestPromotionMoves(t *testing.T) {
	b := mustParse(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	got := map[Piece]bool{}
	for _, m := range b.LegalMoves() {
		if m.From() != 48 {
			continue
		}
		p, ok := m.Promote()
		if !ok {
			t.Fatalf("%v reaches the last rank without promoting", m)
		}
		got[p] = true
	}
	for _, p := range []Piece{Knight, Bishop, Rook, Queen} {
		if !got[p] {
			t.Errorf("missing promotion to %v", p)
		}
	}

	quiet := play(t, NewGame(), "e2e4")
	for _, m := range quiet.LegalMoves() {
		if _, ok := m.Promote(); ok {
			t.Fatalf("%v is not a promotion", m)
		}
	}

	promoted := play(t, b, "a7a8q")
	if p, c, ok := promoted.PieceAt(56); !ok || p != Queen || c != White {
		t.Fatalf("expected a white queen on a8")
	}
}

func TestStringDrawsBoard(t *testing.T) {
	s := NewGame().String()
	if len(s) == 0 {
		t.Fatalf("empty drawing")
	}
	want := "1 ♖ ♘ ♗ ♕ ♔ ♗ ♘ ♖\n"
	if !strings.Contains(s, want) {
		t.Errorf("first rank missing from drawing:\n%s", s)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w Kq - 3 20",
	}
	for _, fen := range fens {
		if got := mustParse(t, fen).FEN(); got != fen {
			t.Errorf("round trip: got %q want %q", got, fen)
		}
	}

	// The e3 square is dropped because no black pawn can use it.
	b := play(t, NewGame(), "e2e4")
	if got, want := b.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"; got != want {
		t.Errorf("after e2e4: got %q want %q", got, want)
	}
}
