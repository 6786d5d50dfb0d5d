package engine

import (
	"testing"

	"minimax-chess/rules"
)

func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	e := New(DefaultOptions())
	if got := e.StaticEvaluation(rules.NewGame()); got != 0 {
		t.Fatalf("expected 0 for the start position, got %v", got)
	}
}

func TestEvaluateCheckmateSign(t *testing.T) {
	e := New(DefaultOptions())

	whiteMated := parse(t, "rnb1kbnr/pppp1ppp/4p3/8/5PPq/8/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if got := e.StaticEvaluation(whiteMated); got != -MateScore {
		t.Fatalf("white mated: expected %v, got %v", -MateScore, got)
	}

	blackMated := parse(t, "rnbqkbnr/ppppp2p/8/5ppQ/4PP2/8/PPPP2PP/RNB1KBNR b KQkq - 1 3")
	if got := e.StaticEvaluation(blackMated); got != MateScore {
		t.Fatalf("black mated: expected %v, got %v", MateScore, got)
	}
}

func TestEvaluateDrawsAreZero(t *testing.T) {
	e := New(DefaultOptions())
	draws := []string{
		"2k5/8/8/8/8/1q6/r7/2K5 w - - 0 1",  // stalemate, black is far ahead
		"8/8/8/4k3/8/8/8/4KN2 w - - 0 1",    // insufficient material
		"8/8/8/4k3/8/8/8/4K2R w - - 100 80", // fifty moves
	}
	for _, fen := range draws {
		if got := e.StaticEvaluation(parse(t, fen)); got != DrawScore {
			t.Errorf("%s: expected a draw score, got %v", fen, got)
		}
	}

	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	repeated := play(t, rules.NewGame(), append(cycle, cycle...)...)
	if got := e.StaticEvaluation(repeated); got != DrawScore {
		t.Errorf("threefold repetition: expected a draw score, got %v", got)
	}

	// First occurrence right after a double push.
	repeated = play(t, rules.NewGame(), "e2e4", "g8f6", "g1f3", "f6g8", "f3g1", "g8f6", "g1f3", "f6g8", "f3g1")
	if got := e.StaticEvaluation(repeated); got != DrawScore {
		t.Errorf("repetition after e2e4: expected a draw score, got %v", got)
	}
}

func TestEvaluateMaterial(t *testing.T) {
	e := New(DefaultOptions())
	// White is a rook and a knight up, black has an extra pawn.
	terms := e.StaticTerms(parse(t, "4k3/pp6/8/8/8/8/P7/RN2K3 w - - 0 1"))
	if !approx(terms.Material, 7) {
		t.Fatalf("expected material 7, got %v", terms.Material)
	}
}

func TestEvaluatePositionalTables(t *testing.T) {
	e := New(DefaultOptions())
	// Knight on d4 against a knight on a8; pawn on e4 against a pawn on h7.
	terms := e.StaticTerms(parse(t, "n3k3/7p/8/8/3NP3/8/8/4K3 w - - 0 1"))
	want := (DefaultTables.Knight[27] + DefaultTables.WhitePawn[28]) -
		(DefaultTables.Knight[56] + DefaultTables.BlackPawn[55])
	if !approx(terms.Positional, want) {
		t.Fatalf("expected positional %v, got %v", want, terms.Positional)
	}
	if !approx(want, 0.20+0.20-(-0.50+0.05)) {
		t.Fatalf("table values changed: %v", want)
	}
}

func TestEvaluateBishopMobility(t *testing.T) {
	e := New(DefaultOptions())
	// The a1 bishop sees seven squares up the long diagonal and, because
	// rays are not clipped at the h file, seven more along h1, a2, b3 ...
	terms := e.StaticTerms(parse(t, "k7/8/8/8/8/8/8/B3K3 w - - 0 1"))
	if !approx(terms.Mobility, 2.8) {
		t.Fatalf("expected mobility 2.8, got %v", terms.Mobility)
	}

	// Blocked bishops contribute nothing.
	terms = e.StaticTerms(rules.NewGame())
	if terms.Mobility != 0 {
		t.Fatalf("expected no mobility in the start position, got %v", terms.Mobility)
	}
}

func TestEvaluateKingCenterInPawnEndings(t *testing.T) {
	e := New(DefaultOptions())
	terms := e.StaticTerms(parse(t, "k7/8/8/8/3K4/8/8/8 w - - 0 1"))
	if !approx(terms.KingCenter, 0.9) {
		t.Fatalf("expected king center 0.9, got %v", terms.KingCenter)
	}
	if terms.KingCorner != 0 {
		t.Fatalf("corner term must be off with only kings left, got %v", terms.KingCorner)
	}

	terms = e.StaticTerms(parse(t, "k7/p7/8/8/3K4/8/P7/8 w - - 0 1"))
	if !approx(terms.KingCenter, 0.9) {
		t.Fatalf("pawns keep the center term on, got %v", terms.KingCenter)
	}
}

func TestEvaluateKingCornerWithPiecesLeft(t *testing.T) {
	e := New(DefaultOptions())
	terms := e.StaticTerms(parse(t, "k7/8/8/8/8/8/8/4K2Q w - - 0 1"))
	// (corner[a8] - corner[e1]) * (32 - 3) / 100
	if !approx(terms.KingCorner, 0.145) {
		t.Fatalf("expected king corner 0.145, got %v", terms.KingCorner)
	}
	if terms.KingCenter != 0 {
		t.Fatalf("center term must be off while a queen is on the board, got %v", terms.KingCenter)
	}
}

func TestEvaluateColorSwapNegates(t *testing.T) {
	e := New(DefaultOptions())
	// No bishops here: the unclipped bishop rays are not mirror symmetric.
	fens := []string{
		"r3k2r/ppp2ppp/2n5/3qp3/8/2N2N2/PPP2PPP/R2QK2R w KQkq - 0 1",
		"4k3/pp4pp/8/3n4/8/5N2/PPP3PP/4K3 b - - 0 1",
		"8/5k2/8/2p5/8/1P6/4K3/8 w - - 0 1",
		"6k1/8/8/8/8/8/8/4K2Q w - - 0 1",
		rules.StartFEN,
	}
	for _, fen := range fens {
		mirror := mirrorFEN(fen)
		a := e.StaticEvaluation(parse(t, fen))
		b := e.StaticEvaluation(parse(t, mirror))
		if !approx(float64(a), float64(-b)) {
			t.Errorf("%s scored %v, mirror %s scored %v", fen, a, mirror, b)
		}
	}
}
