package engine

import (
	"math"
	"strings"
	"testing"

	"minimax-chess/rules"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func parse(t testing.TB, fen string) rules.Board {
	t.Helper()
	b, err := rules.ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	return b
}

func play(t testing.TB, b rules.Board, moves ...string) rules.Board {
	t.Helper()
	for _, text := range moves {
		next, err := b.ApplyUCI(text)
		if err != nil {
			t.Fatalf("apply %s: %v", text, err)
		}
		b = next
	}
	return b
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// mirrorFEN flips the board vertically and swaps the colors.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	if fields[2] != "-" {
		var white, black string
		for _, c := range fields[2] {
			if c >= 'a' {
				white += strings.ToUpper(string(c))
			} else {
				black += strings.ToLower(string(c))
			}
		}
		fields[2] = white + black
	}

	if fields[3] != "-" {
		rank := '1' + ('8' - rune(fields[3][1]))
		fields[3] = string([]rune{rune(fields[3][0]), rank})
	}
	return strings.Join(fields, " ")
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return r
	}, s)
}
