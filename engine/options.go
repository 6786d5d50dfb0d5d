package engine

import "github.com/rs/zerolog"

const DefaultDepth = 3

type Options struct {
	// Depth is used by RecommendMove callers that do not pick one.
	Depth int
	// TTEntries is the transposition table size in entries.
	TTEntries int
	// CheckBonus is added for moves that give check, signed for the mover.
	CheckBonus Score
	DisableTT  bool
	// VerifyInvariants checks the bitboards against the position at every
	// node and panics on a mismatch.
	VerifyInvariants bool

	Tables *Tables
	Keys   *KeyTable
	Logger zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Depth:      DefaultDepth,
		TTEntries:  DefaultTTEntries,
		CheckBonus: 0.2,
		Tables:     DefaultTables,
		Keys:       DefaultKeys,
		Logger:     zerolog.Nop(),
	}
}
