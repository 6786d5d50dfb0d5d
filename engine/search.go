package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"minimax-chess/rules"
)

var (
	negInf = Score(math.Inf(-1))
	posInf = Score(math.Inf(1))
)

// Engine runs depth-limited alpha-beta searches. It is not safe for
// concurrent use; give each goroutine its own Engine.
type Engine struct {
	opts   Options
	eval   *Evaluator
	hasher *Hasher
	tt     *TransTable
	bb     BitboardSet
	stats  Stats
	log    zerolog.Logger
}

func New(opts Options) *Engine {
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if opts.TTEntries <= 0 {
		opts.TTEntries = DefaultTTEntries
	}
	e := &Engine{
		opts:   opts,
		eval:   NewEvaluator(opts.Tables),
		hasher: NewHasher(opts.Keys),
		log:    opts.Logger,
	}
	if !opts.DisableTT {
		e.tt = NewTransTable(opts.TTEntries)
	}
	return e
}

// Depth is the default search depth the engine was configured with.
func (e *Engine) Depth() int { return e.opts.Depth }

// Stats returns the counters of the most recent RecommendMove.
func (e *Engine) Stats() Stats { return e.stats }

// Reset forgets everything learned in previous searches.
func (e *Engine) Reset() {
	if e.tt != nil {
		e.tt.Clear()
	}
	e.stats = Stats{}
}

// Hash returns the key the engine uses for pos.
func (e *Engine) Hash(pos rules.Position) uint64 {
	return e.hasher.Hash(pos)
}

// StaticEvaluation scores pos without searching.
func (e *Engine) StaticEvaluation(pos rules.Position) Score {
	var bs BitboardSet
	bs.Refresh(pos)
	return e.eval.Evaluate(pos, &bs)
}

// StaticTerms returns the evaluation components of a non-terminal position.
func (e *Engine) StaticTerms(pos rules.Position) Terms {
	var bs BitboardSet
	bs.Refresh(pos)
	return e.eval.Terms(&bs)
}

// RecommendMove searches pos to depth plies, maximizing when White is to
// move. It returns rules.NoMove when depth is zero or the game is over.
func (e *Engine) RecommendMove(pos rules.Position, depth int) (rules.Move, Score) {
	e.stats = Stats{}
	start := time.Now()
	score, move := e.Search(pos, depth, pos.WhiteToMove(), negInf, posInf)

	ev := e.log.Debug().
		Int("depth", depth).
		Float64("score", float64(score)).
		Object("stats", e.stats).
		Dur("elapsed", time.Since(start))
	if e.tt != nil {
		ev = ev.Int("tt_used", e.tt.Len())
	}
	ev.Stringer("move", move).Msg("search finished")
	return move, score
}

// Search is minimax with alpha-beta pruning. Scores are from White's point
// of view; maximizing is true when White is to move at pos.
func (e *Engine) Search(pos rules.Position, depth int, maximizing bool, alpha, beta Score) (Score, rules.Move) {
	e.stats.Nodes++
	e.refresh(pos)

	if depth <= 0 || pos.IsGameOver() {
		e.stats.Leaves++
		return e.eval.Evaluate(pos, &e.bb), rules.NoMove
	}

	var key uint64
	if e.tt != nil {
		key = e.hasher.Hash(pos)
		e.stats.TTLookups++
		if entry, ok := e.tt.Lookup(key); ok {
			if score, ok := entry.usable(depth, alpha, beta); ok {
				e.stats.TTHits++
				return score, entry.Move
			}
		}
	}

	moves := orderMoves(pos, pos.LegalMoves())
	alphaOrig, betaOrig := alpha, beta
	best := posInf
	if maximizing {
		best = negInf
	}
	bestMove := rules.NoMove

	for i, m := range moves {
		child := pos.Apply(m)
		bonus := e.checkBonus(child, maximizing)

		// The bonus is applied after the child returns, so the child
		// searches a window shifted by the same amount.
		score, _ := e.Search(child, depth-1, !maximizing, alpha-bonus, beta-bonus)
		if Abs(score) < MateScore {
			score += bonus
		}

		if maximizing {
			if i == 0 || score > best {
				best, bestMove = score, m
			}
			alpha = Max(alpha, score)
		} else {
			if i == 0 || score < best {
				best, bestMove = score, m
			}
			beta = Min(beta, score)
		}
		if beta <= alpha {
			e.stats.Cutoffs++
			break
		}
	}

	if e.tt != nil {
		bound := BoundExact
		if best <= alphaOrig {
			bound = BoundUpper
		} else if best >= betaOrig {
			bound = BoundLower
		}
		e.tt.Store(key, depth, best, bestMove, bound)
		e.stats.TTStores++
	}
	return best, bestMove
}

// checkBonus is the tie-break for moves that leave the opponent in check,
// signed for the side making the move.
func (e *Engine) checkBonus(child rules.Position, maximizing bool) Score {
	if !child.InCheck() {
		return 0
	}
	if maximizing {
		return e.opts.CheckBonus
	}
	return -e.opts.CheckBonus
}

func (e *Engine) refresh(pos rules.Position) {
	e.bb.Refresh(pos)
	if !e.opts.VerifyInvariants {
		return
	}
	if err := e.bb.Check(pos.PieceCount()); err != nil {
		panic(err)
	}
}
