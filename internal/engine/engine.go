// Package engine wires the Heuristic Tagger, Window Aggregator, Point
// Scorer, Score Normalizer, Recommendation Gate, and Flag Emitter into a
// single pure entry point, per spec.md §2 and §5.
package engine

import (
	"github.com/rs/zerolog/log"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/aggregate"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/scoring"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/tagging"
)

const minHistoryDays = 90

// Engine computes a Blink Score from a user's transaction ledger. It holds
// no mutable state and performs no I/O; every invocation is independent.
type Engine struct {
	tagger *tagging.Tagger
}

// New constructs an Engine.
func New() *Engine {
	return &Engine{tagger: tagging.New()}
}

// Score runs the full tagger -> aggregator -> scorer -> normalizer pipeline
// described in spec.md §2. It returns an *domain.InsufficientHistoryError
// when history_days < 90 or the transaction set produces no taggable rows;
// no metrics or score are computed in that case.
func (e *Engine) Score(
	txs []domain.Transaction,
	balances []domain.DailyBalance,
	ctx domain.ReportContext,
	overrides domain.Overrides,
) (domain.ScoreResult, error) {
	if len(txs) == 0 {
		return domain.ScoreResult{}, &domain.InsufficientHistoryError{HistoryDays: 0}
	}

	tagged, skipped := e.tagger.Tag(txs, overrides, ctx.ReferenceDate)
	for _, s := range skipped {
		log.Warn().Str("transaction_id", s.TransactionID).Str("reason", s.Reason).Msg("skipping malformed transaction")
	}

	if len(tagged) == 0 {
		return domain.ScoreResult{}, &domain.InsufficientHistoryError{HistoryDays: 0}
	}

	metrics := aggregate.ComputeMetricVector(tagged, balances, ctx)

	historyDays := 0
	if metrics.HistoryDays.Valid {
		historyDays = int(metrics.HistoryDays.Value)
	}
	if historyDays < minHistoryDays {
		return domain.ScoreResult{}, &domain.InsufficientHistoryError{HistoryDays: historyDays}
	}

	points := scoring.Score(metrics, tagged)
	baseScore := points.Sum()
	blinkScore := scoring.Normalize(baseScore)
	recommendation := scoring.Recommend(blinkScore, historyDays)
	flags := scoring.EmitFlags(metrics)

	return domain.ScoreResult{
		Metrics:            metrics,
		Points:             points,
		BaseScore:          baseScore,
		BlinkScore:         blinkScore,
		Recommendation:     recommendation,
		Flags:              flags,
		TaggedTransactions: tagged,
	}, nil
}
