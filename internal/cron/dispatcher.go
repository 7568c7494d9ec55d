// Package cron discovers users whose score has gone stale and re-invokes
// the engine for them, rate-limited so a large backlog cannot overwhelm the
// ledger provider or the downstream archive.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/engine"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// historyLookback bounds how far back GetTransactions/GetDailyBalances are
// asked to look; it comfortably covers the 365-day history length that
// earns the top history_days points (the widest metric window is W180).
const historyLookback = 400 * 24 * time.Hour

// Dispatcher re-scores users whose latest audit row has aged past the
// configured rescoring interval.
type Dispatcher struct {
	ledger    domain.LedgerProvider
	audit     domain.AuditRepository
	archive   domain.StatementArchiver
	publisher websocket.EventPublisher
	engine    *engine.Engine

	interval  time.Duration
	batchSize int
	limiter   *rate.Limiter
}

// New creates a Dispatcher. archive and publisher may be nil, in which case
// archival and dashboard push are skipped for this sweep.
func New(ledger domain.LedgerProvider, audit domain.AuditRepository, archive domain.StatementArchiver, publisher websocket.EventPublisher, eng *engine.Engine, interval time.Duration, batchSize, ratePerSecond int) *Dispatcher {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &Dispatcher{
		ledger:    ledger,
		audit:     audit,
		archive:   archive,
		publisher: publisher,
		engine:    eng,
		interval:  interval,
		batchSize: batchSize,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
	}
}

// Run performs one sweep: it finds up to batchSize stale users and
// re-scores each, rate-limited. It returns the number of users it
// successfully re-scored and the last error encountered, if any, so a
// caller can log a partial-sweep failure without aborting the process.
func (d *Dispatcher) Run(ctx context.Context) (rescored int, lastErr error) {
	cutoff := time.Now().Add(-d.interval)

	stale, err := d.audit.ListStale(ctx, cutoff, d.batchSize)
	if err != nil {
		return 0, err
	}

	for _, row := range stale {
		if err := d.limiter.Wait(ctx); err != nil {
			return rescored, err
		}

		if err := d.rescoreOne(ctx, row); err != nil {
			log.Warn().
				Int32("workspace_id", row.WorkspaceID).
				Str("user_id", row.UserID).
				Err(err).
				Msg("rescoring sweep: failed to rescore user")
			lastErr = err
			continue
		}
		rescored++
	}

	d.publisher.Publish(0, websocket.DispatchCompleted(map[string]interface{}{
		"usersScored": rescored,
		"batchSize":   len(stale),
	}))

	return rescored, lastErr
}

// rescoreOne re-invokes the engine for a single stale user and persists the
// fresh audit row, archiving the ledger payload it scored against.
func (d *Dispatcher) rescoreOne(ctx context.Context, stale *domain.AuditRow) error {
	since := time.Now().Add(-historyLookback)

	txs, err := d.ledger.GetTransactions(ctx, stale.WorkspaceID, stale.UserID, since)
	if err != nil {
		return err
	}
	balances, err := d.ledger.GetDailyBalances(ctx, stale.WorkspaceID, stale.UserID, since, time.Now())
	if err != nil {
		return err
	}
	overrides, err := d.ledger.GetOverrides(ctx, stale.WorkspaceID, stale.UserID)
	if err != nil {
		return err
	}

	reportCtx := domain.ReportContext{ReferenceDate: time.Now(), CurrentBalance: domain.LatestBalance(balances)}

	result, err := d.engine.Score(txs, balances, reportCtx, overrides)
	newRow := &domain.AuditRow{
		WorkspaceID: stale.WorkspaceID,
		UserID:      stale.UserID,
		ScoredAt:    time.Now(),
	}

	if err != nil {
		if insufficient, ok := err.(*domain.InsufficientHistoryError); ok {
			newRow.FailureReason = insufficient.Error()
			newRow.ObservedDays = insufficient.HistoryDays
			if saveErr := d.audit.Save(ctx, newRow); saveErr != nil {
				return saveErr
			}
			d.publisher.Publish(stale.WorkspaceID, websocket.ScoreFailed(map[string]interface{}{
				"userId": stale.UserID,
				"reason": newRow.FailureReason,
			}))
			return nil
		}
		return err
	}

	newRow.Result = &result
	newRow.ObservedDays = int(result.Metrics.HistoryDays.Value)
	if err := d.audit.Save(ctx, newRow); err != nil {
		return err
	}

	if d.archive != nil {
		payload, marshalErr := json.Marshal(archivedPayload{
			Transactions: txs,
			Balances:     balances,
			Overrides:    overrides,
			Context:      reportCtx,
		})
		if marshalErr == nil {
			if _, err := d.archive.Archive(ctx, stale.WorkspaceID, stale.UserID, newRow.ScoredAt, payload); err != nil {
				log.Warn().Err(err).Str("user_id", stale.UserID).Msg("failed to archive rescoring payload")
			}
		}
	}

	d.publisher.Publish(stale.WorkspaceID, websocket.ScoreCompleted(map[string]interface{}{
		"userId":         stale.UserID,
		"blinkScore":     result.BlinkScore,
		"recommendation": result.Recommendation,
	}))

	return nil
}

// archivedPayload is the exact input the engine scored against, persisted
// to the statement archive for audit replay and dispute resolution.
type archivedPayload struct {
	Transactions []domain.Transaction  `json:"transactions"`
	Balances     []domain.DailyBalance `json:"dailyBalances"`
	Overrides    domain.Overrides      `json:"overrides"`
	Context      domain.ReportContext  `json:"context"`
}
