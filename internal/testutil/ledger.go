// Package testutil provides in-memory fakes for the engine's external
// collaborators, used by handler and cron tests in place of a real
// database or S3 bucket.
package testutil

import (
	"context"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// ledgerKey identifies one user's ledger within a fake in-memory store.
type ledgerKey struct {
	workspaceID int32
	userID      string
}

// FakeLedger is an in-memory domain.LedgerProvider.
type FakeLedger struct {
	Transactions map[ledgerKey][]domain.Transaction
	Balances     map[ledgerKey][]domain.DailyBalance
	Overrides    map[ledgerKey]domain.Overrides
}

// NewFakeLedger creates an empty FakeLedger.
func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		Transactions: make(map[ledgerKey][]domain.Transaction),
		Balances:     make(map[ledgerKey][]domain.DailyBalance),
		Overrides:    make(map[ledgerKey]domain.Overrides),
	}
}

// Seed installs a user's transaction and balance history.
func (f *FakeLedger) Seed(workspaceID int32, userID string, txs []domain.Transaction, balances []domain.DailyBalance) {
	key := ledgerKey{workspaceID, userID}
	f.Transactions[key] = txs
	f.Balances[key] = balances
}

func (f *FakeLedger) GetTransactions(ctx context.Context, workspaceID int32, userID string, since time.Time) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range f.Transactions[ledgerKey{workspaceID, userID}] {
		if !tx.Date.Before(since) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *FakeLedger) GetDailyBalances(ctx context.Context, workspaceID int32, userID string, since, until time.Time) ([]domain.DailyBalance, error) {
	var out []domain.DailyBalance
	for _, b := range f.Balances[ledgerKey{workspaceID, userID}] {
		if !b.Date.Before(since) && !b.Date.After(until) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *FakeLedger) GetOverrides(ctx context.Context, workspaceID int32, userID string) (domain.Overrides, error) {
	key := ledgerKey{workspaceID, userID}
	if ov, ok := f.Overrides[key]; ok {
		return ov, nil
	}
	return domain.Overrides{}, nil
}

func (f *FakeLedger) SaveOverrides(ctx context.Context, workspaceID int32, userID string, overrides domain.Overrides) error {
	key := ledgerKey{workspaceID, userID}
	existing, ok := f.Overrides[key]
	if !ok {
		existing = domain.Overrides{}
	}
	for id, ov := range overrides {
		existing[id] = ov
	}
	f.Overrides[key] = existing
	return nil
}

var _ domain.LedgerProvider = (*FakeLedger)(nil)
