package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/engine"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/testutil"
	"github.com/shopspring/decimal"
)

func seedHistory(t *testing.T, ledger *testutil.FakeLedger, workspaceID int32, userID string) {
	t.Helper()
	now := time.Now()
	start := now.AddDate(0, 0, -99)

	var txs []domain.Transaction
	var balances []domain.DailyBalance
	for i := 0; i <= 99; i++ {
		day := start.AddDate(0, 0, i)
		balances = append(balances, domain.DailyBalance{Date: day, Balance: decimal.NewFromInt(2000)})
		if i%14 == 0 {
			txs = append(txs, domain.Transaction{
				ID:       fmt.Sprintf("payroll-%d", i),
				Date:     day,
				Amount:   decimal.NewFromInt(-1500),
				Merchant: "ADP",
			})
		}
		txs = append(txs, domain.Transaction{
			ID:       fmt.Sprintf("grocery-%d", i),
			Date:     day,
			Amount:   decimal.NewFromInt(40),
			Merchant: "WHOLE FOODS",
		})
	}

	ledger.Seed(workspaceID, userID, txs, balances)
}

func TestDispatcher_Run_RescoresStaleUser(t *testing.T) {
	ledger := testutil.NewFakeLedger()
	audit := testutil.NewFakeAudit()
	archive := testutil.NewFakeArchive()
	eng := engine.New()

	workspaceID := int32(1)
	userID := "user-1"
	seedHistory(t, ledger, workspaceID, userID)

	staleRow := &domain.AuditRow{
		WorkspaceID: workspaceID,
		UserID:      userID,
		ScoredAt:    time.Now().Add(-48 * time.Hour),
	}
	if err := audit.Save(context.Background(), staleRow); err != nil {
		t.Fatalf("failed to seed stale audit row: %v", err)
	}

	d := New(ledger, audit, archive, nil, eng, 24*time.Hour, 10, 100)

	rescored, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no sweep-level error, got %v", err)
	}
	if rescored != 1 {
		t.Fatalf("expected 1 user rescored, got %d", rescored)
	}

	latest, err := audit.GetLatest(context.Background(), workspaceID, userID)
	if err != nil {
		t.Fatalf("expected a fresh audit row, got error: %v", err)
	}
	if !latest.ScoredAt.After(staleRow.ScoredAt) {
		t.Error("expected the fresh audit row to be newer than the seeded stale row")
	}
	if latest.Result == nil {
		t.Error("expected the fresh audit row to carry a score result")
	}

	if len(archive.Objects) != 1 {
		t.Errorf("expected the rescoring payload to be archived, got %d objects", len(archive.Objects))
	}
}

func TestDispatcher_Run_SkipsFreshUser(t *testing.T) {
	ledger := testutil.NewFakeLedger()
	audit := testutil.NewFakeAudit()
	archive := testutil.NewFakeArchive()
	eng := engine.New()

	workspaceID := int32(1)
	userID := "user-1"
	seedHistory(t, ledger, workspaceID, userID)

	freshRow := &domain.AuditRow{
		WorkspaceID: workspaceID,
		UserID:      userID,
		ScoredAt:    time.Now(),
	}
	if err := audit.Save(context.Background(), freshRow); err != nil {
		t.Fatalf("failed to seed fresh audit row: %v", err)
	}

	d := New(ledger, audit, archive, nil, eng, 24*time.Hour, 10, 100)

	rescored, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no sweep-level error, got %v", err)
	}
	if rescored != 0 {
		t.Fatalf("expected 0 users rescored, got %d", rescored)
	}
}

func TestDispatcher_Run_InsufficientHistorySavesPartialRow(t *testing.T) {
	ledger := testutil.NewFakeLedger()
	audit := testutil.NewFakeAudit()
	archive := testutil.NewFakeArchive()
	eng := engine.New()

	workspaceID := int32(1)
	userID := "user-thin"
	// Only 10 days of history, well under the engine's 90-day floor.
	now := time.Now()
	var txs []domain.Transaction
	var balances []domain.DailyBalance
	for i := 0; i <= 9; i++ {
		day := now.AddDate(0, 0, -9+i)
		balances = append(balances, domain.DailyBalance{Date: day, Balance: decimal.NewFromInt(500)})
		txs = append(txs, domain.Transaction{
			ID:     fmt.Sprintf("tx-%d", i),
			Date:   day,
			Amount: decimal.NewFromInt(20),
		})
	}
	ledger.Seed(workspaceID, userID, txs, balances)

	staleRow := &domain.AuditRow{
		WorkspaceID: workspaceID,
		UserID:      userID,
		ScoredAt:    time.Now().Add(-48 * time.Hour),
	}
	if err := audit.Save(context.Background(), staleRow); err != nil {
		t.Fatalf("failed to seed stale audit row: %v", err)
	}

	d := New(ledger, audit, archive, nil, eng, 24*time.Hour, 10, 100)

	rescored, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no sweep-level error, got %v", err)
	}
	if rescored != 1 {
		t.Fatalf("expected the dispatcher to count the partial save as rescored, got %d", rescored)
	}

	latest, err := audit.GetLatest(context.Background(), workspaceID, userID)
	if err != nil {
		t.Fatalf("expected a fresh partial audit row, got error: %v", err)
	}
	if latest.Result != nil {
		t.Error("expected a nil result for an insufficient-history row")
	}
	if latest.FailureReason == "" {
		t.Error("expected a failure reason to be recorded")
	}
}
