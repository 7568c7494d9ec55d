package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements domain.LedgerProvider using PostgreSQL. It
// reads the raw ledger a caller has already ingested; it does no ingestion
// of its own (spec.md §6 treats the transaction/balance feed as external).
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// GetTransactions returns every transaction on or after since, oldest first.
func (r *LedgerRepository) GetTransactions(ctx context.Context, workspaceID int32, userID string, since time.Time) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, amount, merchant, description, category, category_id
		FROM transactions
		WHERE workspace_id = $1 AND user_id = $2 AND date >= $3
		ORDER BY date ASC`,
		workspaceID, userID, pgtype.Date{Time: since, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			tx       domain.Transaction
			date     pgtype.Date
			amount   pgtype.Numeric
			merchant pgtype.Text
			desc     pgtype.Text
			category []string
			catID    pgtype.Text
		)
		if err := rows.Scan(&tx.ID, &date, &amount, &merchant, &desc, &category, &catID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date = date.Time
		tx.Amount = pgNumericToDecimal(amount)
		tx.Merchant = merchant.String
		tx.Description = desc.String
		tx.Category = category
		tx.CategoryID = catID.String
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// GetDailyBalances returns the end-of-day balance series in [since, until],
// inclusive on both ends, oldest first.
func (r *LedgerRepository) GetDailyBalances(ctx context.Context, workspaceID int32, userID string, since, until time.Time) ([]domain.DailyBalance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date, balance
		FROM daily_balances
		WHERE workspace_id = $1 AND user_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date ASC`,
		workspaceID, userID,
		pgtype.Date{Time: since, Valid: true}, pgtype.Date{Time: until, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("query daily balances: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyBalance
	for rows.Next() {
		var (
			date    pgtype.Date
			balance pgtype.Numeric
		)
		if err := rows.Scan(&date, &balance); err != nil {
			return nil, fmt.Errorf("scan daily balance: %w", err)
		}
		out = append(out, domain.DailyBalance{
			Date:    date.Time,
			Balance: pgNumericToDecimal(balance),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily balances: %w", err)
	}
	return out, nil
}

// GetOverrides returns the caller-supplied tagging corrections on file for
// a user. A user with no overrides yields an empty, non-nil map.
func (r *LedgerRepository) GetOverrides(ctx context.Context, workspaceID int32, userID string) (domain.Overrides, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT transaction_id, is_payroll, is_loan_pay
		FROM transaction_overrides
		WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Overrides{}, nil
		}
		return nil, fmt.Errorf("query overrides: %w", err)
	}
	defer rows.Close()

	out := domain.Overrides{}
	for rows.Next() {
		var (
			txID      string
			isPayroll pgtype.Bool
			isLoanPay pgtype.Bool
		)
		if err := rows.Scan(&txID, &isPayroll, &isLoanPay); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		var ov domain.Override
		if isPayroll.Valid {
			v := isPayroll.Bool
			ov.IsPayroll = &v
		}
		if isLoanPay.Valid {
			v := isLoanPay.Bool
			ov.IsLoanPay = &v
		}
		out[txID] = ov
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overrides: %w", err)
	}
	return out, nil
}

// SaveOverrides upserts the caller-supplied tagging corrections, one row
// per transaction id. A nil Override field clears that column back to
// "no override".
func (r *LedgerRepository) SaveOverrides(ctx context.Context, workspaceID int32, userID string, overrides domain.Overrides) error {
	batch := &pgx.Batch{}
	for txID, ov := range overrides {
		batch.Queue(`
			INSERT INTO transaction_overrides (workspace_id, user_id, transaction_id, is_payroll, is_loan_pay)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (workspace_id, user_id, transaction_id)
			DO UPDATE SET is_payroll = EXCLUDED.is_payroll, is_loan_pay = EXCLUDED.is_loan_pay`,
			workspaceID, userID, txID, nullableBool(ov.IsPayroll), nullableBool(ov.IsLoanPay))
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range overrides {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("save override: %w", err)
		}
	}
	return nil
}

func nullableBool(b *bool) pgtype.Bool {
	if b == nil {
		return pgtype.Bool{}
	}
	return pgtype.Bool{Bool: *b, Valid: true}
}

var _ domain.LedgerProvider = (*LedgerRepository)(nil)
