package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository implements domain.AuditRepository using PostgreSQL. Every
// invocation of the engine, successful or not, appends one row; nothing is
// ever updated in place, so GetLatest always reflects the most recent run.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Save appends an audit row. Rows with a nil Result (InsufficientHistory
// outcomes) persist with a NULL result column and a populated FailureReason.
func (r *AuditRepository) Save(ctx context.Context, row *domain.AuditRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	var result pgtype.Text
	if row.Result != nil {
		data, err := json.Marshal(row.Result)
		if err != nil {
			return fmt.Errorf("marshal score result: %w", err)
		}
		result.String = string(data)
		result.Valid = true
	}

	var failureReason pgtype.Text
	if row.FailureReason != "" {
		failureReason.String = row.FailureReason
		failureReason.Valid = true
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO score_audits (id, workspace_id, user_id, scored_at, result, failure_reason, observed_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.WorkspaceID, row.UserID, row.ScoredAt, result, failureReason, row.ObservedDays)
	if err != nil {
		return fmt.Errorf("insert audit row: %w", err)
	}
	return nil
}

// GetLatest returns the most recent audit row for a user.
func (r *AuditRepository) GetLatest(ctx context.Context, workspaceID int32, userID string) (*domain.AuditRow, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, scored_at, result, failure_reason, observed_days
		FROM score_audits
		WHERE workspace_id = $1 AND user_id = $2
		ORDER BY scored_at DESC
		LIMIT 1`,
		workspaceID, userID)

	audit, err := scanAuditRow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAuditNotFound
		}
		return nil, fmt.Errorf("query latest audit row: %w", err)
	}
	return audit, nil
}

// ListStale returns, across all users, the latest audit row for each user
// whose ScoredAt predates olderThan, oldest first, capped at limit rows.
// This powers the cron dispatcher's rescoring sweep (spec.md §6).
func (r *AuditRepository) ListStale(ctx context.Context, olderThan time.Time, limit int) ([]*domain.AuditRow, error) {
	rows, err := r.pool.Query(ctx, `
		WITH latest AS (
			SELECT DISTINCT ON (workspace_id, user_id)
				id, workspace_id, user_id, scored_at, result, failure_reason, observed_days
			FROM score_audits
			ORDER BY workspace_id, user_id, scored_at DESC
		)
		SELECT id, workspace_id, user_id, scored_at, result, failure_reason, observed_days
		FROM latest
		WHERE scored_at < $1
		ORDER BY scored_at ASC
		LIMIT $2`,
		olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("query stale audit rows: %w", err)
	}
	defer rows.Close()

	var out []*domain.AuditRow
	for rows.Next() {
		audit, err := scanAuditRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stale audit row: %w", err)
		}
		out = append(out, audit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stale audit rows: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows, letting GetLatest
// and ListStale share a single scan routine.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAuditRow(row rowScanner) (*domain.AuditRow, error) {
	var (
		id            string
		workspaceID   int32
		userID        string
		scoredAt      time.Time
		result        pgtype.Text
		failureReason pgtype.Text
		observedDays  int
	)
	if err := row.Scan(&id, &workspaceID, &userID, &scoredAt, &result, &failureReason, &observedDays); err != nil {
		return nil, err
	}

	audit := &domain.AuditRow{
		ID:           id,
		WorkspaceID:  workspaceID,
		UserID:       userID,
		ScoredAt:     scoredAt,
		ObservedDays: observedDays,
	}
	if failureReason.Valid {
		audit.FailureReason = failureReason.String
	}
	if result.Valid {
		var sr domain.ScoreResult
		if err := json.Unmarshal([]byte(result.String), &sr); err != nil {
			return nil, fmt.Errorf("unmarshal score result: %w", err)
		}
		audit.Result = &sr
	}
	return audit, nil
}

var _ domain.AuditRepository = (*AuditRepository)(nil)
