package postgres

import (
	"context"
	"fmt"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ServiceTokenRepository implements domain.ServiceTokenRepository using
// PostgreSQL, mirroring the teacher's api_token_repo.go GetByHash lookup.
type ServiceTokenRepository struct {
	pool *pgxpool.Pool
}

// NewServiceTokenRepository creates a new ServiceTokenRepository.
func NewServiceTokenRepository(pool *pgxpool.Pool) *ServiceTokenRepository {
	return &ServiceTokenRepository{pool: pool}
}

// GetByHash retrieves a service token by its SHA-256 hash.
func (r *ServiceTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.ServiceToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM service_tokens
		WHERE token_hash = $1`,
		hash)

	var (
		id          string
		workspaceID int32
		userID      string
		tokenHash   string
		expiresAt   pgtype.Timestamptz
		revokedAt   pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &workspaceID, &userID, &tokenHash, &expiresAt, &revokedAt, &createdAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrServiceTokenNotFound
		}
		return nil, fmt.Errorf("query service token by hash: %w", err)
	}

	token := &domain.ServiceToken{
		ID:          id,
		WorkspaceID: workspaceID,
		UserID:      userID,
		TokenHash:   tokenHash,
		CreatedAt:   createdAt.Time,
	}
	if expiresAt.Valid {
		token.ExpiresAt = &expiresAt.Time
	}
	if revokedAt.Valid {
		token.RevokedAt = &revokedAt.Time
	}
	return token, nil
}

var _ domain.ServiceTokenRepository = (*ServiceTokenRepository)(nil)
