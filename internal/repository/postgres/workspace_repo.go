package postgres

import (
	"context"
	"fmt"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceRepository implements domain.WorkspaceRepository using
// PostgreSQL, grounded on the teacher's workspace_repo.go GetByUserAuth0ID.
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository.
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

// GetWorkspaceByAuth0ID resolves an Auth0 subject to its workspace id. It
// takes no context, matching middleware.WorkspaceProvider's signature (the
// teacher's auth middleware predates context-aware provider interfaces).
func (r *WorkspaceRepository) GetWorkspaceByAuth0ID(auth0ID string) (int32, error) {
	var workspaceID int32
	err := r.pool.QueryRow(context.Background(), `
		SELECT workspace_id FROM users WHERE auth0_id = $1`,
		auth0ID).Scan(&workspaceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrWorkspaceNotFound
		}
		return 0, fmt.Errorf("query workspace by auth0 id: %w", err)
	}
	return workspaceID, nil
}

var _ domain.WorkspaceRepository = (*WorkspaceRepository)(nil)
