package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/google/uuid"
)

// FakeAudit is an in-memory domain.AuditRepository. Rows are append-only,
// mirroring the postgres adapter's behavior.
type FakeAudit struct {
	Rows []*domain.AuditRow
}

// NewFakeAudit creates an empty FakeAudit.
func NewFakeAudit() *FakeAudit {
	return &FakeAudit{}
}

func (f *FakeAudit) Save(ctx context.Context, row *domain.AuditRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	cp := *row
	f.Rows = append(f.Rows, &cp)
	return nil
}

func (f *FakeAudit) GetLatest(ctx context.Context, workspaceID int32, userID string) (*domain.AuditRow, error) {
	var latest *domain.AuditRow
	for _, row := range f.Rows {
		if row.WorkspaceID != workspaceID || row.UserID != userID {
			continue
		}
		if latest == nil || row.ScoredAt.After(latest.ScoredAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, domain.ErrAuditNotFound
	}
	return latest, nil
}

func (f *FakeAudit) ListStale(ctx context.Context, olderThan time.Time, limit int) ([]*domain.AuditRow, error) {
	type key struct {
		workspaceID int32
		userID      string
	}
	latestByUser := make(map[key]*domain.AuditRow)
	for _, row := range f.Rows {
		k := key{row.WorkspaceID, row.UserID}
		if existing, ok := latestByUser[k]; !ok || row.ScoredAt.After(existing.ScoredAt) {
			latestByUser[k] = row
		}
	}

	var stale []*domain.AuditRow
	for _, row := range latestByUser {
		if row.ScoredAt.Before(olderThan) {
			stale = append(stale, row)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].ScoredAt.Before(stale[j].ScoredAt) })
	if len(stale) > limit {
		stale = stale[:limit]
	}
	return stale, nil
}

var _ domain.AuditRepository = (*FakeAudit)(nil)
