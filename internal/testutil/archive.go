package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// FakeArchive is an in-memory domain.StatementArchiver.
type FakeArchive struct {
	Objects map[string][]byte
}

// NewFakeArchive creates an empty FakeArchive.
func NewFakeArchive() *FakeArchive {
	return &FakeArchive{Objects: make(map[string][]byte)}
}

func (f *FakeArchive) Archive(ctx context.Context, workspaceID int32, userID string, scoredAt time.Time, payload []byte) (string, error) {
	path := fmt.Sprintf("workspaces/%d/users/%s/%s.json", workspaceID, userID, scoredAt.UTC().Format(time.RFC3339))
	f.Objects[path] = payload
	return path, nil
}

func (f *FakeArchive) PresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if _, ok := f.Objects[objectPath]; !ok {
		return "", fmt.Errorf("object not found: %s", objectPath)
	}
	return "https://fake-archive.local/" + objectPath, nil
}

var _ domain.StatementArchiver = (*FakeArchive)(nil)
