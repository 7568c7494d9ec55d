package domain

import "time"

// ServiceToken authenticates an automated caller of the scoring API (the
// cron dispatcher's trigger endpoint), as opposed to an Auth0-authenticated
// human session.
type ServiceToken struct {
	ID          string
	WorkspaceID int32
	UserID      string
	TokenHash   string
	ExpiresAt   *time.Time
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

// Active reports whether the token is neither revoked nor expired as of now.
func (t *ServiceToken) Active(now time.Time) bool {
	if t.RevokedAt != nil {
		return false
	}
	if t.ExpiresAt != nil && !now.Before(*t.ExpiresAt) {
		return false
	}
	return true
}
