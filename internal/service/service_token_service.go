// Package service hosts thin business-logic wrappers around domain
// repositories, for concerns that don't belong in the pure scoring core.
package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/middleware"
	"github.com/rs/zerolog/log"
)

const serviceTokenPrefix = "blink_"

// ServiceTokenService validates service tokens for automated callers,
// mirroring the teacher's APITokenService.ValidateToken.
type ServiceTokenService struct {
	repo domain.ServiceTokenRepository
}

// NewServiceTokenService creates a new ServiceTokenService.
func NewServiceTokenService(repo domain.ServiceTokenRepository) *ServiceTokenService {
	return &ServiceTokenService{repo: repo}
}

// ValidateToken looks up a service token by its hash and rejects it if
// revoked or expired. It satisfies middleware.ServiceTokenValidator.
func (s *ServiceTokenService) ValidateToken(ctx context.Context, token string) (*domain.ServiceToken, error) {
	if len(token) <= len(serviceTokenPrefix) || token[:len(serviceTokenPrefix)] != serviceTokenPrefix {
		return nil, domain.ErrServiceTokenNotFound
	}

	svcToken, err := s.repo.GetByHash(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}

	if !svcToken.Active(time.Now()) {
		log.Debug().Str("token_id", svcToken.ID).Msg("service token revoked or expired")
		return nil, domain.ErrServiceTokenNotFound
	}

	return svcToken, nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash)
}

var _ middleware.ServiceTokenValidator = (*ServiceTokenService)(nil)
