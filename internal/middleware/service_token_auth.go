package middleware

import (
	"context"
	"strings"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	// ServiceTokenIDKey is the context key for the service token ID.
	ServiceTokenIDKey contextKey = "service_token_id"
	// UserIDKey is the context key for the user ID (set by service token auth).
	UserIDKey contextKey = "user_id"
	// IsServiceTokenAuthKey is the context key indicating service-token
	// authentication, as opposed to Auth0 JWT authentication.
	IsServiceTokenAuthKey contextKey = "is_service_token_auth"
)

// ServiceTokenValidator validates a bearer service token.
type ServiceTokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.ServiceToken, error)
}

// ServiceTokenAuthMiddleware authenticates automated callers via a static
// bearer token, separately from end-user Auth0 sessions. RegisterRoutes
// applies it to the dispatcher's trigger endpoint only; the override
// submission route is guarded by AuthMiddleware.
type ServiceTokenAuthMiddleware struct {
	validator ServiceTokenValidator
}

// NewServiceTokenAuthMiddleware creates a new ServiceTokenAuthMiddleware.
func NewServiceTokenAuthMiddleware(validator ServiceTokenValidator) *ServiceTokenAuthMiddleware {
	return &ServiceTokenAuthMiddleware{validator: validator}
}

// Authenticate returns an Echo middleware that validates service tokens.
func (m *ServiceTokenAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			token := parts[1]

			if !strings.HasPrefix(token, "blink_") {
				return unauthorizedError(c, "Invalid token format")
			}

			svcToken, err := m.validator.ValidateToken(c.Request().Context(), token)
			if err != nil {
				if err == domain.ErrServiceTokenNotFound {
					log.Debug().Msg("service token not found or revoked")
					return unauthorizedError(c, "Invalid or expired service token")
				}
				log.Error().Err(err).Msg("service token validation failed")
				return unauthorizedError(c, "Token validation failed")
			}

			tokenID := tokenIDUUID(svcToken.ID)

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, WorkspaceIDKey, svcToken.WorkspaceID)
			ctx = context.WithValue(ctx, UserIDKey, svcToken.UserID)
			ctx = context.WithValue(ctx, ServiceTokenIDKey, tokenID)
			ctx = context.WithValue(ctx, IsServiceTokenAuthKey, true)

			c.SetRequest(c.Request().WithContext(ctx))

			log.Debug().
				Int32("workspace_id", svcToken.WorkspaceID).
				Str("token_id", tokenID.String()).
				Msg("service token authentication successful")

			return next(c)
		}
	}
}

// GetUserID extracts the user ID from the context (set by service token auth).
func GetUserID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetServiceTokenID extracts the service token ID from the context. Rate
// limiting keys on this value, so it returns uuid.Nil rather than an error
// when absent.
func GetServiceTokenID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(ServiceTokenIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// IsServiceTokenAuth reports whether the request was authenticated via a
// service token rather than an Auth0 JWT.
func IsServiceTokenAuth(c echo.Context) bool {
	if isSvc, ok := c.Request().Context().Value(IsServiceTokenAuthKey).(bool); ok {
		return isSvc
	}
	return false
}

// tokenIDUUID parses a service token's stored ID as a UUID; a token whose
// ID is not a UUID maps to uuid.Nil, and RateLimitMiddleware passes
// requests carrying uuid.Nil through without rate limiting them.
func tokenIDUUID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
