package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
	ContextKeyEmail  = "email"
	ContextKeyName   = "name"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Auth verifies the bearer token and stores its claims on the context.
// Missing, malformed and expired tokens all fail with domain.ErrInvalidToken.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := BearerToken(c.Request())
			if !ok {
				return domain.ErrInvalidToken
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyRole, string(claims.Role))
			c.Set(ContextKeyEmail, claims.Email)
			c.Set(ContextKeyName, claims.Name)
			return next(c)
		}
	}
}
