package ports

import (
	"context"
	"time"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// SignupInput is the raw signup payload before normalization.
type SignupInput struct {
	Name     string
	LoginID  string
	Email    string
	Password string
	Role     domain.Role
	// RequestID is only used to correlate audit events.
	RequestID string
}

// TokenResult is returned by a successful login.
type TokenResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, loginOrEmail, password, requestID string) (*TokenResult, error)
	// CurrentUser resolves the identity behind a bearer token.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// PasswordHasher hashes and verifies passwords with a slow, salted scheme.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, hash string) bool
}

// TokenVerifier validates bearer tokens. Every failure is domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenService issues and verifies signed, time-limited access tokens.
type TokenService interface {
	TokenVerifier
	Issue(subject string, claims domain.IdentityClaims) (token string, expiresAt time.Time, err error)
}

// LoginThrottle tracks failed login attempts per submitted key.
type LoginThrottle interface {
	Allowed(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
