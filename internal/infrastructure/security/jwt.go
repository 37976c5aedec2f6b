package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = 60 * time.Minute

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 access tokens with a secret fixed at
// construction.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a JWTService.
type Option func(*JWTService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) { s.now = now }
}

func NewJWTService(secret string, ttl time.Duration, opts ...Option) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for subject expiring ttl after issuance.
func (s *JWTService) Issue(subject string, claims domain.IdentityClaims) (string, time.Time, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Malformed, forged and expired
// tokens all return domain.ErrInvalidToken.
func (s *JWTService) Verify(token string) (*domain.Claims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	// The library accepts now == exp; the token is dead at that instant.
	if !s.now().Before(claims.ExpiresAt.Time) || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		IdentityClaims: domain.IdentityClaims{
			Email: claims.Email,
			Role:  domain.Role(claims.Role),
			Name:  claims.Name,
		},
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return out, nil
}
