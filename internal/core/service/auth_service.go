package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/metrics"
)

const tokenTypeBearer = "bearer"

// dummyPassword is hashed once and verified against when the login key matches
// no user, so unknown identities cost the same as a wrong password.
const dummyPassword = "not-a-real-password-0000"

// AuthService implements signup, login and identity lookup.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthOption configures optional collaborators of AuthService.
type AuthOption func(*AuthService)

// WithLoginThrottle enables failed-login throttling.
func WithLoginThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithAuditRecorder sends auth outcomes to r.
func WithAuditRecorder(r ports.AuditRecorder) AuthOption {
	return func(s *AuthService) { s.audit = r }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) AuthOption {
	return func(s *AuthService) { s.log = log }
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		audit:  ports.NopAuditRecorder{},
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// normalizeKey lowercases and trims a login_id or email.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	nu := domain.NewUser{
		Name:    strings.TrimSpace(in.Name),
		LoginID: normalizeKey(in.LoginID),
		Email:   normalizeKey(in.Email),
		Role:    in.Role,
	}
	switch {
	case nu.Name == "":
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewValidationError("name", "is required")
	case nu.LoginID == "":
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewValidationError("login_id", "is required")
	case nu.Email == "":
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewValidationError("email", "is required")
	case in.Password == "":
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewValidationError("password", "is required")
	case !nu.Role.Valid():
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewValidationError("role", "must be one of: admin invoicing_user")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}
	nu.PasswordHash = hash

	user, err := s.repo.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
			s.record(domain.EventSignupConflict, "", nu.LoginID, in.RequestID)
			return nil, domain.ErrUserExists
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	s.record(domain.EventSignup, user.ID, user.LoginID, in.RequestID)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// Login authenticates by login_id or email. Unknown identities and wrong
// passwords both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, loginOrEmail, password, requestID string) (*ports.TokenResult, error) {
	key := normalizeKey(loginOrEmail)

	if s.throttle != nil && key != "" {
		allowed, err := s.throttle.Allowed(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			s.record(domain.EventLoginThrottled, "", key, requestID)
			return nil, domain.ErrTooManyAttempts
		}
	}

	if key == "" || password == "" {
		return nil, s.loginFailed(ctx, key, "", requestID)
	}

	user, err := s.repo.FindByLoginOrEmail(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("login: %w", err)
		}
		s.hasher.Verify(password, s.fallbackHash())
		return nil, s.loginFailed(ctx, key, "", requestID)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, s.loginFailed(ctx, key, user.ID, requestID)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, domain.IdentityClaims{
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, key); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginsTotal.WithLabelValues("succeeded").Inc()
	s.record(domain.EventLoginSucceeded, user.ID, key, requestID)
	return &ports.TokenResult{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// CurrentUser verifies token and loads the identity it names.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidToken
	}
	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

func (s *AuthService) loginFailed(ctx context.Context, key, userID, requestID string) error {
	metrics.LoginsTotal.WithLabelValues("failed").Inc()
	if s.throttle != nil && key != "" {
		if err := s.throttle.RecordFailure(ctx, key); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	s.record(domain.EventLoginFailed, userID, key, requestID)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to prepare fallback hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *AuthService) record(kind domain.AuthEventKind, userID, key, requestID string) {
	s.audit.Record(domain.AuthEvent{
		Kind:       kind,
		UserID:     userID,
		SubjectKey: key,
		RequestID:  requestID,
		OccurredAt: s.now().UTC(),
	})
}
