package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

func TestBcryptHasher_SaltedAndVerifiable(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("longenough")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("longenough")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
	if first == "longenough" || strings.Contains(first, "longenough") {
		t.Fatalf("hash leaks the raw password: %s", first)
	}
	if !h.Verify("longenough", first) || !h.Verify("longenough", second) {
		t.Fatalf("both hashes should verify")
	}
	if h.Verify("wrong-password", first) {
		t.Fatalf("wrong password verified")
	}
	if h.Verify("longenough", "not-a-bcrypt-hash") {
		t.Fatalf("garbage hash verified")
	}
}

func TestBcryptHasher_CostFallback(t *testing.T) {
	if got := NewBcryptHasher(0).cost; got != DefaultBcryptCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptHasher(bcrypt.MaxCost + 1).cost; got != DefaultBcryptCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestJWT(t *testing.T, clock *fakeClock) *JWTService {
	t.Helper()
	s, err := NewJWTService("secret", DefaultTokenTTL, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	return s
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	s := newTestJWT(t, clock)

	token, exp, err := s.Issue("user-1", domain.IdentityClaims{Email: "ann@x.com", Role: domain.RoleAdmin, Name: "Ann"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(issued.Add(60 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", exp)
	}

	clock.t = issued.Add(59*time.Minute + 59*time.Second)
	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "ann@x.com" || claims.Role != domain.RoleAdmin || claims.Name != "Ann" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IssuedAt.Equal(issued) {
		t.Fatalf("unexpected issued_at %v", claims.IssuedAt)
	}

	clock.t = issued.Add(60 * time.Minute)
	if _, err := s.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken at expiry instant, got %v", err)
	}

	clock.t = issued.Add(2 * time.Hour)
	if _, err := s.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestJWTService_RejectsForeignSignatureAndGarbage(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestJWT(t, clock)

	other, err := NewJWTService("other-secret", DefaultTokenTTL, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	forged, _, err := other.Issue("user-1", domain.IdentityClaims{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, token := range map[string]string{
		"foreign secret": forged,
		"garbage":        "not-a-token",
		"empty":          "",
		"truncated":      forged[:len(forged)-5],
	} {
		if _, err := s.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestJWT(t, clock)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := s.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512, got %v", err)
	}
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestJWT(t, clock)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := s.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without exp, got %v", err)
	}
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	if _, err := NewJWTService("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
