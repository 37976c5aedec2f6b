package security

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shivaccounts/accounts-api/internal/infrastructure/metrics"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 12

// BcryptHasher implements ports.PasswordHasher. The salt is generated per call
// and embedded in the returned hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside
// bcrypt's accepted range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(raw string) (string, error) {
	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether raw produced hash. bcrypt compares in constant time.
func (h *BcryptHasher) Verify(raw, hash string) bool {
	start := time.Now()
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	return err == nil
}
