package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

// LoginThrottle counts failed logins per normalized login key.
// Key format: login:fail:<key>
//
// The counter window starts at the first failure and is not extended by later
// ones, so a locked key unlocks at most window after its first failure.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

var _ ports.LoginThrottle = (*LoginThrottle)(nil)

// recordFailure increments the counter and sets the window in one step. A key
// left without a TTL is given one, so a counter can never outlive its window
// indefinitely.
var recordFailure = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allowed reports whether key is below the failure limit.
func (t *LoginThrottle) Allowed(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxAttempts, nil
}

// RecordFailure bumps the failure counter, starting the window on the first
// failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	if err := recordFailure.Run(ctx, t.client, []string{t.key(key)}, t.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *LoginThrottle) key(k string) string {
	return "login:fail:" + k
}
