package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/admin-console/internal/config"
)

// LoginThrottle counts failed login attempts per account in Redis and
// produces transient lockouts, distinct from the administrative
// deactivation stored on the user row. A nil client disables throttling.
type LoginThrottle struct {
	client *redis.Client
	cfg    config.LoginConfig
}

// NewLoginThrottle builds a throttle over the shared Redis client.
func NewLoginThrottle(client *redis.Client, cfg config.LoginConfig) *LoginThrottle {
	return &LoginThrottle{client: client, cfg: cfg}
}

// Locked reports whether the account key is currently under a transient
// lockout. Throttle failures fail open: an unreachable Redis never blocks
// logins.
func (t *LoginThrottle) Locked(ctx context.Context, key string) bool {
	if t == nil || t.client == nil {
		return false
	}
	locked, err := t.client.Exists(ctx, t.lockKey(key)).Result()
	if err != nil {
		return false
	}
	return locked > 0
}

// RecordFailure bumps the failed-attempt counter and converts it into a
// lockout once the threshold is reached within the window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) {
	if t == nil || t.client == nil {
		return
	}
	attemptKey := t.attemptKey(key)
	count, err := t.client.Incr(ctx, attemptKey).Result()
	if err != nil {
		return
	}
	if count == 1 {
		t.client.Expire(ctx, attemptKey, t.cfg.LockoutWindow())
	}
	if count >= int64(t.cfg.MaxFailedAttempts) {
		t.client.Set(ctx, t.lockKey(key), time.Now().UTC().Format(time.RFC3339), t.cfg.LockoutDuration())
		t.client.Del(ctx, attemptKey)
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) {
	if t == nil || t.client == nil {
		return
	}
	t.client.Del(ctx, t.attemptKey(key))
}

func (t *LoginThrottle) attemptKey(key string) string {
	return fmt.Sprintf("login:attempts:%s", strings.ToLower(key))
}

func (t *LoginThrottle) lockKey(key string) string {
	return fmt.Sprintf("login:lock:%s", strings.ToLower(key))
}
