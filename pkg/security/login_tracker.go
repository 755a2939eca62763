package security

import (
	"context"
	"time"

	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"
)

// LoginTrackerConfig holds configuration for failed-login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before block
	AttemptWindow time.Duration // window for counting attempts
	BlockDuration time.Duration // how long to block after max attempts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed login attempts per email in Redis and enforces
// temporary blocks. When Redis is unavailable it fails open: login keeps
// working, only the brute-force protection is lost.
type LoginTracker struct {
	config LoginTrackerConfig
}

func NewLoginTracker(config LoginTrackerConfig) *LoginTracker {
	return &LoginTracker{config: config}
}

const (
	failLoginPrefix    = "fail:login:"
	blockedLoginPrefix = "blocked:login:"
)

// Lua script for atomic increment with TTL on first set
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// IsBlocked reports whether the given email is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) bool {
	client := redis.Client()
	if client == nil {
		return false
	}
	exists, err := client.Exists(ctx, blockedLoginPrefix+email).Result()
	if err != nil {
		logger.Log.Warn("Login tracker unavailable", "error", err)
		return false
	}
	return exists > 0
}

// RecordFailedAttempt increments the failure counter and blocks the email
// once the threshold is crossed.
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email string) {
	client := redis.Client()
	if client == nil {
		return
	}

	ttl := int(lt.config.AttemptWindow.Seconds())
	result, err := client.Eval(ctx, incrWithTTLScript, []string{failLoginPrefix + email}, ttl).Result()
	if err != nil {
		logger.Log.Warn("Failed to record login attempt", "error", err)
		return
	}

	count, _ := result.(int64)
	if int(count) >= lt.config.MaxAttempts {
		if err := client.Set(ctx, blockedLoginPrefix+email, "1", lt.config.BlockDuration).Err(); err != nil {
			logger.Log.Warn("Failed to set login block", "error", err)
			return
		}
		logger.Log.Warn("Login blocked after repeated failures", "attempts", count)
	}
}

// ClearAttempts resets the counter after a successful login.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email string) {
	client := redis.Client()
	if client == nil {
		return
	}
	client.Del(ctx, failLoginPrefix+email, blockedLoginPrefix+email)
}
