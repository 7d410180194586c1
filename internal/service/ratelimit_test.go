package service

import (
	"testing"
	"time"

	"licensegate/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock.
func newTestLimiter(cfg config.RateLimit) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(cfg)

	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	return rl, &now
}

// ─────────────────────────────────────────────
// NewRateLimiter
// ─────────────────────────────────────────────

func TestNewRateLimiter_AppliesDefaults(t *testing.T) {
	rl := NewRateLimiter(config.RateLimit{})

	assert.Equal(t, config.DefaultMaxAttempts, rl.maxAttempts)
	assert.Equal(t, config.DefaultLockoutWindow, rl.window)
	assert.Equal(t, config.DefaultMaxTrackedKeys, rl.maxTrackedKeys)
}

func TestNewRateLimiter_KeepsConfiguredValues(t *testing.T) {
	rl := NewRateLimiter(config.RateLimit{MaxAttempts: 3, Window: time.Minute, MaxTrackedKeys: 42})

	assert.Equal(t, 3, rl.maxAttempts)
	assert.Equal(t, time.Minute, rl.window)
	assert.Equal(t, 42, rl.maxTrackedKeys)
}

// ─────────────────────────────────────────────
// Allow / RecordFailure / RecordSuccess
// ─────────────────────────────────────────────

func TestRateLimiter_UnknownKeyIsAllowed(t *testing.T) {
	rl, _ := newTestLimiter(config.RateLimit{})

	assert.True(t, rl.Allow("KEY-1"))
}

func TestRateLimiter_LocksAfterMaxAttempts(t *testing.T) {
	rl, _ := newTestLimiter(config.RateLimit{MaxAttempts: 5, Window: 900 * time.Second})

	for i := 0; i < 4; i++ {
		rl.RecordFailure("KEY-1")
		assert.True(t, rl.Allow("KEY-1"), "attempt %d must still be allowed", i+1)
	}

	rl.RecordFailure("KEY-1")
	assert.False(t, rl.Allow("KEY-1"), "fifth failure must lock the key out")
}

func TestRateLimiter_OtherKeysUnaffected(t *testing.T) {
	rl, _ := newTestLimiter(config.RateLimit{MaxAttempts: 2, Window: time.Minute})

	rl.RecordFailure("KEY-1")
	rl.RecordFailure("KEY-1")

	require.False(t, rl.Allow("KEY-1"))
	assert.True(t, rl.Allow("KEY-2"))
}

func TestRateLimiter_WindowExpiryResets(t *testing.T) {
	rl, now := newTestLimiter(config.RateLimit{MaxAttempts: 2, Window: 900 * time.Second})

	rl.RecordFailure("KEY-1")
	rl.RecordFailure("KEY-1")
	require.False(t, rl.Allow("KEY-1"))

	*now = now.Add(900 * time.Second)

	assert.True(t, rl.Allow("KEY-1"), "an elapsed window must clear the lockout")
}

func TestRateLimiter_WindowAnchoredOnLastFailure(t *testing.T) {
	rl, now := newTestLimiter(config.RateLimit{MaxAttempts: 5, Window: 900 * time.Second})

	// First failure at t=0, four more at t=800.
	rl.RecordFailure("KEY-1")
	*now = now.Add(800 * time.Second)
	for i := 0; i < 4; i++ {
		rl.RecordFailure("KEY-1")
	}
	require.False(t, rl.Allow("KEY-1"))

	// 900s after the FIRST failure the key must still be locked; the
	// window counts from the most recent failure.
	*now = now.Add(101 * time.Second)
	assert.False(t, rl.Allow("KEY-1"), "lockout must hold until 900s after the last failure")

	*now = now.Add(799 * time.Second)
	assert.True(t, rl.Allow("KEY-1"), "a quiet window after the last failure clears the lockout")
}

func TestRateLimiter_FailureAfterExpiredWindowStartsFresh(t *testing.T) {
	rl, now := newTestLimiter(config.RateLimit{MaxAttempts: 2, Window: time.Minute})

	rl.RecordFailure("KEY-1")
	*now = now.Add(2 * time.Minute)

	rl.RecordFailure("KEY-1")

	assert.True(t, rl.Allow("KEY-1"), "old failures must not count toward the new window")
}

func TestRateLimiter_RecordSuccessClearsCounter(t *testing.T) {
	rl, _ := newTestLimiter(config.RateLimit{MaxAttempts: 2, Window: time.Minute})

	rl.RecordFailure("KEY-1")
	rl.RecordFailure("KEY-1")
	require.False(t, rl.Allow("KEY-1"))

	rl.RecordSuccess("KEY-1")

	assert.True(t, rl.Allow("KEY-1"))
}

// ─────────────────────────────────────────────
// Bounded table
// ─────────────────────────────────────────────

func TestRateLimiter_EvictsStalestWhenFull(t *testing.T) {
	rl, now := newTestLimiter(config.RateLimit{MaxAttempts: 1, Window: time.Hour, MaxTrackedKeys: 2})

	rl.RecordFailure("OLD")
	*now = now.Add(time.Second)
	rl.RecordFailure("NEWER")
	*now = now.Add(time.Second)

	// Table is full; tracking a third key must evict "OLD".
	rl.RecordFailure("NEWEST")

	assert.True(t, rl.Allow("OLD"), "evicted key must be allowed again")
	assert.False(t, rl.Allow("NEWER"))
	assert.False(t, rl.Allow("NEWEST"))
}

func TestRateLimiter_TableNeverExceedsCap(t *testing.T) {
	rl, now := newTestLimiter(config.RateLimit{MaxAttempts: 1, Window: time.Hour, MaxTrackedKeys: 3})

	for _, key := range []string{"A", "B", "C", "D", "E"} {
		rl.RecordFailure(key)
		*now = now.Add(time.Second)
	}

	assert.LessOrEqual(t, len(rl.entries), 3)
}
