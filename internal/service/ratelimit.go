package service

import (
	"sync"
	"time"

	"licensegate/internal/config"
)

// failureEntry tracks verification failures for one license key.
type failureEntry struct {
	// count is the number of failures in the current window.
	count int

	// lastSeen is the time of the most recent failure. The window is
	// anchored here: only a full quiet window since the last failure clears
	// the counter. The stalest entry by lastSeen is evicted when the table
	// is full.
	lastSeen time.Time
}

// RateLimiter is an in-memory per-license-key failure counter guarding the
// verification endpoint. A key accumulating maxAttempts failures is locked
// out until a full window passes with no further failures; a successful
// verification clears the key immediately.
//
// The table is bounded: once maxTrackedKeys entries exist, tracking a new key
// evicts the entry with the oldest failure. State is process-local and lost
// on restart, which is acceptable for a brute-force throttle.
//
// Safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*failureEntry

	maxAttempts    int
	window         time.Duration
	maxTrackedKeys int

	// now is replaceable in tests.
	now func() time.Time
}

// NewRateLimiter constructs a RateLimiter tuned by cfg. Zero or negative
// settings fall back to the package defaults.
func NewRateLimiter(cfg config.RateLimit) *RateLimiter {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}

	window := cfg.Window
	if window <= 0 {
		window = config.DefaultLockoutWindow
	}

	maxTrackedKeys := cfg.MaxTrackedKeys
	if maxTrackedKeys <= 0 {
		maxTrackedKeys = config.DefaultMaxTrackedKeys
	}

	return &RateLimiter{
		entries:        make(map[string]*failureEntry),
		maxAttempts:    maxAttempts,
		window:         window,
		maxTrackedKeys: maxTrackedKeys,
		now:            time.Now,
	}
}

// Allow reports whether the key may attempt verification right now.
// A key is denied only while it holds maxAttempts failures and its last
// failure is less than a window old; a quiet window resets the counter.
func (rl *RateLimiter) Allow(licenseKey string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.entries[licenseKey]
	if !ok {
		return true
	}

	if rl.now().Sub(entry.lastSeen) >= rl.window {
		delete(rl.entries, licenseKey)
		return true
	}

	return entry.count < rl.maxAttempts
}

// RecordFailure counts one failed verification against the key. Each failure
// re-anchors the window on itself, so the counter only resets after a full
// window with no failures at all.
func (rl *RateLimiter) RecordFailure(licenseKey string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, ok := rl.entries[licenseKey]
	if ok && now.Sub(entry.lastSeen) < rl.window {
		entry.count++
		entry.lastSeen = now
		return
	}

	if !ok && len(rl.entries) >= rl.maxTrackedKeys {
		rl.evictStalest()
	}

	rl.entries[licenseKey] = &failureEntry{
		count:    1,
		lastSeen: now,
	}
}

// RecordSuccess clears the key's failure counter.
func (rl *RateLimiter) RecordSuccess(licenseKey string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.entries, licenseKey)
}

// evictStalest removes the entry with the oldest lastSeen.
// Caller must hold mu.
func (rl *RateLimiter) evictStalest() {
	var stalestKey string
	var stalest time.Time

	for key, entry := range rl.entries {
		if stalestKey == "" || entry.lastSeen.Before(stalest) {
			stalestKey = key
			stalest = entry.lastSeen
		}
	}

	if stalestKey != "" {
		delete(rl.entries, stalestKey)
	}
}
