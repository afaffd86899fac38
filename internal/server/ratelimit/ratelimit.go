// Package ratelimit provides per-client token bucket rate limiting for the
// analyzer API. Analysis endpoints fan out to embedding and narrative
// backends, so each client gets a small burst that refills over the window
// instead of a hard per-minute counter.
package ratelimit

import (
	"sync"
	"time"
)

// idleEviction is how long a client bucket may sit unused before the janitor
// drops it.
const idleEviction = time.Hour

// bucket is one client+rule token bucket. Tokens refill continuously at rate
// per second up to capacity.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	refilled time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		refilled: time.Now(),
	}
}

// take refills for the elapsed time and consumes one token when available.
// resetAt is when the bucket is full again; retry is how long until a single
// token accrues, zero when the request was allowed.
func (b *bucket) take() (allowed bool, remaining int, resetAt time.Time, retry time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.refilled).Seconds()*b.rate)
	b.refilled = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	} else {
		retry = time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
	}

	resetAt = now
	if b.tokens < b.capacity {
		resetAt = now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
	}
	return allowed, int(b.tokens), resetAt, retry
}

// Info reports the limit state for one decision, for response headers. It is
// zero-valued for unlimited paths.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter hands out one bucket per client and matched rule.
type Limiter struct {
	config *Config

	mu       sync.Mutex
	buckets  map[string]*bucket
	lastSeen map[string]time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter builds a limiter from config, falling back to permissive
// defaults when config is nil. The janitor goroutine runs until Stop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:   config,
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
		stop:     make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.janitor(config.CleanupInterval)
	}
	return l
}

// Allow decides whether the client may hit the endpoint now.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	rule := matchRule(path, method, l.config.Rules)
	if rule == nil {
		rule = &Rule{
			Path:   path,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if rule.Limit <= 0 {
		return true, Info{}
	}

	// Prefix rules share one bucket, so /taxonomy/skills/a and /taxonomy/search
	// drain the same allowance.
	key := clientID + "|" + method + "|" + rule.Path
	b := l.bucketFor(key, rule)

	allowed, remaining, resetAt, retry := b.take()
	return allowed, Info{
		Limit:      rule.Limit,
		Remaining:  remaining,
		ResetTime:  resetAt,
		RetryAfter: retry,
	}
}

// bucketFor returns the existing bucket for key or creates one sized by the
// rule. lastSeen feeds the janitor.
func (l *Limiter) bucketFor(key string, rule *Rule) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastSeen[key] = time.Now()
	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	b := newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-idleEviction))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets not seen since cutoff so one-off clients do not
// accumulate forever.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastSeen, key)
		}
	}
}

// Stop terminates the janitor. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
