// Package quota tracks request and token spend per key using refilling
// token buckets. The pipeline consults Check before each top-level operation
// and consumes after a successful completion; the tracker is shared across
// all concurrent callers in the process and is safe under concurrent use.
package quota

import (
	"sync"
	"time"
)

// Limits configures per-window budgets for one tracker.
type Limits struct {
	RequestsPerWindow int
	TokensPerWindow   int
	Window            time.Duration
}

// DefaultLimits mirrors the free-tier budget of the default backend.
func DefaultLimits() Limits {
	return Limits{
		RequestsPerWindow: 15,
		TokensPerWindow:   250000,
		Window:            time.Minute,
	}
}

// Counts holds a request/token pair.
type Counts struct {
	Requests int `json:"requests"`
	Tokens   int `json:"tokens"`
}

// ResetTimes reports when each bucket will be full again.
type ResetTimes struct {
	Requests time.Time `json:"requests"`
	Tokens   time.Time `json:"tokens"`
}

// Status is a point-in-time view of one key's budget. Check never consumes.
type Status struct {
	Allowed   bool       `json:"allowed"`
	Remaining Counts     `json:"remaining"`
	ResetTime ResetTimes `json:"resetTime"`
	Limit     Counts     `json:"limit"`
}

// RetryAfter returns how long the caller should wait before the next
// attempt. Zero when the key is currently allowed.
func (s Status) RetryAfter(now time.Time) time.Duration {
	if s.Allowed {
		return 0
	}
	wait := s.ResetTime.Requests.Sub(now)
	if tokenWait := s.ResetTime.Tokens.Sub(now); tokenWait > wait {
		wait = tokenWait
	}
	if wait < 0 {
		wait = 0
	}
	return wait
}

// bucket is a steadily refilling token bucket.
type bucket struct {
	capacity   float64
	refillRate float64 // units per second
	level      float64
	lastRefill time.Time
}

func newBucket(capacity int, window time.Duration, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: float64(capacity) / window.Seconds(),
		level:      float64(capacity),
		lastRefill: now,
	}
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.level += elapsed * b.refillRate
	if b.level > b.capacity {
		b.level = b.capacity
	}
	b.lastRefill = now
}

func (b *bucket) consume(n float64) {
	b.level -= n
	if b.level < 0 {
		b.level = 0
	}
}

// resetAt estimates when the bucket is back at full capacity.
func (b *bucket) resetAt(now time.Time) time.Time {
	missing := b.capacity - b.level
	if missing <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.refillRate * float64(time.Second)))
}

type entry struct {
	requests *bucket
	tokens   *bucket
}

// Tracker tracks per-key budgets.
type Tracker struct {
	mu      sync.Mutex
	limits  Limits
	entries map[string]*entry
	now     func() time.Time
}

// NewTracker creates a tracker with the given limits.
func NewTracker(limits Limits) *Tracker {
	if limits.Window <= 0 {
		limits.Window = time.Minute
	}
	return &Tracker{
		limits:  limits,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (t *Tracker) entryFor(key string, now time.Time) *entry {
	e, ok := t.entries[key]
	if !ok {
		e = &entry{
			requests: newBucket(t.limits.RequestsPerWindow, t.limits.Window, now),
			tokens:   newBucket(t.limits.TokensPerWindow, t.limits.Window, now),
		}
		t.entries[key] = e
	}
	return e
}

// Check reports the current budget for key without consuming anything.
func (t *Tracker) Check(key string) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	e := t.entryFor(key, now)
	e.requests.refill(now)
	e.tokens.refill(now)

	return Status{
		Allowed:   e.requests.level >= 1 && e.tokens.level >= 1,
		Remaining: Counts{Requests: int(e.requests.level), Tokens: int(e.tokens.level)},
		ResetTime: ResetTimes{Requests: e.requests.resetAt(now), Tokens: e.tokens.resetAt(now)},
		Limit:     Counts{Requests: t.limits.RequestsPerWindow, Tokens: t.limits.TokensPerWindow},
	}
}

// ConsumeRequest records one completed request against key.
func (t *Tracker) ConsumeRequest(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	e := t.entryFor(key, now)
	e.requests.refill(now)
	e.requests.consume(1)
}

// ConsumeTokens records n tokens of model usage against key.
func (t *Tracker) ConsumeTokens(key string, n int) {
	if n <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	e := t.entryFor(key, now)
	e.tokens.refill(now)
	e.tokens.consume(float64(n))
}
