package limiter

import (
	"sync"
	"time"
)

// idleBucketTTL is how long an untouched client bucket is kept around.
const idleBucketTTL = 5 * time.Minute

// Limiter decides whether a client may make another request.
// Keys are opaque client identifiers (usually the client IP).
type Limiter interface {
	// Allow reports whether the request identified by key is within the limit.
	Allow(key string) bool

	// Close releases connections or background resources.
	Close() error
}

// TokenBucket is the per-client state of the in-memory limiter.
//
// The bucket holds up to capacity tokens, refills at rate tokens per second,
// and each request takes one token. Bursts up to capacity are allowed.
type TokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64
	lastSeen time.Time
	now      func() time.Time
}

func newTokenBucket(rate, capacity float64, now func() time.Time) *TokenBucket {
	// fractional rates (0.2 = one request per 5s) still need room for one request
	capacity = max(capacity, 1)
	return &TokenBucket{
		tokens:   capacity,
		capacity: capacity,
		rate:     rate,
		lastSeen: now(),
		now:      now,
	}
}

// Take consumes one token if available.
func (tb *TokenBucket) Take() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	elapsed := now.Sub(tb.lastSeen).Seconds()
	tb.tokens = min(tb.tokens+elapsed*tb.rate, tb.capacity)
	tb.lastSeen = now

	if tb.tokens < 1 {
		return false
	}
	tb.tokens--
	return true
}

func (tb *TokenBucket) idleSince() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastSeen
}

// MemoryLimiter keeps one token bucket per client in process memory.
// Suitable for a single server instance.
type MemoryLimiter struct {
	buckets sync.Map // key -> *TokenBucket
	rate    float64
	now     func() time.Time

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// NewMemoryLimiter allows requestsPerSecond per client, with bursts of
// one second's worth of requests.
func NewMemoryLimiter(requestsPerSecond float64) *MemoryLimiter {
	return newMemoryLimiter(requestsPerSecond, time.Now)
}

func newMemoryLimiter(requestsPerSecond float64, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		rate:      requestsPerSecond,
		now:       now,
		lastSweep: now(),
	}
}

// Allow implements Limiter.
func (rl *MemoryLimiter) Allow(key string) bool {
	allowed := rl.bucket(key).Take()
	rl.sweep()
	return allowed
}

func (rl *MemoryLimiter) bucket(key string) *TokenBucket {
	if value, ok := rl.buckets.Load(key); ok {
		return value.(*TokenBucket)
	}
	actual, _ := rl.buckets.LoadOrStore(key, newTokenBucket(rl.rate, rl.rate, rl.now))
	return actual.(*TokenBucket)
}

// sweep drops buckets idle for longer than idleBucketTTL, at most once per TTL.
func (rl *MemoryLimiter) sweep() {
	rl.sweepMu.Lock()
	defer rl.sweepMu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) < idleBucketTTL {
		return
	}

	threshold := now.Add(-idleBucketTTL)
	rl.buckets.Range(func(key, value any) bool {
		if value.(*TokenBucket).idleSince().Before(threshold) {
			rl.buckets.Delete(key)
		}
		return true
	})
	rl.lastSweep = now
}

// Size returns the number of tracked clients.
func (rl *MemoryLimiter) Size() int {
	n := 0
	rl.buckets.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close implements Limiter. Nothing to release.
func (rl *MemoryLimiter) Close() error {
	return nil
}
