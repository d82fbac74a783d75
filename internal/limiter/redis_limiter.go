package limiter

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/logger"
)

// fixedWindowScript increments the window counter and sets its expiry on
// the first hit, atomically.
var fixedWindowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter is a fixed-window limiter shared by every server instance.
// Keys look like "ratelimit:{client}:{window}".
type RedisLimiter struct {
	client    *redis.Client
	ownClient bool
	window    time.Duration // always a whole number of seconds
	limit     int64
	timeout   time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

// NewRedisLimiter builds a limiter on an existing client, so the limiter can
// share the datastore's Redis connection. Close does not close client.
//
// Rates below one request per second widen the window to the next whole
// second and allow one request per window: 0.2 req/s becomes one request per
// 5s, 0.3 req/s one per 4s. The factory rejects non-positive rates.
func NewRedisLimiter(client *redis.Client, requestsPerSecond float64, log *logger.Logger) *RedisLimiter {
	if log == nil {
		log = logger.Nop()
	}

	windowSeconds, limit := int64(1), int64(math.Ceil(requestsPerSecond))
	if requestsPerSecond > 0 && requestsPerSecond < 1 {
		windowSeconds = int64(math.Ceil(1 / requestsPerSecond))
		limit = max(1, int64(math.Floor(requestsPerSecond*float64(windowSeconds))))
	}

	return &RedisLimiter{
		client:  client,
		window:  time.Duration(windowSeconds) * time.Second,
		limit:   limit,
		timeout: 500 * time.Millisecond,
		now:     time.Now,
		logger:  log.WithComponent("RedisLimiter"),
	}
}

// DialRedisLimiter connects to addr and returns a limiter that owns the
// connection.
func DialRedisLimiter(addr, password string, db int, requestsPerSecond float64, log *logger.Logger) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %w", err)
	}

	rl := NewRedisLimiter(client, requestsPerSecond, log)
	rl.ownClient = true
	return rl, nil
}

// Allow implements Limiter. Redis errors fail open.
func (rl *RedisLimiter) Allow(key string) bool {
	windowSeconds := int64(rl.window.Seconds())
	bucket := rl.now().Unix() / windowSeconds
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, rl.client, []string{redisKey}, windowSeconds*2).Int64()
	if err != nil {
		rl.logger.Warn().Err(err).Str("key", key).Msg("Rate limit check failed, allowing request")
		return true
	}

	return count <= rl.limit
}

// Close implements Limiter.
func (rl *RedisLimiter) Close() error {
	if rl.ownClient && rl.client != nil {
		return rl.client.Close()
	}
	return nil
}
