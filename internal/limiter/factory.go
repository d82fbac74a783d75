package limiter

import (
	"fmt"
	"math"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/logger"
)

// Config selects and sizes a rate limiter
type Config struct {
	Type              string  // "memory" or "redis"
	RequestsPerSecond float64 // may be fractional, e.g. 0.2 = 1 req per 5 sec

	// Redis: reuse Client when set, otherwise dial Addr.
	Client        *redis.Client
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Logger *logger.Logger
}

// New creates the limiter named by cfg.Type. An empty type means memory.
// The rate must be positive.
func New(cfg Config) (Limiter, error) {
	if cfg.RequestsPerSecond <= 0 || math.IsNaN(cfg.RequestsPerSecond) || math.IsInf(cfg.RequestsPerSecond, 0) {
		return nil, fmt.Errorf("rate limit must be a positive number of requests per second, got %v", cfg.RequestsPerSecond)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "memory", "":
		return NewMemoryLimiter(cfg.RequestsPerSecond), nil

	case "redis":
		if cfg.Client != nil {
			return NewRedisLimiter(cfg.Client, cfg.RequestsPerSecond, cfg.Logger), nil
		}
		rl, err := DialRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RequestsPerSecond, cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis limiter: %w", err)
		}
		return rl, nil

	default:
		return nil, fmt.Errorf("unknown rate limiter type: %s (supported: 'memory', 'redis')", cfg.Type)
	}
}
