package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds limiter tuning parameters.
type Config struct {
	Prefix    string
	MaxWrites int
	Window    time.Duration
}

// Limiter counts writes per client in fixed windows.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

func (l *Limiter) key(client string) string {
	return l.config.Prefix + ":rw:" + client
}

// Allow records one write for client and fails with ErrRateLimited when the
// window budget is exceeded.
func (l *Limiter) Allow(ctx context.Context, client string) error {
	count, err := l.incrementWithTTL(ctx, l.key(client), l.config.Window)
	if err != nil {
		return err
	}
	if count > int64(l.config.MaxWrites) {
		return ErrRateLimited
	}
	return nil
}

// Writes returns the client's count in the current window. Missing keys
// return zero.
func (l *Limiter) Writes(ctx context.Context, client string) (int, error) {
	count, err := l.redis.Get(ctx, l.key(client)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}

// Reset clears the client's counter.
func (l *Limiter) Reset(ctx context.Context, client string) error {
	if err := l.redis.Del(ctx, l.key(client)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}
