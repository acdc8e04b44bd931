// Package ratelimit decides whether a user may send another friend request.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"friendgraph/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:generate mockgen -destination=../user/mock_admission_test.go -package=user friendgraph/internal/ratelimit Admission

// Admission is consulted before every SendFriendRequest. A non-nil error means
// the decision could not be made and the request must not proceed.
type Admission interface {
	Allow(ctx context.Context, userID uint64) (bool, error)
}

type allowAll struct{}

// AllowAll admits every request.
var AllowAll Admission = allowAll{}

func (allowAll) Allow(context.Context, uint64) (bool, error) {
	return true, nil
}

// LocalLimiter is a per-user token bucket held in process.
type LocalLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[uint64]*rate.Limiter
}

// NewLocalLimiter admits requests per window per user on average, with up to
// burst at once.
func NewLocalLimiter(requests int, window time.Duration, burst int) *LocalLimiter {
	if burst < 1 {
		burst = 1
	}
	return &LocalLimiter{
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   burst,
		buckets: make(map[uint64]*rate.Limiter),
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, userID uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.mu.Lock()
	b, ok := l.buckets[userID]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[userID] = b
	}
	l.mu.Unlock()
	return b.Allow(), nil
}

// RedisLimiter counts requests per user in fixed windows shared by every
// instance of the service.
type RedisLimiter struct {
	client   redis.Cmdable
	requests int64
	window   time.Duration
	prefix   string
	now      func() time.Time
}

func NewRedisLimiter(client redis.Cmdable, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: int64(requests),
		window:   window,
		prefix:   "friendgraph:ratelimit:send",
		now:      time.Now,
	}
}

func (l *RedisLimiter) key(userID uint64) string {
	slot := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%d:%d", l.prefix, userID, slot)
}

func (l *RedisLimiter) Allow(ctx context.Context, userID uint64) (bool, error) {
	key := l.key(userID)
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return incr.Val() <= l.requests, nil
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// New builds the admission hook described by cfg. The returned cleanup
// releases any connection it opened.
func New(cfg *config.Config, log *zap.Logger) (Admission, func(), error) {
	if !cfg.RateLimit.Enabled {
		return AllowAll, func() {}, nil
	}
	switch cfg.RateLimit.Backend {
	case config.LimiterLocal:
		log.Info("using in-process rate limiter",
			zap.Int("requests", cfg.RateLimit.Requests),
			zap.Duration("window", cfg.RateLimitWindow()))
		return NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimitWindow(), cfg.RateLimit.Burst), func() {}, nil
	case config.LimiterRedis:
		client, err := NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using redis rate limiter", zap.String("addr", cfg.Redis.Addr))
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn("closing redis client", zap.Error(err))
			}
		}
		return NewRedisLimiter(client, cfg.RateLimit.Requests, cfg.RateLimitWindow()), cleanup, nil
	}
	return nil, nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
}
