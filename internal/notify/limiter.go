package notify

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	counterKeyPrefix = "notification_sent_count:"
	counterTTL       = 48 * time.Hour
)

// Limiter caps how many notifications go out per day.
type Limiter interface {
	Allow(ctx context.Context) (bool, error)
	Record(ctx context.Context) error
}

// RedisLimiter keeps one counter per UTC day.
type RedisLimiter struct {
	rdb   *redis.Client
	limit int
	now   func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{
		rdb:   rdb,
		limit: limit,
		now:   time.Now,
	}
}

func CounterKey(t time.Time) string {
	return counterKeyPrefix + t.UTC().Format("2006-01-02")
}

func (l *RedisLimiter) Allow(ctx context.Context) (bool, error) {
	count, err := l.rdb.Get(ctx, CounterKey(l.now())).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return count < l.limit, nil
}

func (l *RedisLimiter) Record(ctx context.Context) error {
	key := CounterKey(l.now())
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, counterTTL)
		return nil
	})
	return err
}
