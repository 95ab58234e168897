package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisLimiterPrefix = "ovira:chat:"

// RedisLimiter counts attempts in fixed windows so every replica shares one budget per user.
type RedisLimiter struct {
	client redis.Cmdable
}

func NewRedisLimiter(client redis.Cmdable) *RedisLimiter {
	return &RedisLimiter{client: client}
}

// DialRedisLimiter connects to addr and pings it before returning the limiter.
func DialRedisLimiter(ctx context.Context, addr string) (*RedisLimiter, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisLimiter(client), client, nil
}

func (limiter *RedisLimiter) Allow(ctx context.Context, key string, now time.Time, limit int, window time.Duration) (bool, error) {
	bucket := redisLimiterKey(key, now, window)

	var count *redis.IntCmd
	_, err := limiter.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, bucket)
		pipe.Expire(ctx, bucket, window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis limiter: %w", err)
	}
	return count.Val() <= int64(limit), nil
}

func redisLimiterKey(key string, now time.Time, window time.Duration) string {
	slot := now.UnixNano() / int64(window)
	return redisLimiterPrefix + key + ":" + strconv.FormatInt(slot, 10)
}
