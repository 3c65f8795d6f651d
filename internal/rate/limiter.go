// Package rate implementa rate limiting fixed-window para la emisión
// de tokens. Redis en producción, in-process para dev/tests.
package rate

import (
	"context"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// Result es el veredicto del limiter para un hit.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration // resto de la ventana cuando Allowed=false
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter: fixed window sencillo (INCR + EXPIRE). La key incluye el
// inicio de ventana, así el contador muere solo con el EXPIRE.
type RedisLimiter struct {
	Client *rdb.Client
	Prefix string
	Max    int64
	Window time.Duration
}

func NewRedisLimiter(client *rdb.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{Client: client, Prefix: prefix, Max: int64(max), Window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	winStart := time.Now().UTC().Truncate(l.Window)
	redisKey := fmt.Sprintf("%s%s:%d", l.Prefix, key, winStart.Unix())

	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	// Primer hit de la ventana: setear expiry
	if incr.Val() == 1 {
		_ = l.Client.Expire(ctx, redisKey, l.Window).Err()
		ttl = l.Client.TTL(ctx, redisKey)
	}

	hits := incr.Val()
	res := Result{
		Allowed:   hits <= l.Max,
		Remaining: max64(l.Max-hits, 0),
	}
	if !res.Allowed {
		res.RetryAfter = ttl.Val()
		if res.RetryAfter <= 0 {
			res.RetryAfter = l.Window
		}
	}
	return res, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
