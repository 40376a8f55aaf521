package limiter

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("too many requests")

type Limiter struct {
	instance *redis_rate.Limiter
}

func NewLimiter(client redis.UniversalClient) (*Limiter, error) {
	return &Limiter{redis_rate.NewLimiter(client)}, nil
}

func (limiter *Limiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	res, err := limiter.instance.Allow(ctx, key, limit)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	if res.Allowed == 0 {
		return errorx.Wrap(ErrRateLimited, errorx.RateLimiting)
	}

	return nil
}

func (limiter *Limiter) AllowUser(ctx context.Context, key string, limit redis_rate.Limit) error {
	return limiter.Allow(ctx, fmt.Sprintf("user:%s", key), limit)
}
