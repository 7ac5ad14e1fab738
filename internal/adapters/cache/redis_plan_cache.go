package cache

import (
	"context"
	"errors"
	"fmt"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/platform/obs"
	"taxi-dispatch-service/internal/ports"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dispatch:plan:"

// RedisPlanCache stores computed plans as JSON values in Redis.
// A zero TTL keeps entries until they are evicted.
type RedisPlanCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPlanCache(rdb *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{rdb: rdb, ttl: ttl}
}

// Connect to the server at url and verify it with a ping.
func NewRedisPlanCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisPlanCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis plan cache: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis plan cache: ping: %w", err)
	}
	return NewRedisPlanCache(rdb, ttl), nil
}

func (c *RedisPlanCache) Get(ctx context.Context, key ports.PlanKey) (_ *domain.DispatchPlan, _ bool, err error) {
	defer obs.Time(ctx, "plan.redis.Get")(&err)

	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis plan cache: get %s: %w", key, err)
	}

	plan, err := decodePlan(data)
	if err != nil {
		return nil, false, fmt.Errorf("redis plan cache: %w", err)
	}
	return plan, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key ports.PlanKey, plan *domain.DispatchPlan) (err error) {
	defer obs.Time(ctx, "plan.redis.Put")(&err)

	data, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("redis plan cache: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis plan cache: set %s: %w", key, err)
	}
	return nil
}

func (c *RedisPlanCache) Close() error { return c.rdb.Close() }

func (c *RedisPlanCache) key(k ports.PlanKey) string { return redisKeyPrefix + k.String() }
