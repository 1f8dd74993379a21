package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/quillhub/quillhub-be/config"
)

// RedisCache backs the page cache with redis so multiple web processes share
// one cache and one invalidation.
type RedisCache struct {
	inner *redis.Client
	ttl   time.Duration
}

func NewRedis(cfg *config.Config, ttl time.Duration) *RedisCache {
	return &RedisCache{
		inner: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       0, // use default DB
		}),
		ttl: ttl,
	}
}

func (rc *RedisCache) Get(ctx context.Context, view string, page int) ([]byte, bool, error) {
	payload, err := rc.inner.Get(ctx, Key(view, page)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (rc *RedisCache) Set(ctx context.Context, view string, page int, payload []byte) error {
	return rc.inner.Set(ctx, Key(view, page), payload, rc.ttl).Err()
}

func (rc *RedisCache) Invalidate(ctx context.Context, view string) error {
	iter := rc.inner.Scan(ctx, 0, view+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rc.inner.Del(ctx, keys...).Err()
}

func (rc *RedisCache) Clear(ctx context.Context) error {
	return rc.inner.FlushDB(ctx).Err()
}

var _ Cache = (*RedisCache)(nil)
