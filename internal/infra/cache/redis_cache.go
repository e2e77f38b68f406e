// Package cache はレポート結果のキャッシュ。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 世代キー。Invalidate で増やすと以前のキーは参照されなくなり、TTL で消える。
const generationKey = "report:gen"

type RedisCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func NewRedisCache(rdb redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func entryKey(gen int64, key string) string {
	return fmt.Sprintf("report:%d:%s", gen, key)
}

// Get は読んだ時点の世代も返す。Set にはその世代を渡す。
func (c *RedisCache) Get(ctx context.Context, key string, dst any) (int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, err
	}
	b, err := c.rdb.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return gen, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return gen, true, nil
}

// 計算中に Invalidate されていれば古い世代のキーに書かれ、以後読まれない。
func (c *RedisCache) Set(ctx context.Context, key string, gen int64, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(gen, key), b, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, generationKey).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Noop は REDIS_ADDR 未設定時に使う（常にミス）。
type Noop struct{}

func (Noop) Get(context.Context, string, any) (int64, bool, error) { return 0, false, nil }
func (Noop) Set(context.Context, string, int64, any) error         { return nil }
func (Noop) Invalidate(context.Context) error                      { return nil }
func (Noop) Ping(context.Context) error                            { return nil }
