package cache_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"backoffice/internal/infra/cache"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 使うコマンドだけを map で持つ Cmdable
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

type report struct {
	Total  string `json:"total"`
	Orders int    `json:"orders"`
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := cache.NewRedisCache(rdb, time.Minute)

	var got report
	gen, hit, err := c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Set(ctx, "dashboard", gen, report{Total: "120.00", Orders: 2}))
	assert.Equal(t, time.Minute, rdb.ttl["report:0:dashboard"])

	_, hit, err = c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, report{Total: "120.00", Orders: 2}, got)
}

func TestRedisCache_InvalidateBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := cache.NewRedisCache(rdb, time.Minute)

	require.NoError(t, c.Set(ctx, "sales:daily", 0, report{Total: "1.00"}))
	require.NoError(t, c.Invalidate(ctx))

	var got report
	gen, hit, err := c.Get(ctx, "sales:daily", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), gen)

	require.NoError(t, c.Set(ctx, "sales:daily", gen, report{Total: "2.00"}))
	_, ok := rdb.data["report:1:sales:daily"]
	assert.True(t, ok)
}

// Get と Set の間に Invalidate されたら、その値は読まれない
func TestRedisCache_SetAfterInvalidateIsNotServed(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := cache.NewRedisCache(rdb, time.Minute)

	var got report
	gen, hit, err := c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, "dashboard", gen, report{Total: "stale"}))

	_, hit, err = c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, got.Total)
}

func TestRedisCache_Errors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := cache.NewRedisCache(rdb, time.Minute)

	rdb.data["report:0:broken"] = "{not json"
	var got report
	_, _, err := c.Get(ctx, "broken", &got)
	assert.Error(t, err)

	rdb.err = errors.New("connection refused")
	_, _, err = c.Get(ctx, "dashboard", &got)
	assert.ErrorIs(t, err, rdb.err)
	assert.ErrorIs(t, c.Set(ctx, "dashboard", 0, report{}), rdb.err)
	assert.ErrorIs(t, c.Ping(ctx), rdb.err)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c cache.Noop

	require.NoError(t, c.Set(ctx, "k", 0, 1))
	var v int
	_, hit, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(ctx))
	assert.NoError(t, c.Ping(ctx))
}
