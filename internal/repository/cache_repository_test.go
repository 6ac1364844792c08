package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"order-management-server/config"
	"order-management-server/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLiveCacheRepository : тесты на живом Redis, включаются через REDIS_ADDR
func newLiveCacheRepository(t *testing.T) *repository.CacheRepository {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skipf("REDIS_ADDR не задан, пропускаем тесты с живым Redis")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	t.Cleanup(func() { client.Close() })

	return repository.NewCacheRepository(&config.RedisClient{Client: client})
}

func testKey(t *testing.T, cache *repository.CacheRepository, name string) string {
	key := fmt.Sprintf("test_%s_%d", name, time.Now().UnixNano())
	t.Cleanup(func() {
		_ = cache.Delete(context.Background(), key)
	})
	return key
}

func TestCacheRepository_SetThenGetReturnsSameBytes(t *testing.T) {
	cache := newLiveCacheRepository(t)
	key := testKey(t, cache, "roundtrip")

	payload := []byte(`{"category_id":5,"category_name":"Напитки"}`)
	require.NoError(t, cache.Set(context.Background(), key, payload, time.Minute))

	got, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCacheRepository_MissingKeyIsNotAnError(t *testing.T) {
	cache := newLiveCacheRepository(t)

	got, err := cache.Get(context.Background(), fmt.Sprintf("test_missing_%d", time.Now().UnixNano()))

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_DeleteMissingKeyIsIdempotent(t *testing.T) {
	cache := newLiveCacheRepository(t)

	err := cache.Delete(context.Background(), fmt.Sprintf("test_absent_%d", time.Now().UnixNano()))

	assert.NoError(t, err)
}

func TestCacheRepository_DeleteRemovesAllKeys(t *testing.T) {
	cache := newLiveCacheRepository(t)
	first := testKey(t, cache, "del_first")
	second := testKey(t, cache, "del_second")

	require.NoError(t, cache.Set(context.Background(), first, []byte("a"), time.Minute))
	require.NoError(t, cache.Set(context.Background(), second, []byte("b"), time.Minute))

	require.NoError(t, cache.Delete(context.Background(), first, second))

	got, err := cache.Get(context.Background(), first)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = cache.Get(context.Background(), second)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_EntryExpiresAfterTTL(t *testing.T) {
	cache := newLiveCacheRepository(t)
	key := testKey(t, cache, "expiry")

	require.NoError(t, cache.Set(context.Background(), key, []byte("скоро исчезнет"), 100*time.Millisecond))

	time.Sleep(200 * time.Millisecond)

	got, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Nil(t, got)
}
