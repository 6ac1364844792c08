package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order-management-server/config"
	"order-management-server/internal/util"

	"github.com/redis/go-redis/v9"
)

// CacheRepository : байтовый слой поверх Redis. Значениями управляют
// сервисы, здесь только ключи, TTL и перевод redis.Nil в "нет в кэше".
type CacheRepository struct {
	client *config.RedisClient
}

func NewCacheRepository(rdb *config.RedisClient) *CacheRepository {
	return &CacheRepository{client: rdb}
}

func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения значения из Redis", err)
	}

	return val, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	cmd := r.client.Client.Set(ctx, key, data, ttl)
	if err := cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

// Delete : идемпотентно, отсутствующие ключи молча пропускаются
func (r *CacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		return util.LogError("ошибка удаления ключей из Redis", err)
	}
	return nil
}
