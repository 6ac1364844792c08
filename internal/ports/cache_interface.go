package ports

import (
	"context"
	"time"
)

// CacheRepository : Redis слой. Кэш хранит только байтовые снимки,
// о структуре сущностей он ничего не знает.
type CacheRepository interface {
	// Get возвращает (nil, nil), если ключа в кэше нет
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete идемпотентен: удаление отсутствующего ключа не является ошибкой
	Delete(ctx context.Context, keys ...string) error
}
