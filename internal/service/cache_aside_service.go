package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"order-management-server/config"
	"order-management-server/internal/apperrors"
	"order-management-server/internal/ports"
	"order-management-server/internal/repository"
	"order-management-server/internal/util"
)

// CacheAsideService : cache-aside протокол поверх БД и Redis, один общий
// для всех пяти типов сущностей.
//
// Чтение: кэш -> при промахе БД (со связями) -> запись в кэш с TTL.
// Запись: сперва БД, после успеха — безусловная инвалидация ключей.
// Снимок коллекции никогда не правится на месте: два конкурирующих
// писателя, читающих один устаревший снимок, затирают правки друг друга.
// Любая ошибка кэша поглощается — БД остаётся единственным источником
// истины, Redis лишь снимает читающую нагрузку.
type CacheAsideService[E any] struct {
	name            string
	entityRepo      ports.EntityRepository[E]
	cacheRepository ports.CacheRepository
	entityCodec     ports.EntityCodec[E]
	listCodec       ports.EntityCodec[[]E]
	keys            repository.CacheKeys
	keyOf           func(*E) int
	ttl             time.Duration
}

func NewCacheAsideService[E any](
	name string,
	entityRepo ports.EntityRepository[E],
	cacheRepository ports.CacheRepository,
	entityCodec ports.EntityCodec[E],
	listCodec ports.EntityCodec[[]E],
	keys repository.CacheKeys,
	keyOf func(*E) int,
	ttl time.Duration,
) *CacheAsideService[E] {
	return &CacheAsideService[E]{
		name:            name,
		entityRepo:      entityRepo,
		cacheRepository: cacheRepository,
		entityCodec:     entityCodec,
		listCodec:       listCodec,
		keys:            keys,
		keyOf:           keyOf,
		ttl:             ttl,
	}
}

// GetByID : возвращает сущность из кэша, при промахе читает БД и кэширует
func (s *CacheAsideService[E]) GetByID(ctx context.Context, id int) (*E, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("%s database connection не найден в context", s.prefix())
	}

	key := s.keys.ByID(id)
	if cached, err := s.cacheRepository.Get(ctx, key); err != nil {
		log.Printf("%s ошибка чтения кэша, работаем с БД: %v", s.prefix(), err)
	} else if cached != nil {
		entity, decodeErr := s.entityCodec.Decode(cached)
		if decodeErr == nil {
			log.Printf("%s %s взят из кэша Redis", s.prefix(), key)
			return &entity, nil
		}
		log.Printf("%s повреждённая запись %s в кэше: %v", s.prefix(), key, decodeErr)
	}

	entity, err := s.entityRepo.GetByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	s.storeInCache(ctx, key, *entity)
	return entity, nil
}

// List : возвращает полный снимок коллекции; частичных снимков не бывает —
// либо кэшированный список целиком, либо свежая выборка из БД
func (s *CacheAsideService[E]) List(ctx context.Context) ([]E, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("%s database connection не найден в context", s.prefix())
	}

	key := s.keys.All()
	if cached, err := s.cacheRepository.Get(ctx, key); err != nil {
		log.Printf("%s ошибка чтения кэша, работаем с БД: %v", s.prefix(), err)
	} else if cached != nil {
		entities, decodeErr := s.listCodec.Decode(cached)
		if decodeErr == nil {
			log.Printf("%s %s взят из кэша Redis", s.prefix(), key)
			return entities, nil
		}
		log.Printf("%s повреждённая запись %s в кэше: %v", s.prefix(), key, decodeErr)
	}

	entities, err := s.entityRepo.List(ctx, db)
	if err != nil {
		return nil, err
	}

	if data, err := s.listCodec.Encode(entities); err != nil {
		log.Printf("%s ошибка сериализации коллекции: %v", s.prefix(), err)
	} else if err := s.cacheRepository.Set(ctx, key, data, s.ttl); err != nil {
		log.Printf("%s ошибка записи коллекции в кэш: %v", s.prefix(), err)
	}

	return entities, nil
}

// Create : вставка в БД, затем инвалидация снимка коллекции.
// Дописывать новую сущность в закэшированный список нельзя: снимок мог
// устареть или истечь между чтением и записью.
func (s *CacheAsideService[E]) Create(ctx context.Context, entity *E) (*E, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("%s database connection не найден в context", s.prefix())
	}

	created, err := s.entityRepo.Insert(ctx, db, entity)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, s.keys.All())

	log.Printf("%s %s успешно создан", s.prefix(), s.keys.ByID(s.keyOf(created)))
	return created, nil
}

// Update : идентификатор пути обязан совпадать с идентификатором сущности.
// Мутация БД всегда завершается до инвалидации кэша; при конфликте
// конкурентного обновления строка перепроверяется — если её больше нет,
// это NotFound, иначе конфликт отдаётся клиенту без повторных попыток.
func (s *CacheAsideService[E]) Update(ctx context.Context, id int, entity *E) (*E, error) {
	if s.keyOf(entity) != id {
		return nil, apperrors.ErrKeyMismatch
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("%s database connection не найден в context", s.prefix())
	}

	if err := s.entityRepo.Update(ctx, db, entity); err != nil {
		if errors.Is(err, apperrors.ErrConcurrencyConflict) {
			exists, checkErr := s.entityRepo.Exists(ctx, db, id)
			if checkErr != nil {
				return nil, util.LogError(s.prefix()+" ошибка перепроверки строки после конфликта", checkErr)
			}
			if !exists {
				return nil, apperrors.ErrNotFound
			}
		}
		return nil, err
	}

	s.invalidate(ctx, s.keys.ByID(id), s.keys.All())

	log.Printf("%s %s успешно обновлён", s.prefix(), s.keys.ByID(id))
	return entity, nil
}

// Delete : удаление из БД, затем безусловная инвалидация обоих ключей
func (s *CacheAsideService[E]) Delete(ctx context.Context, id int) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("%s database connection не найден в context", s.prefix())
	}

	if err := s.entityRepo.Delete(ctx, db, id); err != nil {
		return err
	}

	s.invalidate(ctx, s.keys.ByID(id), s.keys.All())

	log.Printf("%s %s успешно удалён", s.prefix(), s.keys.ByID(id))
	return nil
}

func (s *CacheAsideService[E]) storeInCache(ctx context.Context, key string, entity E) {
	data, err := s.entityCodec.Encode(entity)
	if err != nil {
		log.Printf("%s ошибка сериализации %s: %v", s.prefix(), key, err)
		return
	}
	if err := s.cacheRepository.Set(ctx, key, data, s.ttl); err != nil {
		log.Printf("%s ошибка записи %s в кэш: %v", s.prefix(), key, err)
	}
}

func (s *CacheAsideService[E]) invalidate(ctx context.Context, keys ...string) {
	if err := s.cacheRepository.Delete(ctx, keys...); err != nil {
		log.Printf("%s ошибка инвалидации кэша %v: %v", s.prefix(), keys, err)
	}
}

func (s *CacheAsideService[E]) prefix() string {
	return "[" + s.name + "Service]"
}
