package ports

import "context"

// EntityService : CRUD поверх БД и кэша, контракт для HTTP слоя
type EntityService[E any] interface {
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int) (*E, error)
	Create(ctx context.Context, entity *E) (*E, error)
	Update(ctx context.Context, id int, entity *E) (*E, error)
	Delete(ctx context.Context, id int) error
}
