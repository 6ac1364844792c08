package ports

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// EntityRepository : SQL слой, единый контракт для всех пяти сущностей.
// GetByID и List возвращают сущности с раскрытыми связями на один уровень
// (категория — со своими товарами, заказ — со своими позициями).
type EntityRepository[E any] interface {
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*E, error)
	List(ctx context.Context, exec sqlx.ExtContext) ([]E, error)
	// Insert возвращает сущность с идентификатором, присвоенным БД
	Insert(ctx context.Context, exec sqlx.ExtContext, entity *E) (*E, error)
	// Update возвращает apperrors.ErrConcurrencyConflict, если строка не была обновлена
	Update(ctx context.Context, exec sqlx.ExtContext, entity *E) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int) error
	Exists(ctx context.Context, exec sqlx.ExtContext, id int) (bool, error)
}
