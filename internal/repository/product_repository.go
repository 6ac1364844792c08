package repository

import (
	"context"
	"database/sql"
	"errors"

	"order-management-server/config"
	"order-management-server/internal/apperrors"
	"order-management-server/internal/model"
	"order-management-server/internal/util"

	"github.com/jmoiron/sqlx"
)

// ProductRepository : товары не раскрывают связей — обратная ссылка на
// категорию в снимке недопустима, позиции заказов товару не принадлежат.
type ProductRepository struct {
	*config.Database
}

func NewProductRepository(database *config.Database) *ProductRepository {
	return &ProductRepository{database}
}

func (r *ProductRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.Product, error) {
	query := `
		SELECT product_id, product_name, category_id, unit, price
		FROM products
		WHERE product_id = $1
	`

	var product model.Product
	err := sqlx.GetContext(ctx, exec, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	} else if err != nil {
		return nil, util.LogError("[ProductRepo] не удалось найти товар в БД", err)
	}

	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Product, error) {
	query := `
		SELECT product_id, product_name, category_id, unit, price
		FROM products
		ORDER BY product_id
	`

	products := []model.Product{}
	if err := sqlx.SelectContext(ctx, exec, &products, query); err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить список товаров", err)
	}

	return products, nil
}

func (r *ProductRepository) Insert(ctx context.Context, exec sqlx.ExtContext, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (product_name, category_id, unit, price)
		VALUES ($1, $2, $3, $4)
		RETURNING product_id
	`

	created := *product
	err := exec.QueryRowxContext(ctx, query, product.ProductName, product.CategoryID, product.Unit, product.Price).
		Scan(&created.ProductID)
	if err != nil {
		return nil, util.LogError("[ProductRepo] ошибка вставки товара в БД", err)
	}

	return &created, nil
}

func (r *ProductRepository) Update(ctx context.Context, exec sqlx.ExtContext, product *model.Product) error {
	query := `
		UPDATE products
		SET product_name = $2, category_id = $3, unit = $4, price = $5
		WHERE product_id = $1
	`

	result, err := exec.ExecContext(ctx, query,
		product.ProductID, product.ProductName, product.CategoryID, product.Unit, product.Price)
	if err != nil {
		return util.LogError("[ProductRepo] ошибка обновления товара", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ProductRepo] ошибка чтения результата обновления", err)
	}
	if affected == 0 {
		return apperrors.ErrConcurrencyConflict
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return util.LogError("[ProductRepo] ошибка удаления товара", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ProductRepo] ошибка чтения результата удаления", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists,
		`SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`, id)
	if err != nil {
		return false, util.LogError("[ProductRepo] ошибка проверки существования товара", err)
	}
	return exists, nil
}
