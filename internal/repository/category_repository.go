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

type CategoryRepository struct {
	*config.Database
}

func NewCategoryRepository(database *config.Database) *CategoryRepository {
	return &CategoryRepository{database}
}

// GetByID : возвращает категорию вместе с её товарами (по возрастанию product_id)
func (r *CategoryRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.Category, error) {
	query := `
		SELECT category_id, category_name, description
		FROM categories
		WHERE category_id = $1
	`

	var category model.Category
	err := sqlx.GetContext(ctx, exec, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	} else if err != nil {
		return nil, util.LogError("[CategoryRepo] не удалось найти категорию в БД", err)
	}

	products, err := r.productsByCategory(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	category.Products = products

	return &category, nil
}

// List : все категории с товарами, порядок категорий — по category_id
func (r *CategoryRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Category, error) {
	query := `
		SELECT category_id, category_name, description
		FROM categories
		ORDER BY category_id
	`

	categories := []model.Category{}
	if err := sqlx.SelectContext(ctx, exec, &categories, query); err != nil {
		return nil, util.LogError("[CategoryRepo] не удалось получить список категорий", err)
	}

	// товары выбираются одним запросом и раскладываются по категориям
	productQuery := `
		SELECT product_id, product_name, category_id, unit, price
		FROM products
		ORDER BY product_id
	`
	products := []model.Product{}
	if err := sqlx.SelectContext(ctx, exec, &products, productQuery); err != nil {
		return nil, util.LogError("[CategoryRepo] не удалось получить товары категорий", err)
	}

	byCategory := make(map[int][]model.Product, len(categories))
	for _, product := range products {
		byCategory[product.CategoryID] = append(byCategory[product.CategoryID], product)
	}
	for i := range categories {
		if list, ok := byCategory[categories[i].CategoryID]; ok {
			categories[i].Products = list
		} else {
			categories[i].Products = []model.Product{}
		}
	}

	return categories, nil
}

// Insert : сохраняет новую категорию, идентификатор присваивает БД
func (r *CategoryRepository) Insert(ctx context.Context, exec sqlx.ExtContext, category *model.Category) (*model.Category, error) {
	query := `
		INSERT INTO categories (category_name, description)
		VALUES ($1, $2)
		RETURNING category_id
	`

	created := *category
	err := exec.QueryRowxContext(ctx, query, category.CategoryName, category.Description).
		Scan(&created.CategoryID)
	if err != nil {
		return nil, util.LogError("[CategoryRepo] ошибка вставки категории в БД", err)
	}
	if created.Products == nil {
		created.Products = []model.Product{}
	}

	return &created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, exec sqlx.ExtContext, category *model.Category) error {
	query := `
		UPDATE categories
		SET category_name = $2, description = $3
		WHERE category_id = $1
	`

	result, err := exec.ExecContext(ctx, query, category.CategoryID, category.CategoryName, category.Description)
	if err != nil {
		return util.LogError("[CategoryRepo] ошибка обновления категории", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CategoryRepo] ошибка чтения результата обновления", err)
	}
	if affected == 0 {
		return apperrors.ErrConcurrencyConflict
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id)
	if err != nil {
		return util.LogError("[CategoryRepo] ошибка удаления категории", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CategoryRepo] ошибка чтения результата удаления", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *CategoryRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE category_id = $1)`, id)
	if err != nil {
		return false, util.LogError("[CategoryRepo] ошибка проверки существования категории", err)
	}
	return exists, nil
}

func (r *CategoryRepository) productsByCategory(ctx context.Context, exec sqlx.ExtContext, categoryID int) ([]model.Product, error) {
	query := `
		SELECT product_id, product_name, category_id, unit, price
		FROM products
		WHERE category_id = $1
		ORDER BY product_id
	`

	products := []model.Product{}
	if err := sqlx.SelectContext(ctx, exec, &products, query, categoryID); err != nil {
		return nil, util.LogError("[CategoryRepo] не удалось получить товары категории", err)
	}

	return products, nil
}
