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

type OrderDetailRepository struct {
	*config.Database
}

func NewOrderDetailRepository(database *config.Database) *OrderDetailRepository {
	return &OrderDetailRepository{database}
}

func (r *OrderDetailRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.OrderDetail, error) {
	query := `
		SELECT order_detail_id, order_id, product_id, quantity
		FROM order_details
		WHERE order_detail_id = $1
	`

	var detail model.OrderDetail
	err := sqlx.GetContext(ctx, exec, &detail, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	} else if err != nil {
		return nil, util.LogError("[OrderDetailRepo] не удалось найти позицию заказа в БД", err)
	}

	return &detail, nil
}

func (r *OrderDetailRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.OrderDetail, error) {
	query := `
		SELECT order_detail_id, order_id, product_id, quantity
		FROM order_details
		ORDER BY order_detail_id
	`

	details := []model.OrderDetail{}
	if err := sqlx.SelectContext(ctx, exec, &details, query); err != nil {
		return nil, util.LogError("[OrderDetailRepo] не удалось получить список позиций", err)
	}

	return details, nil
}

func (r *OrderDetailRepository) Insert(ctx context.Context, exec sqlx.ExtContext, detail *model.OrderDetail) (*model.OrderDetail, error) {
	query := `
		INSERT INTO order_details (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING order_detail_id
	`

	created := *detail
	err := exec.QueryRowxContext(ctx, query, detail.OrderID, detail.ProductID, detail.Quantity).
		Scan(&created.OrderDetailID)
	if err != nil {
		return nil, util.LogError("[OrderDetailRepo] ошибка вставки позиции заказа в БД", err)
	}

	return &created, nil
}

func (r *OrderDetailRepository) Update(ctx context.Context, exec sqlx.ExtContext, detail *model.OrderDetail) error {
	query := `
		UPDATE order_details
		SET order_id = $2, product_id = $3, quantity = $4
		WHERE order_detail_id = $1
	`

	result, err := exec.ExecContext(ctx, query,
		detail.OrderDetailID, detail.OrderID, detail.ProductID, detail.Quantity)
	if err != nil {
		return util.LogError("[OrderDetailRepo] ошибка обновления позиции заказа", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[OrderDetailRepo] ошибка чтения результата обновления", err)
	}
	if affected == 0 {
		return apperrors.ErrConcurrencyConflict
	}

	return nil
}

func (r *OrderDetailRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM order_details WHERE order_detail_id = $1`, id)
	if err != nil {
		return util.LogError("[OrderDetailRepo] ошибка удаления позиции заказа", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[OrderDetailRepo] ошибка чтения результата удаления", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *OrderDetailRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists,
		`SELECT EXISTS (SELECT 1 FROM order_details WHERE order_detail_id = $1)`, id)
	if err != nil {
		return false, util.LogError("[OrderDetailRepo] ошибка проверки существования позиции", err)
	}
	return exists, nil
}
