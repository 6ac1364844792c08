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

type OrderRepository struct {
	*config.Database
}

func NewOrderRepository(database *config.Database) *OrderRepository {
	return &OrderRepository{database}
}

// GetByID : возвращает заказ вместе с его позициями (по возрастанию order_detail_id)
func (r *OrderRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.Order, error) {
	query := `
		SELECT order_id, customer_id, order_date
		FROM orders
		WHERE order_id = $1
	`

	var order model.Order
	err := sqlx.GetContext(ctx, exec, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	} else if err != nil {
		return nil, util.LogError("[OrderRepo] не удалось найти заказ в БД", err)
	}

	details := []model.OrderDetail{}
	detailQuery := `
		SELECT order_detail_id, order_id, product_id, quantity
		FROM order_details
		WHERE order_id = $1
		ORDER BY order_detail_id
	`
	if err := sqlx.SelectContext(ctx, exec, &details, detailQuery, id); err != nil {
		return nil, util.LogError("[OrderRepo] не удалось получить позиции заказа", err)
	}
	order.OrderDetails = details

	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Order, error) {
	query := `
		SELECT order_id, customer_id, order_date
		FROM orders
		ORDER BY order_id
	`

	orders := []model.Order{}
	if err := sqlx.SelectContext(ctx, exec, &orders, query); err != nil {
		return nil, util.LogError("[OrderRepo] не удалось получить список заказов", err)
	}

	details := []model.OrderDetail{}
	detailQuery := `
		SELECT order_detail_id, order_id, product_id, quantity
		FROM order_details
		ORDER BY order_detail_id
	`
	if err := sqlx.SelectContext(ctx, exec, &details, detailQuery); err != nil {
		return nil, util.LogError("[OrderRepo] не удалось получить позиции заказов", err)
	}

	byOrder := make(map[int][]model.OrderDetail, len(orders))
	for _, detail := range details {
		byOrder[detail.OrderID] = append(byOrder[detail.OrderID], detail)
	}
	for i := range orders {
		if list, ok := byOrder[orders[i].OrderID]; ok {
			orders[i].OrderDetails = list
		} else {
			orders[i].OrderDetails = []model.OrderDetail{}
		}
	}

	return orders, nil
}

func (r *OrderRepository) Insert(ctx context.Context, exec sqlx.ExtContext, order *model.Order) (*model.Order, error) {
	query := `
		INSERT INTO orders (customer_id, order_date)
		VALUES ($1, $2)
		RETURNING order_id
	`

	created := *order
	err := exec.QueryRowxContext(ctx, query, order.CustomerID, order.OrderDate).
		Scan(&created.OrderID)
	if err != nil {
		return nil, util.LogError("[OrderRepo] ошибка вставки заказа в БД", err)
	}
	if created.OrderDetails == nil {
		created.OrderDetails = []model.OrderDetail{}
	}

	return &created, nil
}

func (r *OrderRepository) Update(ctx context.Context, exec sqlx.ExtContext, order *model.Order) error {
	query := `
		UPDATE orders
		SET customer_id = $2, order_date = $3
		WHERE order_id = $1
	`

	result, err := exec.ExecContext(ctx, query, order.OrderID, order.CustomerID, order.OrderDate)
	if err != nil {
		return util.LogError("[OrderRepo] ошибка обновления заказа", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[OrderRepo] ошибка чтения результата обновления", err)
	}
	if affected == 0 {
		return apperrors.ErrConcurrencyConflict
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, id)
	if err != nil {
		return util.LogError("[OrderRepo] ошибка удаления заказа", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[OrderRepo] ошибка чтения результата удаления", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *OrderRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, id)
	if err != nil {
		return false, util.LogError("[OrderRepo] ошибка проверки существования заказа", err)
	}
	return exists, nil
}
