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

type CustomerRepository struct {
	*config.Database
}

func NewCustomerRepository(database *config.Database) *CustomerRepository {
	return &CustomerRepository{database}
}

// GetByID : возвращает покупателя вместе с его заказами; позиции заказов
// при этом не раскрываются, вложенность — ровно один уровень
func (r *CustomerRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int) (*model.Customer, error) {
	query := `
		SELECT customer_id, customer_name, contact_name, address, city, postal_code, country
		FROM customers
		WHERE customer_id = $1
	`

	var customer model.Customer
	err := sqlx.GetContext(ctx, exec, &customer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	} else if err != nil {
		return nil, util.LogError("[CustomerRepo] не удалось найти покупателя в БД", err)
	}

	orders := []model.Order{}
	orderQuery := `
		SELECT order_id, customer_id, order_date
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_id
	`
	if err := sqlx.SelectContext(ctx, exec, &orders, orderQuery, id); err != nil {
		return nil, util.LogError("[CustomerRepo] не удалось получить заказы покупателя", err)
	}
	for i := range orders {
		orders[i].OrderDetails = []model.OrderDetail{}
	}
	customer.Orders = orders

	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Customer, error) {
	query := `
		SELECT customer_id, customer_name, contact_name, address, city, postal_code, country
		FROM customers
		ORDER BY customer_id
	`

	customers := []model.Customer{}
	if err := sqlx.SelectContext(ctx, exec, &customers, query); err != nil {
		return nil, util.LogError("[CustomerRepo] не удалось получить список покупателей", err)
	}

	orders := []model.Order{}
	orderQuery := `
		SELECT order_id, customer_id, order_date
		FROM orders
		ORDER BY order_id
	`
	if err := sqlx.SelectContext(ctx, exec, &orders, orderQuery); err != nil {
		return nil, util.LogError("[CustomerRepo] не удалось получить заказы покупателей", err)
	}

	byCustomer := make(map[int][]model.Order, len(customers))
	for _, order := range orders {
		order.OrderDetails = []model.OrderDetail{}
		byCustomer[order.CustomerID] = append(byCustomer[order.CustomerID], order)
	}
	for i := range customers {
		if list, ok := byCustomer[customers[i].CustomerID]; ok {
			customers[i].Orders = list
		} else {
			customers[i].Orders = []model.Order{}
		}
	}

	return customers, nil
}

func (r *CustomerRepository) Insert(ctx context.Context, exec sqlx.ExtContext, customer *model.Customer) (*model.Customer, error) {
	query := `
		INSERT INTO customers (customer_name, contact_name, address, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING customer_id
	`

	created := *customer
	err := exec.QueryRowxContext(ctx, query,
		customer.CustomerName, customer.ContactName, customer.Address,
		customer.City, customer.PostalCode, customer.Country).
		Scan(&created.CustomerID)
	if err != nil {
		return nil, util.LogError("[CustomerRepo] ошибка вставки покупателя в БД", err)
	}
	if created.Orders == nil {
		created.Orders = []model.Order{}
	}

	return &created, nil
}

func (r *CustomerRepository) Update(ctx context.Context, exec sqlx.ExtContext, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET customer_name = $2, contact_name = $3, address = $4, city = $5, postal_code = $6, country = $7
		WHERE customer_id = $1
	`

	result, err := exec.ExecContext(ctx, query,
		customer.CustomerID, customer.CustomerName, customer.ContactName,
		customer.Address, customer.City, customer.PostalCode, customer.Country)
	if err != nil {
		return util.LogError("[CustomerRepo] ошибка обновления покупателя", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CustomerRepo] ошибка чтения результата обновления", err)
	}
	if affected == 0 {
		return apperrors.ErrConcurrencyConflict
	}

	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return util.LogError("[CustomerRepo] ошибка удаления покупателя", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CustomerRepo] ошибка чтения результата удаления", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *CustomerRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE customer_id = $1)`, id)
	if err != nil {
		return false, util.LogError("[CustomerRepo] ошибка проверки существования покупателя", err)
	}
	return exists, nil
}
