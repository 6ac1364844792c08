package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"order-management-server/internal/apperrors"
	"order-management-server/internal/model"
	"order-management-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_GetByID_ExpandsDetails(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewOrderRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_id, customer_id, order_date")).
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "customer_id", "order_date"}).
			AddRow(12, 3, time.Date(2024, time.March, 8, 15, 4, 5, 0, time.UTC)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_detail_id, order_id, product_id, quantity")).
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"order_detail_id", "order_id", "product_id", "quantity"}).
			AddRow(1, 12, 7, 2).
			AddRow(4, 12, 9, 1))

	order, err := repo.GetByID(context.Background(), database, 12)

	require.NoError(t, err)
	assert.Equal(t, 12, order.OrderID)
	// дата заказа хранится без времени суток
	assert.Equal(t, "2024-03-08", order.OrderDate.String())
	require.Len(t, order.OrderDetails, 2)
	assert.Equal(t, 1, order.OrderDetails[0].OrderDetailID)
	assert.Equal(t, 4, order.OrderDetails[1].OrderDetailID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_MissingRow(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewOrderRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_id, customer_id, order_date")).
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "customer_id", "order_date"}))

	order, err := repo.GetByID(context.Background(), database, 12)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderRepository_List_OrderWithoutDetailsGetsEmptySlice(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewOrderRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_id, customer_id, order_date")).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "customer_id", "order_date"}).
			AddRow(12, 3, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)).
			AddRow(13, 3, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_detail_id, order_id, product_id, quantity")).
		WillReturnRows(sqlmock.NewRows([]string{"order_detail_id", "order_id", "product_id", "quantity"}).
			AddRow(1, 12, 7, 2))

	orders, err := repo.List(context.Background(), database)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Len(t, orders[0].OrderDetails, 1)
	assert.NotNil(t, orders[1].OrderDetails)
	assert.Empty(t, orders[1].OrderDetails)
}

func TestOrderRepository_Insert_ReturnsAssignedID(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewOrderRepository(database)

	orderDate := model.NewDate(2024, time.March, 8)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(3, "2024-03-08").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(21))

	created, err := repo.Insert(context.Background(), database, &model.Order{
		CustomerID: 3,
		OrderDate:  orderDate,
	})

	require.NoError(t, err)
	assert.Equal(t, 21, created.OrderID)
	assert.NotNil(t, created.OrderDetails)
}

func TestOrderRepository_Update_ZeroRowsIsConflict(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewOrderRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
		WithArgs(12, 3, "2024-03-08").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), database, &model.Order{
		OrderID:    12,
		CustomerID: 3,
		OrderDate:  model.NewDate(2024, time.March, 8),
	})

	assert.ErrorIs(t, err, apperrors.ErrConcurrencyConflict)
}

func TestOrderRepository_Delete_MissingRow(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewOrderRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders")).
		WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), database, 12)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
