package repository_test

import (
	"context"
	"regexp"
	"testing"

	"order-management-server/config"
	"order-management-server/internal/apperrors"
	"order-management-server/internal/model"
	"order-management-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestCategoryRepository_GetByID_ExpandsProducts(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id, category_name, description")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name", "description"}).
			AddRow(5, "Напитки", "Чай, кофе, соки"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT product_id, product_name, category_id, unit, price")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "category_id", "unit", "price"}).
			AddRow(1, "Чай", 5, "100 пакетиков", "18.00").
			AddRow(3, "Кофе", 5, "250 г", "46.50"))

	category, err := repo.GetByID(context.Background(), database, 5)

	require.NoError(t, err)
	assert.Equal(t, 5, category.CategoryID)
	require.Len(t, category.Products, 2)
	assert.Equal(t, 1, category.Products[0].ProductID)
	assert.Equal(t, 3, category.Products[1].ProductID)
	assert.True(t, category.Products[0].Price.Equal(decimal.RequireFromString("18.00")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetByID_MissingRow(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id, category_name, description")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name", "description"}))

	category, err := repo.GetByID(context.Background(), database, 5)

	assert.Nil(t, category)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryRepository_List_GroupsProductsByCategory(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id, category_name, description")).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name", "description"}).
			AddRow(1, "Приправы", "").
			AddRow(5, "Напитки", ""))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT product_id, product_name, category_id, unit, price")).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "category_id", "unit", "price"}).
			AddRow(1, "Чай", 5, "100 пакетиков", "18.00").
			AddRow(2, "Соус", 1, "12 банок", "10.00").
			AddRow(3, "Кофе", 5, "250 г", "46.50"))

	categories, err := repo.List(context.Background(), database)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Len(t, categories[0].Products, 1)
	assert.Equal(t, 2, categories[0].Products[0].ProductID)
	require.Len(t, categories[1].Products, 2)
	assert.Equal(t, 1, categories[1].Products[0].ProductID)
	assert.Equal(t, 3, categories[1].Products[1].ProductID)
}

func TestCategoryRepository_Insert_ReturnsAssignedID(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WithArgs("Напитки", "Чай, кофе, соки").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(9))

	created, err := repo.Insert(context.Background(), database, &model.Category{
		CategoryName: "Напитки",
		Description:  "Чай, кофе, соки",
	})

	require.NoError(t, err)
	assert.Equal(t, 9, created.CategoryID)
	assert.NotNil(t, created.Products)
}

func TestCategoryRepository_Update_ZeroRowsIsConflict(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories")).
		WithArgs(5, "Напитки", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), database, &model.Category{
		CategoryID:   5,
		CategoryName: "Напитки",
	})

	assert.ErrorIs(t, err, apperrors.ErrConcurrencyConflict)
}

func TestCategoryRepository_Update_Success(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories")).
		WithArgs(5, "Напитки", "обновлено").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), database, &model.Category{
		CategoryID:   5,
		CategoryName: "Напитки",
		Description:  "обновлено",
	})

	assert.NoError(t, err)
}

func TestCategoryRepository_Delete_MissingRow(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), database, 5)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryRepository_Exists(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewCategoryRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), database, 5)

	require.NoError(t, err)
	assert.True(t, exists)
}
