package codec_test

import (
	"testing"
	"time"

	"order-management-server/internal/codec"
	"order-management-server/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip_Category(t *testing.T) {
	entityCodec := codec.NewJSONCodec[model.Category]()

	category := model.Category{
		CategoryID:   5,
		CategoryName: "Напитки",
		Description:  "Чай, кофе, соки",
		Products: []model.Product{
			{ProductID: 1, ProductName: "Чай", CategoryID: 5, Unit: "100 пакетиков", Price: decimal.RequireFromString("18.00")},
			{ProductID: 3, ProductName: "Кофе", CategoryID: 5, Unit: "250 г", Price: decimal.RequireFromString("46.50")},
		},
	}

	data, err := entityCodec.Encode(category)
	require.NoError(t, err)

	decoded, err := entityCodec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, category, decoded)
}

func TestRoundTrip_ProductKeepsExactPrice(t *testing.T) {
	entityCodec := codec.NewJSONCodec[model.Product]()

	product := model.Product{
		ProductID:   78,
		ProductName: "Widget",
		CategoryID:  5,
		Unit:        "1 шт",
		Price:       decimal.RequireFromString("9.99"),
	}

	data, err := entityCodec.Encode(product)
	require.NoError(t, err)

	decoded, err := entityCodec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, product, decoded)
	// цена не проходит через двоичную плавающую точку
	assert.True(t, decoded.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, "9.99", decoded.Price.String())
}

func TestRoundTrip_OrderWithDetails(t *testing.T) {
	entityCodec := codec.NewJSONCodec[model.Order]()

	order := model.Order{
		OrderID:    101,
		CustomerID: 17,
		OrderDate:  model.NewDate(2024, time.March, 8),
		OrderDetails: []model.OrderDetail{
			{OrderDetailID: 1, OrderID: 101, ProductID: 78, Quantity: 2},
			{OrderDetailID: 2, OrderID: 101, ProductID: 3, Quantity: 10},
		},
	}

	data, err := entityCodec.Encode(order)
	require.NoError(t, err)
	// дата сериализуется без часового пояса
	assert.Contains(t, string(data), `"order_date":"2024-03-08"`)

	decoded, err := entityCodec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, order, decoded)
}

func TestRoundTrip_CustomerList(t *testing.T) {
	listCodec := codec.NewJSONCodec[[]model.Customer]()

	customers := []model.Customer{
		{
			CustomerID:   17,
			CustomerName: "ООО Ромашка",
			ContactName:  "Иванов И.И.",
			Address:      "ул. Ленина, 1",
			City:         "Москва",
			PostalCode:   "101000",
			Country:      "Россия",
			Orders: []model.Order{
				{OrderID: 101, CustomerID: 17, OrderDate: model.NewDate(2024, time.March, 8), OrderDetails: []model.OrderDetail{}},
			},
		},
		{
			CustomerID:   18,
			CustomerName: "ИП Петров",
			Orders:       []model.Order{},
		},
	}

	data, err := listCodec.Encode(customers)
	require.NoError(t, err)

	decoded, err := listCodec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, customers, decoded)
}

// Встроенный в категорию товар не несёт обратной ссылки на категорию —
// в снимке нет цикла, только плоский category_id.
func TestEncodedCategoryHasNoBackReference(t *testing.T) {
	entityCodec := codec.NewJSONCodec[model.Category]()

	category := model.Category{
		CategoryID:   5,
		CategoryName: "Напитки",
		Products: []model.Product{
			{ProductID: 1, ProductName: "Чай", CategoryID: 5, Price: decimal.New(1800, -2)},
		},
	}

	data, err := entityCodec.Encode(category)
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"category_name":null`)
	assert.NotContains(t, string(data), `"category":{`)
	assert.Contains(t, string(data), `"category_id":5`)
}

func TestDecode_InvalidPayload(t *testing.T) {
	entityCodec := codec.NewJSONCodec[model.Category]()

	_, err := entityCodec.Decode([]byte("{обрезанный json"))
	assert.Error(t, err)
}
