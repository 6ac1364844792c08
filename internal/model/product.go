package model

import "github.com/shopspring/decimal"

// Product : товар. Цена хранится десятичным числом с фиксированной точкой,
// двоичное округление недопустимо.
type Product struct {
	ProductID   int             `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	CategoryID  int             `db:"category_id" json:"category_id"`
	Unit        string          `db:"unit" json:"unit"`
	Price       decimal.Decimal `db:"price" json:"price"`
}
