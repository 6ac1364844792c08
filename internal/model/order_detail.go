package model

type OrderDetail struct {
	OrderDetailID int `db:"order_detail_id" json:"order_detail_id"`
	OrderID       int `db:"order_id" json:"order_id"`
	ProductID     int `db:"product_id" json:"product_id"`
	Quantity      int `db:"quantity" json:"quantity"`
}
