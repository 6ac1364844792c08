package model

type Order struct {
	OrderID      int           `db:"order_id" json:"order_id"`
	CustomerID   int           `db:"customer_id" json:"customer_id"`
	OrderDate    Date          `db:"order_date" json:"order_date"`
	OrderDetails []OrderDetail `db:"-" json:"order_details"`
}
