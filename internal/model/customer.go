package model

type Customer struct {
	CustomerID   int     `db:"customer_id" json:"customer_id"`
	CustomerName string  `db:"customer_name" json:"customer_name"`
	ContactName  string  `db:"contact_name" json:"contact_name"`
	Address      string  `db:"address" json:"address"`
	City         string  `db:"city" json:"city"`
	PostalCode   string  `db:"postal_code" json:"postal_code"`
	Country      string  `db:"country" json:"country"`
	Orders       []Order `db:"-" json:"orders"`
}
