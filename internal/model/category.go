package model

// Category : категория товаров. В кэш и в ответы сериализуется вместе со
// своими товарами (по возрастанию product_id); сами товары обратной ссылки
// на категорию не несут, иначе граф зациклится.
type Category struct {
	CategoryID   int       `db:"category_id" json:"category_id"`
	CategoryName string    `db:"category_name" json:"category_name"`
	Description  string    `db:"description" json:"description"`
	Products     []Product `db:"-" json:"products"`
}
