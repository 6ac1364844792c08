package repository

import "fmt"

// CacheKeys : грамматика ключей кэша для одного типа сущности.
// Формат фиксирован для совместимости с уже записанными данными:
// "all_{множественное}" для коллекции, "{единственное}_{id}" для одной
// сущности, например "all_categories" и "category_42".
// Грамматика применяется единообразно на всех путях чтения и записи.
type CacheKeys struct {
	singular string
	plural   string
}

func NewCacheKeys(singular, plural string) CacheKeys {
	return CacheKeys{singular: singular, plural: plural}
}

// All : ключ полного снимка коллекции
func (k CacheKeys) All() string {
	return "all_" + k.plural
}

// ByID : ключ одиночной сущности
func (k CacheKeys) ByID(id int) string {
	return fmt.Sprintf("%s_%d", k.singular, id)
}

var (
	CategoryKeys    = NewCacheKeys("category", "categories")
	ProductKeys     = NewCacheKeys("product", "products")
	CustomerKeys    = NewCacheKeys("customer", "customers")
	OrderKeys       = NewCacheKeys("order", "orders")
	OrderDetailKeys = NewCacheKeys("order_detail", "order_details")
)
