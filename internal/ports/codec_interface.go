package ports

// EntityCodec : (де)сериализация значения для кэша.
// Для любого корректного x должно выполняться Decode(Encode(x)) == x.
type EntityCodec[T any] interface {
	Encode(value T) ([]byte, error)
	Decode(data []byte) (T, error)
}
