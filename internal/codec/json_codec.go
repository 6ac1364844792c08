// Package codec отвечает за представление сущностей в кэше.
//
// Кэш не объектный: значение — плоский JSON-снимок сущности со связями,
// раскрытыми ровно на один уровень. Обратные ссылки (товар -> категория)
// в снимок не попадают, это решается на уровне типов в пакете model,
// а не отслеживанием ссылок при сериализации.
package codec

import (
	"encoding/json"
	"fmt"
)

// JSONCodec реализует ports.EntityCodec. Тип T — сущность либо срез
// сущностей: для коллекционных ключей кодируется весь срез целиком.
type JSONCodec[T any] struct{}

func NewJSONCodec[T any]() *JSONCodec[T] {
	return &JSONCodec[T]{}
}

func (c *JSONCodec[T]) Encode(value T) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации значения для кэша: %w", err)
	}
	return data, nil
}

func (c *JSONCodec[T]) Decode(data []byte) (T, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("ошибка десериализации значения из кэша: %w", err)
	}
	return value, nil
}
