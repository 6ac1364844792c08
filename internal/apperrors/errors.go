// Package apperrors содержит доменные ошибки сервиса.
// Обработчики HTTP сопоставляют их со статусами через errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound : сущность отсутствует в БД
	ErrNotFound = errors.New("сущность не найдена")

	// ErrKeyMismatch : идентификатор в пути не совпадает с идентификатором в теле запроса
	ErrKeyMismatch = errors.New("идентификатор в пути не совпадает с идентификатором сущности")

	// ErrConcurrencyConflict : БД обнаружила конкурирующее обновление той же строки.
	// Повторная отправка — ответственность клиента, сервис не ретраит.
	ErrConcurrencyConflict = errors.New("конфликт конкурентного обновления")

	// ErrCacheUnavailable : Redis недоступен. Никогда не доходит до клиента —
	// сервис деградирует до работы напрямую с БД.
	ErrCacheUnavailable = errors.New("кэш недоступен")

	// ErrStorageUnavailable : S3 недоступен
	ErrStorageUnavailable = errors.New("объектное хранилище недоступно")
)
