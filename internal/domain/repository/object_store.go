package repository

import "context"

// ObjectStore определяет доступ на чтение к бакету со снимками
type ObjectStore interface {
	// ListKeys возвращает ключи объектов с префиксом, не более maxKeys
	ListKeys(ctx context.Context, prefix string, maxKeys int32) ([]string, error)

	// GetObject возвращает тело объекта
	GetObject(ctx context.Context, key string) ([]byte, error)
}
