package repository

import (
	"context"
	"time"

	"github.com/scooter-map/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetBoundary получает сырой GeoJSON слоя
	GetBoundary(ctx context.Context, kind domain.LayerKind) ([]byte, error)

	// SetBoundary сохраняет сырой GeoJSON слоя
	SetBoundary(ctx context.Context, kind domain.LayerKind, data []byte, ttl time.Duration) error

	// DeleteBoundary удаляет слой из кеша (например, если он не разбирается)
	DeleteBoundary(ctx context.Context, kind domain.LayerKind) error

	// GetFigure получает последнюю карту слоя
	GetFigure(ctx context.Context, kind domain.LayerKind) (*domain.Figure, error)

	// SetFigure сохраняет карту слоя
	SetFigure(ctx context.Context, kind domain.LayerKind, figure *domain.Figure, ttl time.Duration) error
}
