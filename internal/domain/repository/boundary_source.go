package repository

import (
	"context"

	"github.com/scooter-map/internal/domain"
)

// BoundarySource отдает сырой GeoJSON слоя границ (локальный файл или удаленный источник)
type BoundarySource interface {
	Fetch(ctx context.Context, kind domain.LayerKind) ([]byte, error)
}
