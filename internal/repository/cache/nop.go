package cache

import (
	"context"
	"time"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
)

// nopCache используется при REDIS_ENABLED=false: всегда промах, запись игнорируется
type nopCache struct{}

func NewNopCacheRepository() repository.CacheRepository {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (nopCache) Delete(context.Context, string) error { return nil }

func (nopCache) GetBoundary(context.Context, domain.LayerKind) ([]byte, error) { return nil, nil }

func (nopCache) SetBoundary(context.Context, domain.LayerKind, []byte, time.Duration) error {
	return nil
}

func (nopCache) DeleteBoundary(context.Context, domain.LayerKind) error { return nil }

func (nopCache) GetFigure(context.Context, domain.LayerKind) (*domain.Figure, error) {
	return nil, nil
}

func (nopCache) SetFigure(context.Context, domain.LayerKind, *domain.Figure, time.Duration) error {
	return nil
}
