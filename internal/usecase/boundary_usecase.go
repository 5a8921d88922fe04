package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"go.uber.org/zap"
)

// BoundaryUseCase отдает слои границ: кеш -> источник, разобранный слой хранится в памяти
type BoundaryUseCase struct {
	source    repository.BoundarySource
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration

	mu     sync.Mutex
	layers map[domain.LayerKind]domain.BoundaryLayer
}

// NewBoundaryUseCase создает новый экземпляр BoundaryUseCase
func NewBoundaryUseCase(
	source repository.BoundarySource,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *BoundaryUseCase {
	return &BoundaryUseCase{
		source:    source,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
		layers:    make(map[domain.LayerKind]domain.BoundaryLayer),
	}
}

// GetLayer возвращает слой. Границы не меняются между прогонами, поэтому слой разбирается один раз.
func (uc *BoundaryUseCase) GetLayer(ctx context.Context, kind domain.LayerKind) (domain.BoundaryLayer, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if layer, ok := uc.layers[kind]; ok {
		return layer, nil
	}

	layer, err := uc.loadLayer(ctx, kind)
	if err != nil {
		return domain.BoundaryLayer{}, err
	}

	uc.layers[kind] = layer
	uc.logger.Info("Boundary layer loaded",
		zap.String("layer", string(kind)),
		zap.Int("areas", len(layer.Areas)))

	return layer, nil
}

// loadLayer: кеш -> источник. В кеш попадает только слой, который удалось разобрать;
// неразбираемая запись кеша удаляется и слой запрашивается у источника.
func (uc *BoundaryUseCase) loadLayer(ctx context.Context, kind domain.LayerKind) (domain.BoundaryLayer, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetBoundary(ctx, kind)
	if err != nil {
		uc.logger.Warn("Failed to get boundary from cache", zap.String("layer", string(kind)), zap.Error(err))
	}
	if err == nil && cached != nil {
		layer, parseErr := uc.ParseLayer(kind, cached)
		if parseErr == nil {
			uc.logger.Debug("Boundary layer fetched from cache", zap.String("layer", string(kind)))
			return layer, nil
		}

		uc.logger.Warn("Cached boundary layer is corrupt, refetching",
			zap.String("layer", string(kind)),
			zap.Error(parseErr))
		if err := uc.cacheRepo.DeleteBoundary(ctx, kind); err != nil {
			uc.logger.Warn("Failed to delete boundary from cache", zap.String("layer", string(kind)), zap.Error(err))
		}
	}

	// 2. Источник (файл или портал данных)
	raw, err := uc.source.Fetch(ctx, kind)
	if err != nil {
		return domain.BoundaryLayer{}, fmt.Errorf("fetch boundary %s: %w", kind, err)
	}

	layer, err := uc.ParseLayer(kind, raw)
	if err != nil {
		return domain.BoundaryLayer{}, err
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetBoundary(ctx, kind, raw, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache boundary", zap.String("layer", string(kind)), zap.Error(err))
	}

	return layer, nil
}

// ParseLayer разбирает FeatureCollection в слой.
// Берутся только Polygon/MultiPolygon с непустым идентификатором; фичи с одинаковым идентификатором
// сливаются в один MultiPolygon на месте первой.
func (uc *BoundaryUseCase) ParseLayer(kind domain.LayerKind, raw []byte) (domain.BoundaryLayer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return domain.BoundaryLayer{}, fmt.Errorf("%w: parse %s: %v", domain.ErrBoundaryUnavailable, kind, err)
	}

	layer := domain.BoundaryLayer{Kind: kind, Areas: make([]domain.Area, 0, len(fc.Features))}
	index := make(map[string]int, len(fc.Features))
	skipped := 0

	for _, f := range fc.Features {
		id, ok := areaID(f.Properties[kind.IDProperty()])
		if !ok {
			skipped++
			continue
		}

		var geom orb.Geometry
		switch g := f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			geom = g
		default:
			skipped++
			continue
		}

		if i, exists := index[id]; exists {
			merged := mergePolygons(layer.Areas[i].Geometry, geom)
			layer.Areas[i].Geometry = merged
			layer.Areas[i].Bound = merged.Bound()
			continue
		}

		index[id] = len(layer.Areas)
		layer.Areas = append(layer.Areas, domain.Area{
			ID:         id,
			Geometry:   geom,
			Bound:      geom.Bound(),
			Properties: copyProperties(f.Properties),
		})
	}

	if skipped > 0 {
		uc.logger.Warn("Skipped boundary features without id or polygon geometry",
			zap.String("layer", string(kind)),
			zap.Int("skipped", skipped))
	}

	return layer, nil
}

// areaID приводит идентификатор к строке; числа без дробной части пишутся без ".0"
func areaID(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	default:
		return "", false
	}
}

func mergePolygons(a, b orb.Geometry) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for _, g := range []orb.Geometry{a, b} {
		switch p := g.(type) {
		case orb.Polygon:
			mp = append(mp, p)
		case orb.MultiPolygon:
			mp = append(mp, p...)
		}
	}
	return mp
}

func copyProperties(props geojson.Properties) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
