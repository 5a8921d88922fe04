package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"go.uber.org/zap"
)

const keyPrefix = "scooter-map:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, keyPrefix+key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) GetBoundary(ctx context.Context, kind domain.LayerKind) ([]byte, error) {
	return r.Get(ctx, boundaryKey(kind))
}

func (r *cacheRepository) SetBoundary(ctx context.Context, kind domain.LayerKind, data []byte, ttl time.Duration) error {
	return r.Set(ctx, boundaryKey(kind), data, ttl)
}

func (r *cacheRepository) DeleteBoundary(ctx context.Context, kind domain.LayerKind) error {
	return r.Delete(ctx, boundaryKey(kind))
}

// GetFigure получает карту слоя из кеша
func (r *cacheRepository) GetFigure(ctx context.Context, kind domain.LayerKind) (*domain.Figure, error) {
	data, err := r.Get(ctx, figureKey(kind))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var figure domain.Figure
	if err := json.Unmarshal(data, &figure); err != nil {
		r.logger.Error("Failed to unmarshal figure from cache", zap.String("layer", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("unmarshal figure: %w", err)
	}

	return &figure, nil
}

// SetFigure сохраняет карту слоя в кеше
func (r *cacheRepository) SetFigure(ctx context.Context, kind domain.LayerKind, figure *domain.Figure, ttl time.Duration) error {
	data, err := json.Marshal(figure)
	if err != nil {
		r.logger.Error("Failed to marshal figure", zap.String("layer", string(kind)), zap.Error(err))
		return fmt.Errorf("marshal figure: %w", err)
	}

	return r.Set(ctx, figureKey(kind), data, ttl)
}

func boundaryKey(kind domain.LayerKind) string {
	return "boundary:" + string(kind)
}

func figureKey(kind domain.LayerKind) string {
	return "figure:" + string(kind)
}
