package app

import (
	"context"
	"fmt"
	"time"

	"github.com/scooter-map/internal/config"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"github.com/scooter-map/internal/infrastructure/boundaries"
	"github.com/scooter-map/internal/infrastructure/objectstore"
	"github.com/scooter-map/internal/repository/cache"
	"github.com/scooter-map/internal/repository/postgres"
	"github.com/scooter-map/internal/usecase"
	"go.uber.org/zap"
)

// Dependencies - собранный прогон и открытые подключения
type Dependencies struct {
	Pipeline *usecase.PipelineUseCase
	Cache    repository.CacheRepository
	Archive  repository.ArchiveRepository

	redis  *cache.Redis
	db     *postgres.DB
	logger *zap.Logger
}

// Build подключает Redis и PostgreSQL (если включены) и собирает PipelineUseCase из конфигурации
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{logger: logger}

	tieBreak, err := domain.ParseTieBreak(cfg.Pipeline.TieBreak)
	if err != nil {
		return nil, err
	}

	// 1. Cache
	cacheRepo := cache.NewNopCacheRepository()
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		deps.redis = redisClient
		cacheRepo = cache.NewCacheRepository(redisClient)
		logger.Info("Redis connected")
	}
	deps.Cache = cacheRepo

	// 2. Archive
	if cfg.Archive.Enabled {
		db, err := postgres.New(&cfg.Database, logger)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		deps.db = db

		archive := postgres.NewArchiveRepository(db)
		schemaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := archive.EnsureSchema(schemaCtx); err != nil {
			deps.Close()
			return nil, fmt.Errorf("ensure archive schema: %w", err)
		}
		deps.Archive = archive
		logger.Info("Run archive enabled")
	}

	// 3. Sources
	store := objectstore.NewS3Client(&cfg.ObjectStore, logger)
	boundarySource := boundaries.NewBoundaryClient(&cfg.Boundary, logger)

	// 4. Use cases
	providers := make([]domain.Provider, len(cfg.Snapshot.Providers))
	for i, p := range cfg.Snapshot.Providers {
		providers[i] = domain.Provider{Name: p.Name, Color: p.Color}
	}

	deps.Pipeline = usecase.NewPipelineUseCase(
		usecase.NewSnapshotLoader(store, cfg.Snapshot.IgnorePatterns, cfg.Snapshot.MaxKeys, cfg.Pipeline.Workers, logger),
		usecase.NewSnapshotSelector(cfg.Snapshot.VehiclesKey),
		usecase.NewGeocoder(logger),
		usecase.NewBoundaryUseCase(boundarySource, cacheRepo, logger, cfg.Cache.BoundaryCacheTTL),
		usecase.NewSpatialAggregator(tieBreak, logger),
		cacheRepo,
		deps.Archive,
		usecase.PipelineOptions{
			Window:              cfg.Snapshot.Window,
			Providers:           providers,
			RequireAllProviders: cfg.Pipeline.RequireAllProviders,
			Timeout:             cfg.Pipeline.Timeout,
			FigureCacheTTL:      cfg.Cache.FigureCacheTTL,
		},
		logger,
	)

	return deps, nil
}

// Close закрывает подключения
func (d *Dependencies) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			d.logger.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}
}
