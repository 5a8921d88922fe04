package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"github.com/scooter-map/internal/metrics"
	"go.uber.org/zap"
)

// PipelineOptions - параметры прогона
type PipelineOptions struct {
	Window              time.Time
	Providers           []domain.Provider
	Layers              []domain.LayerKind
	RequireAllProviders bool
	Timeout             time.Duration
	FigureCacheTTL      time.Duration
}

// PipelineUseCase проводит окно через все этапы:
// загрузка -> выбор снимка -> геокодирование -> инвентарь -> агрегация по слоям -> карты
type PipelineUseCase struct {
	loader     *SnapshotLoader
	selector   *SnapshotSelector
	geocoder   *Geocoder
	inventory  *InventoryBuilder
	boundaries *BoundaryUseCase
	aggregator *SpatialAggregator
	choropleth *ChoroplethBuilder
	cacheRepo  repository.CacheRepository
	archive    repository.ArchiveRepository
	opts       PipelineOptions
	logger     *zap.Logger
}

// NewPipelineUseCase создает новый экземпляр PipelineUseCase. archive может быть nil (архив выключен).
func NewPipelineUseCase(
	loader *SnapshotLoader,
	selector *SnapshotSelector,
	geocoder *Geocoder,
	boundaries *BoundaryUseCase,
	aggregator *SpatialAggregator,
	cacheRepo repository.CacheRepository,
	archive repository.ArchiveRepository,
	opts PipelineOptions,
	logger *zap.Logger,
) *PipelineUseCase {
	if len(opts.Layers) == 0 {
		opts.Layers = domain.AllLayers()
	}
	return &PipelineUseCase{
		loader:     loader,
		selector:   selector,
		geocoder:   geocoder,
		inventory:  NewInventoryBuilder(),
		boundaries: boundaries,
		aggregator: aggregator,
		choropleth: NewChoroplethBuilder(),
		cacheRepo:  cacheRepo,
		archive:    archive,
		opts:       opts,
		logger:     logger,
	}
}

// Run выполняет один прогон. Ошибка листинга, недоступный слой границ или
// отсутствие пригодных провайдеров прерывают прогон.
func (uc *PipelineUseCase) Run(ctx context.Context) (*domain.PipelineResult, error) {
	started := time.Now().UTC()
	result, err := uc.run(ctx, started)

	metrics.PipelineDurationSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.PipelineRunsTotal.WithLabelValues("success").Inc()
	return result, nil
}

func (uc *PipelineUseCase) run(ctx context.Context, started time.Time) (*domain.PipelineResult, error) {
	if uc.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.Timeout)
		defer cancel()
	}

	if len(uc.opts.Providers) == 0 {
		return nil, domain.ErrNoProviders
	}

	result := &domain.PipelineResult{
		RunID:     uuid.NewString(),
		Window:    uc.opts.Window,
		StartedAt: started,
		Excluded:  []string{},
		Layers:    make(map[domain.LayerKind]domain.LayerResult, len(uc.opts.Layers)),
	}
	log := uc.logger.With(zap.String("run_id", result.RunID), zap.Time("window", uc.opts.Window))
	log.Info("Pipeline run started", zap.Int("providers", len(uc.opts.Providers)))

	names := make([]string, len(uc.opts.Providers))
	for i, p := range uc.opts.Providers {
		names[i] = p.Name
	}

	// 1. Снимки всех провайдеров
	loaded, err := uc.loader.LoadAll(ctx, names, uc.opts.Window)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}

	// 2-3. Выбор снимка и геокодирование
	tables := make([]domain.GeocodedTable, 0, len(uc.opts.Providers))
	for _, p := range uc.opts.Providers {
		snapshots := loaded[p.Name]
		summary := domain.ProviderSummary{Name: p.Name, Color: p.Color, Snapshots: len(snapshots)}

		selected, err := uc.selector.Select(p.Name, snapshots)
		if err != nil {
			if uc.opts.RequireAllProviders {
				return nil, err
			}
			log.Warn("Provider excluded from inventory", zap.String("provider", p.Name), zap.Error(err))
			result.Excluded = append(result.Excluded, p.Name)
			result.Providers = append(result.Providers, summary)
			continue
		}

		table := uc.geocoder.Geocode(selected)
		summary.SnapshotKey = selected.Key
		summary.CapturedAt = selected.CapturedAt
		summary.Vehicles = len(table.Records)
		summary.Dropped = table.Dropped
		result.Providers = append(result.Providers, summary)
		tables = append(tables, table)

		log.Info("Snapshot selected",
			zap.String("provider", p.Name),
			zap.String("key", selected.Key),
			zap.Time("captured_at", selected.CapturedAt),
			zap.Int("vehicles", len(table.Records)))
	}

	if len(tables) == 0 {
		return nil, domain.ErrNoProviders
	}

	// 4. Инвентарь
	result.Inventory = uc.inventory.Build(tables)
	log.Info("Inventory built",
		zap.Int("total", result.Inventory.Total),
		zap.Any("by_provider", result.Inventory.CountsByProvider),
		zap.Strings("dropped_columns", result.Inventory.DroppedColumns))

	// 5-6. Агрегация и карты по слоям
	for _, kind := range uc.opts.Layers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline aborted: %w", err)
		}

		layer, err := uc.boundaries.GetLayer(ctx, kind)
		if err != nil {
			return nil, err
		}

		counts := uc.aggregator.AggregateInventory(layer, result.Inventory)
		figure := uc.choropleth.Build(layer, counts, uc.opts.Window)
		result.Layers[kind] = domain.LayerResult{Counts: counts, Figure: figure}

		log.Info("Layer aggregated",
			zap.String("layer", string(kind)),
			zap.Int("min", counts.Min),
			zap.Int("max", counts.Max),
			zap.Int("matched", counts.Matched),
			zap.Int("unmatched", counts.Unmatched),
			zap.Int("ambiguous", counts.Ambiguous))

		if err := uc.cacheRepo.SetFigure(ctx, kind, &figure, uc.opts.FigureCacheTTL); err != nil {
			log.Warn("Failed to cache figure", zap.String("layer", string(kind)), zap.Error(err))
		}
	}

	result.FinishedAt = time.Now().UTC()

	if uc.archive != nil {
		if err := uc.archiveRun(ctx, result); err != nil {
			log.Warn("Failed to archive run", zap.Error(err))
		}
	}

	log.Info("Pipeline run finished", zap.Duration("duration", result.FinishedAt.Sub(started)))
	return result, nil
}

func (uc *PipelineUseCase) archiveRun(ctx context.Context, result *domain.PipelineResult) error {
	run, counts := ArchiveRecords(result)
	if err := uc.archive.SaveRun(ctx, run, counts); err != nil {
		return fmt.Errorf("save run %s: %w", result.RunID, err)
	}
	return nil
}

// ArchiveRecords переводит результат прогона в строки архива
func ArchiveRecords(result *domain.PipelineResult) (domain.RunRecord, []domain.AreaCountRecord) {
	run := domain.RunRecord{
		RunID:         result.RunID,
		Window:        result.Window,
		StartedAt:     result.StartedAt,
		FinishedAt:    result.FinishedAt,
		TotalVehicles: result.Inventory.Total,
		Providers:     strings.Join(result.Inventory.Providers, ","),
	}

	var counts []domain.AreaCountRecord
	for _, kind := range domain.AllLayers() {
		layer, ok := result.Layers[kind]
		if !ok {
			continue
		}
		for _, c := range layer.Counts.Counts {
			counts = append(counts, domain.AreaCountRecord{
				RunID:       result.RunID,
				Layer:       kind,
				AreaID:      c.AreaID,
				LocationKey: kind.LocationKey(c.AreaID),
				Count:       c.Count,
			})
		}
	}
	return run, counts
}
