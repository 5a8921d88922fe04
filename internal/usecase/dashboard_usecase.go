package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	apperrors "github.com/scooter-map/internal/pkg/errors"
	"github.com/scooter-map/internal/usecase/dto"
	"go.uber.org/zap"
)

// PipelineRunner выполняет один прогон
type PipelineRunner interface {
	Run(ctx context.Context) (*domain.PipelineResult, error)
}

// DashboardUseCase хранит результат последнего успешного прогона и отдает его дашборду.
// Неудачный перезапуск не затирает предыдущий результат.
type DashboardUseCase struct {
	runner    PipelineRunner
	cacheRepo repository.CacheRepository
	archive   repository.ArchiveRepository
	logger    *zap.Logger

	mu         sync.RWMutex
	latest     *domain.PipelineResult
	refreshing atomic.Bool
}

// NewDashboardUseCase создает новый экземпляр DashboardUseCase. cacheRepo и archive могут быть nil.
func NewDashboardUseCase(
	runner PipelineRunner,
	cacheRepo repository.CacheRepository,
	archive repository.ArchiveRepository,
	logger *zap.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		runner:    runner,
		cacheRepo: cacheRepo,
		archive:   archive,
		logger:    logger,
	}
}

// Refresh запускает прогон. Параллельный вызов получает ErrRefreshInProgress.
func (uc *DashboardUseCase) Refresh(ctx context.Context) (*domain.PipelineResult, error) {
	if !uc.refreshing.CompareAndSwap(false, true) {
		return nil, apperrors.ErrRefreshInProgress
	}
	defer uc.refreshing.Store(false)

	result, err := uc.runner.Run(ctx)
	if err != nil {
		uc.logger.Error("Pipeline run failed", zap.Error(err))
		return nil, apperrors.ErrPipelineFailed.WithDetails(map[string]interface{}{"cause": err.Error()})
	}

	uc.mu.Lock()
	uc.latest = result
	uc.mu.Unlock()

	return result, nil
}

// Latest возвращает последний результат или nil
func (uc *DashboardUseCase) Latest() *domain.PipelineResult {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.latest
}

// Refreshing - идет ли сейчас прогон
func (uc *DashboardUseCase) Refreshing() bool {
	return uc.refreshing.Load()
}

func (uc *DashboardUseCase) layer(kind domain.LayerKind) (domain.LayerResult, error) {
	latest := uc.Latest()
	if latest == nil {
		return domain.LayerResult{}, apperrors.ErrDashboardNotReady
	}
	layer, ok := latest.Layers[kind]
	if !ok {
		return domain.LayerResult{}, apperrors.ErrInvalidLayer.WithDetails(map[string]interface{}{"layer": string(kind)})
	}
	return layer, nil
}

// Figure возвращает карту слоя из последнего прогона.
// До первого своего прогона экземпляр отдает карту, сохраненную в кеше другим экземпляром.
func (uc *DashboardUseCase) Figure(ctx context.Context, kind domain.LayerKind) (*domain.Figure, error) {
	if uc.Latest() == nil {
		return uc.cachedFigure(ctx, kind)
	}

	layer, err := uc.layer(kind)
	if err != nil {
		return nil, err
	}
	return &layer.Figure, nil
}

func (uc *DashboardUseCase) cachedFigure(ctx context.Context, kind domain.LayerKind) (*domain.Figure, error) {
	if uc.cacheRepo == nil {
		return nil, apperrors.ErrDashboardNotReady
	}

	figure, err := uc.cacheRepo.GetFigure(ctx, kind)
	if err != nil {
		uc.logger.Warn("Failed to get figure from cache", zap.String("layer", string(kind)), zap.Error(err))
		return nil, apperrors.ErrDashboardNotReady
	}
	if figure == nil {
		return nil, apperrors.ErrDashboardNotReady
	}

	uc.logger.Debug("Figure served from cache", zap.String("layer", string(kind)))
	return figure, nil
}

// Counts возвращает счетчики слоя вместе с ключами карты
func (uc *DashboardUseCase) Counts(kind domain.LayerKind) (*dto.LayerCountsResponse, error) {
	layer, err := uc.layer(kind)
	if err != nil {
		return nil, err
	}

	c := layer.Counts
	resp := &dto.LayerCountsResponse{
		Layer:     kind,
		Label:     kind.Label(),
		Counts:    make([]dto.AreaCountItem, len(c.Counts)),
		Min:       c.Min,
		Max:       c.Max,
		Matched:   c.Matched,
		Unmatched: c.Unmatched,
		Ambiguous: c.Ambiguous,
	}
	for i, ac := range c.Counts {
		resp.Counts[i] = dto.AreaCountItem{
			AreaID:      ac.AreaID,
			LocationKey: kind.LocationKey(ac.AreaID),
			Count:       ac.Count,
		}
	}
	return resp, nil
}

// Summary возвращает сводку инвентаря последнего прогона
func (uc *DashboardUseCase) Summary() (*dto.InventoryResponse, error) {
	latest := uc.Latest()
	if latest == nil {
		return nil, apperrors.ErrDashboardNotReady
	}

	return &dto.InventoryResponse{
		RunID:          latest.RunID,
		Window:         latest.Window,
		FinishedAt:     latest.FinishedAt,
		Providers:      latest.Providers,
		Excluded:       latest.Excluded,
		Columns:        latest.Inventory.Columns,
		DroppedColumns: latest.Inventory.DroppedColumns,
		Total:          latest.Inventory.Total,
	}, nil
}

// History возвращает архив прогонов; без архива - пустой список
func (uc *DashboardUseCase) History(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if uc.archive == nil {
		return []domain.RunRecord{}, nil
	}

	runs, err := uc.archive.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// RunCounts возвращает счетчики слоя из архивного прогона
func (uc *DashboardUseCase) RunCounts(ctx context.Context, runID string, kind domain.LayerKind) (*dto.RunCountsResponse, error) {
	if uc.archive == nil {
		return nil, apperrors.ErrArchiveDisabled
	}

	records, err := uc.archive.GetCounts(ctx, runID, kind)
	if err != nil {
		return nil, fmt.Errorf("get counts: %w", err)
	}
	// слой прогона всегда содержит все области, пустой ответ - прогона нет
	if len(records) == 0 {
		return nil, apperrors.ErrRunNotFound.WithDetails(map[string]interface{}{"run_id": runID})
	}

	resp := &dto.RunCountsResponse{
		RunID:  runID,
		Layer:  kind,
		Label:  kind.Label(),
		Counts: make([]dto.AreaCountItem, len(records)),
	}
	for i, r := range records {
		resp.Counts[i] = dto.AreaCountItem{
			AreaID:      r.AreaID,
			LocationKey: r.LocationKey,
			Count:       r.Count,
		}
		resp.Total += r.Count
	}
	return resp, nil
}
