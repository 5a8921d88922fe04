package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/scooter-map/internal/domain"
	apperrors "github.com/scooter-map/internal/pkg/errors"
	"github.com/scooter-map/internal/worker"
	"go.uber.org/zap"
)

// Refresher перезапускает прогон и публикует результат
type Refresher interface {
	Refresh(ctx context.Context) (*domain.PipelineResult, error)
}

// RefreshWorker перезапускает прогон по cron-расписанию (REFRESH_SCHEDULE)
type RefreshWorker struct {
	*worker.BaseWorker
	refresher Refresher
	schedule  cron.Schedule
	spec      string
}

// NewRefreshWorker создает воркер; spec - стандартное cron-выражение или дескриптор (@every 15m, @hourly)
func NewRefreshWorker(refresher Refresher, spec string, logger *zap.Logger) (*RefreshWorker, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("pipeline-refresh", logger),
		refresher:  refresher,
		schedule:   schedule,
		spec:       spec,
	}, nil
}

// Start планирует прогоны и блокируется до остановки воркера или отмены ctx
func (w *RefreshWorker) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(w.schedule, cron.FuncJob(func() { w.RunOnce(ctx) }))
	c.Start()

	w.Logger().Info("Refresh scheduled", zap.String("schedule", w.spec))

	select {
	case <-ctx.Done():
	case <-w.StopChan():
	}

	// ждем текущий прогон
	<-c.Stop().Done()
	w.Logger().Info("Refresh worker stopped")
	return nil
}

// RunOnce выполняет один перезапуск; ошибки только логируются, расписание продолжается
func (w *RefreshWorker) RunOnce(ctx context.Context) {
	start := time.Now()

	result, err := w.refresher.Refresh(ctx)
	switch {
	case errors.Is(err, apperrors.ErrRefreshInProgress):
		w.Logger().Info("Refresh skipped, another run in progress")
	case err != nil:
		w.Logger().Error("Scheduled refresh failed", zap.Error(err))
	default:
		w.Logger().Info("Scheduled refresh finished",
			zap.String("run_id", result.RunID),
			zap.Int("vehicles", result.Inventory.Total),
			zap.Duration("duration", time.Since(start)))
	}
}
