package repository

import (
	"context"

	"github.com/scooter-map/internal/domain"
)

// ArchiveRepository хранит историю прогонов и счетчики по областям
type ArchiveRepository interface {
	// EnsureSchema создает таблицы, если их нет
	EnsureSchema(ctx context.Context) error

	// SaveRun сохраняет прогон и все его счетчики одной транзакцией
	SaveRun(ctx context.Context, run domain.RunRecord, counts []domain.AreaCountRecord) error

	// ListRuns возвращает последние прогоны, новые первыми
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// GetCounts возвращает счетчики прогона по слою
	GetCounts(ctx context.Context, runID string, layer domain.LayerKind) ([]domain.AreaCountRecord, error)
}
