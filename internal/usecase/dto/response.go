package dto

import (
	"time"

	"github.com/scooter-map/internal/domain"
)

// LayerCountsResponse - счетчики по областям слоя
type LayerCountsResponse struct {
	Layer     domain.LayerKind `json:"layer"`
	Label     string           `json:"label"`
	Counts    []AreaCountItem  `json:"counts"`
	Min       int              `json:"min"`
	Max       int              `json:"max"`
	Matched   int              `json:"matched"`
	Unmatched int              `json:"unmatched"`
	Ambiguous int              `json:"ambiguous"`
}

// AreaCountItem - счетчик области вместе с ключом карты
type AreaCountItem struct {
	AreaID      string `json:"area_id"`
	LocationKey string `json:"location_key"`
	Count       int    `json:"count"`
}

// InventoryResponse - сводка последнего прогона
type InventoryResponse struct {
	RunID          string                   `json:"run_id"`
	Window         time.Time                `json:"window"`
	FinishedAt     time.Time                `json:"finished_at"`
	Providers      []domain.ProviderSummary `json:"providers"`
	Excluded       []string                 `json:"excluded"`
	Columns        []string                 `json:"columns"`
	DroppedColumns []string                 `json:"dropped_columns"`
	Total          int                      `json:"total"`
}

// RefreshResponse - итог ручного перезапуска
type RefreshResponse struct {
	RunID      string    `json:"run_id"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Excluded   []string  `json:"excluded"`
}

// RunCountsResponse - счетчики слоя архивного прогона
type RunCountsResponse struct {
	RunID  string           `json:"run_id"`
	Layer  domain.LayerKind `json:"layer"`
	Label  string           `json:"label"`
	Counts []AreaCountItem  `json:"counts"`
	Total  int              `json:"total"`
}

// RunsResponse - архив прогонов, новые первыми
type RunsResponse struct {
	Runs []domain.RunRecord `json:"runs"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status     string `json:"status"`
	Ready      bool   `json:"ready"`
	Refreshing bool   `json:"refreshing"`
	RunID      string `json:"run_id,omitempty"`
}
