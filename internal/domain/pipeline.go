package domain

import "time"

// ProviderSummary - что удалось загрузить по провайдеру за прогон
type ProviderSummary struct {
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	Snapshots   int       `json:"snapshots"`
	SnapshotKey string    `json:"snapshot_key,omitempty"`
	CapturedAt  time.Time `json:"captured_at"`
	Vehicles    int       `json:"vehicles"`
	Dropped     int       `json:"dropped"`
}

// LayerResult - счетчики и готовая карта для одного слоя
type LayerResult struct {
	Counts AggregateCount `json:"counts"`
	Figure Figure         `json:"figure"`
}

// PipelineResult - результат одного прогона
type PipelineResult struct {
	RunID      string                    `json:"run_id"`
	Window     time.Time                 `json:"window"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
	Providers  []ProviderSummary         `json:"providers"`
	Excluded   []string                  `json:"excluded"`
	Inventory  Inventory                 `json:"inventory"`
	Layers     map[LayerKind]LayerResult `json:"layers"`
}

// RunRecord - запись архива прогонов
type RunRecord struct {
	RunID         string    `json:"run_id" db:"run_id"`
	Window        time.Time `json:"window" db:"window_start"`
	StartedAt     time.Time `json:"started_at" db:"started_at"`
	FinishedAt    time.Time `json:"finished_at" db:"finished_at"`
	TotalVehicles int       `json:"total_vehicles" db:"total_vehicles"`
	Providers     string    `json:"providers" db:"providers"`
}

// AreaCountRecord - строка area_counts
type AreaCountRecord struct {
	RunID       string    `db:"run_id"`
	Layer       LayerKind `db:"layer"`
	AreaID      string    `db:"area_id"`
	LocationKey string    `db:"location_key"`
	Count       int       `db:"count"`
}
