package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// CRS всех геометрий инвентаря
const CRS = "EPSG:4326"

// GeocodedRecord - запись с точкой (lon, lat) вместо сырых координат
type GeocodedRecord struct {
	ID         string                 `json:"id"`
	Provider   string                 `json:"provider"`
	Point      orb.Point              `json:"point"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// GeocodedTable - геокодированные записи одного провайдера
type GeocodedTable struct {
	Provider   string
	CapturedAt time.Time
	CRS        string
	Records    []GeocodedRecord
	// Dropped - записи, отброшенные из-за нечисловых или невалидных координат
	Dropped int
}

// Columns возвращает объединение атрибутов всех записей таблицы
func (t GeocodedTable) Columns() map[string]struct{} {
	cols := make(map[string]struct{})
	for _, r := range t.Records {
		for k := range r.Attributes {
			cols[k] = struct{}{}
		}
	}
	return cols
}

// Inventory - все геокодированные записи за окно, помеченные провайдером.
// Columns - пересечение колонок всех провайдеров, остальные перечислены в DroppedColumns.
type Inventory struct {
	Records          []GeocodedRecord `json:"-"`
	Providers        []string         `json:"providers"`
	Columns          []string         `json:"columns"`
	DroppedColumns   []string         `json:"dropped_columns"`
	CountsByProvider map[string]int   `json:"counts_by_provider"`
	Total            int              `json:"total"`
}
