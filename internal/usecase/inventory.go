package usecase

import (
	"sort"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/metrics"
)

// InventoryBuilder объединяет таблицы провайдеров в одну
type InventoryBuilder struct{}

func NewInventoryBuilder() *InventoryBuilder {
	return &InventoryBuilder{}
}

// Build склеивает таблицы в порядке провайдеров.
// Колонки итога - пересечение колонок таблиц, в которых есть записи; остальные попадают в DroppedColumns.
// Пустые таблицы не сужают набор колонок.
func (b *InventoryBuilder) Build(tables []domain.GeocodedTable) domain.Inventory {
	inv := domain.Inventory{
		Providers:        make([]string, 0, len(tables)),
		Columns:          []string{},
		DroppedColumns:   []string{},
		CountsByProvider: make(map[string]int, len(tables)),
	}

	var common map[string]struct{}
	all := make(map[string]struct{})

	for _, t := range tables {
		inv.Providers = append(inv.Providers, t.Provider)
		inv.CountsByProvider[t.Provider] += len(t.Records)
		metrics.InventoryVehicles.WithLabelValues(t.Provider).Set(float64(len(t.Records)))

		if len(t.Records) == 0 {
			continue
		}

		cols := t.Columns()
		for c := range cols {
			all[c] = struct{}{}
		}
		if common == nil {
			common = cols
			continue
		}
		for c := range common {
			if _, ok := cols[c]; !ok {
				delete(common, c)
			}
		}
	}

	records := make([]domain.GeocodedRecord, 0)
	for _, t := range tables {
		for _, r := range t.Records {
			records = append(records, projectRecord(r, common))
		}
	}
	inv.Records = records
	inv.Total = len(records)

	for c := range all {
		if _, ok := common[c]; ok {
			inv.Columns = append(inv.Columns, c)
		} else {
			inv.DroppedColumns = append(inv.DroppedColumns, c)
		}
	}
	sort.Strings(inv.Columns)
	sort.Strings(inv.DroppedColumns)

	return inv
}

func projectRecord(r domain.GeocodedRecord, columns map[string]struct{}) domain.GeocodedRecord {
	attrs := make(map[string]interface{}, len(columns))
	for k, v := range r.Attributes {
		if _, ok := columns[k]; ok {
			attrs[k] = v
		}
	}
	r.Attributes = attrs
	return r
}
