package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/scooter-map/internal/domain"
)

// SortByTime возвращает копию снимков, отсортированную по возрастанию last_updated.
// Снимки с одинаковым временем сохраняют исходный порядок.
func SortByTime(snapshots []domain.Snapshot) []domain.Snapshot {
	sorted := slices.Clone(snapshots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUpdated < sorted[j].LastUpdated
	})
	return sorted
}

// SnapshotSelector выбирает самый ранний снимок окна, в котором есть транспорт
type SnapshotSelector struct {
	vehiclesKey string
}

// NewSnapshotSelector создает селектор; vehiclesKey - ключ массива транспорта в data (обычно "bikes")
func NewSnapshotSelector(vehiclesKey string) *SnapshotSelector {
	if vehiclesKey == "" {
		vehiclesKey = "bikes"
	}
	return &SnapshotSelector{vehiclesKey: vehiclesKey}
}

// Select сортирует снимки и возвращает первый с непустым data.<vehiclesKey>.
// Снимки без data или с пустым массивом пропускаются. Если подходящих нет - ErrNoUsableSnapshot.
func (s *SnapshotSelector) Select(provider string, snapshots []domain.Snapshot) (domain.SelectedSnapshot, error) {
	for _, snap := range SortByTime(snapshots) {
		raw, ok := snap.Data[s.vehiclesKey]
		if !ok {
			continue
		}

		vehicles, err := decodeVehicles(raw)
		if err != nil || len(vehicles) == 0 {
			continue
		}

		return domain.SelectedSnapshot{
			Provider:   provider,
			Key:        snap.Key,
			CapturedAt: snap.CapturedAt(),
			Vehicles:   vehicles,
		}, nil
	}

	return domain.SelectedSnapshot{}, fmt.Errorf("%w: %s (%d snapshots)", domain.ErrNoUsableSnapshot, provider, len(snapshots))
}

// decodeVehicles разбирает массив транспорта. Числа сохраняются как json.Number,
// чтобы координаты не теряли точность до геокодирования.
func decodeVehicles(raw json.RawMessage) ([]domain.VehicleRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var items []map[string]interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}

	records := make([]domain.VehicleRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		lat := item["lat"]
		lon := item["lon"]
		delete(item, "lat")
		delete(item, "lon")

		records = append(records, domain.VehicleRecord{
			ID:         vehicleID(item),
			Lat:        lat,
			Lon:        lon,
			Attributes: item,
		})
	}
	return records, nil
}

func vehicleID(item map[string]interface{}) string {
	for _, key := range []string{"bike_id", "vehicle_id", "id"} {
		if v, ok := item[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
