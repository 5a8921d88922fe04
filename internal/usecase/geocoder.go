package usecase

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/metrics"
	"github.com/scooter-map/internal/pkg/utils"
	"go.uber.org/zap"
)

// Geocoder превращает сырые записи в точки (lon, lat) в EPSG:4326
type Geocoder struct {
	logger *zap.Logger
}

// NewGeocoder создает новый экземпляр Geocoder
func NewGeocoder(logger *zap.Logger) *Geocoder {
	return &Geocoder{logger: logger}
}

// Geocode приводит lat/lon к числам и строит точки.
// Записи с нечисловыми, нечисловыми после разбора или вне диапазона координатами отбрасываются и считаются в Dropped.
func (g *Geocoder) Geocode(selected domain.SelectedSnapshot) domain.GeocodedTable {
	table := domain.GeocodedTable{
		Provider:   selected.Provider,
		CapturedAt: selected.CapturedAt,
		CRS:        domain.CRS,
		Records:    make([]domain.GeocodedRecord, 0, len(selected.Vehicles)),
	}

	for _, v := range selected.Vehicles {
		lat, okLat := toFloat(v.Lat)
		lon, okLon := toFloat(v.Lon)
		if !okLat || !okLon || !utils.ValidateCoordinates(lat, lon) {
			table.Dropped++
			continue
		}

		table.Records = append(table.Records, domain.GeocodedRecord{
			ID:         v.ID,
			Provider:   selected.Provider,
			Point:      orb.Point{lon, lat},
			Attributes: v.Attributes,
		})
	}

	if table.Dropped > 0 {
		metrics.RecordsDroppedTotal.WithLabelValues(selected.Provider).Add(float64(table.Dropped))
		g.logger.Warn("Dropped records with invalid coordinates",
			zap.String("provider", selected.Provider),
			zap.Int("dropped", table.Dropped),
			zap.Int("kept", len(table.Records)))
	}

	return table
}

// toFloat принимает число, json.Number или числовую строку
func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
