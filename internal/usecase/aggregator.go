package usecase

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/metrics"
	"go.uber.org/zap"
)

// SpatialAggregator считает точки инвентаря по областям слоя
type SpatialAggregator struct {
	tieBreak domain.TieBreak
	logger   *zap.Logger
}

// NewSpatialAggregator создает новый экземпляр SpatialAggregator
func NewSpatialAggregator(tieBreak domain.TieBreak, logger *zap.Logger) *SpatialAggregator {
	if tieBreak == "" {
		tieBreak = domain.TieBreakExclude
	}
	return &SpatialAggregator{tieBreak: tieBreak, logger: logger}
}

// Aggregate возвращает счетчик для каждой области слоя (в том числе нулевой).
// Точка на границе полигона считается внутри. Точка вне всех областей идет в Unmatched,
// точка в нескольких областях - по политике tieBreak.
func (a *SpatialAggregator) Aggregate(layer domain.BoundaryLayer, points []orb.Point) domain.AggregateCount {
	result := domain.AggregateCount{
		Layer:  layer.Kind,
		Counts: make([]domain.AreaCount, len(layer.Areas)),
	}
	for i, area := range layer.Areas {
		result.Counts[i] = domain.AreaCount{AreaID: area.ID}
	}

	for _, p := range points {
		first, hits := -1, 0
		for i := range layer.Areas {
			if !containsPoint(layer.Areas[i], p) {
				continue
			}
			if first < 0 {
				first = i
			}
			hits++
			if a.tieBreak == domain.TieBreakFirst {
				break
			}
		}

		switch {
		case hits == 0:
			result.Unmatched++
		case hits > 1 && a.tieBreak == domain.TieBreakExclude:
			result.Ambiguous++
		default:
			result.Counts[first].Count++
			result.Matched++
		}
	}

	for i, c := range result.Counts {
		if i == 0 || c.Count < result.Min {
			result.Min = c.Count
		}
		if i == 0 || c.Count > result.Max {
			result.Max = c.Count
		}
	}

	if result.Unmatched > 0 {
		metrics.UnassignedPointsTotal.WithLabelValues(string(layer.Kind), "outside").Add(float64(result.Unmatched))
	}
	if result.Ambiguous > 0 {
		metrics.UnassignedPointsTotal.WithLabelValues(string(layer.Kind), "ambiguous").Add(float64(result.Ambiguous))
	}

	a.logger.Debug("Layer aggregated",
		zap.String("layer", string(layer.Kind)),
		zap.Int("areas", len(layer.Areas)),
		zap.Int("matched", result.Matched),
		zap.Int("unmatched", result.Unmatched),
		zap.Int("ambiguous", result.Ambiguous))

	return result
}

// AggregateInventory считает точки всех записей инвентаря
func (a *SpatialAggregator) AggregateInventory(layer domain.BoundaryLayer, inv domain.Inventory) domain.AggregateCount {
	points := make([]orb.Point, len(inv.Records))
	for i, r := range inv.Records {
		points[i] = r.Point
	}
	return a.Aggregate(layer, points)
}

func containsPoint(area domain.Area, p orb.Point) bool {
	if !area.Bound.Contains(p) {
		return false
	}
	switch g := area.Geometry.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	default:
		return false
	}
}
