package usecase

import (
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/scooter-map/internal/domain"
)

const (
	// FeatureIDKey связывает locations трассы со свойством фичи
	FeatureIDKey      = "properties.locations"
	locationsProperty = "locations"
	colorScale        = "Blues"
	colorBarTitle     = "Number of scooters"
)

// ChoroplethBuilder собирает карту слоя в формате Plotly
type ChoroplethBuilder struct{}

func NewChoroplethBuilder() *ChoroplethBuilder {
	return &ChoroplethBuilder{}
}

// Build строит новую FeatureCollection с properties.locations и трассу с теми же ключами.
// Свойства исходного слоя не изменяются.
func (b *ChoroplethBuilder) Build(layer domain.BoundaryLayer, counts domain.AggregateCount, capturedAt time.Time) domain.Figure {
	byID := counts.AsMap()

	fc := geojson.NewFeatureCollection()
	locations := make([]string, 0, len(layer.Areas))
	z := make([]float64, 0, len(layer.Areas))

	for _, area := range layer.Areas {
		key := layer.Kind.LocationKey(area.ID)

		f := geojson.NewFeature(area.Geometry)
		for k, v := range area.Properties {
			f.Properties[k] = v
		}
		f.Properties[locationsProperty] = key
		fc.Append(f)

		locations = append(locations, key)
		z = append(z, float64(byID[area.ID]))
	}

	return domain.Figure{
		Data: []domain.ChoroplethTrace{{
			Type:           "choropleth",
			Locations:      locations,
			Z:              z,
			GeoJSON:        fc,
			FeatureIDKey:   FeatureIDKey,
			ColorScale:     colorScale,
			AutoColorScale: false,
			Marker:         domain.TraceMarker{Line: domain.MarkerLine{Color: "white"}},
			ColorBar:       domain.ColorBar{Title: domain.Text{Text: colorBarTitle}},
		}},
		Layout: domain.FigureLayout{
			Title: domain.Text{Text: FigureTitle(layer.Kind, capturedAt)},
			Geo:   domain.GeoLayout{FitBounds: "locations", Visible: false},
		},
	}
}

// FigureTitle - "Number of scooters by ward (Tue Sep  8 19:00:00 2020 UTC)"
func FigureTitle(kind domain.LayerKind, capturedAt time.Time) string {
	return fmt.Sprintf("Number of scooters by %s (%s UTC)", kind.TitleFragment(), capturedAt.UTC().Format(time.ANSIC))
}
