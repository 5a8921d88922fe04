package usecase_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/usecase"
)

var titleTime = time.Date(2020, 9, 8, 19, 0, 0, 0, time.UTC)

func TestFigureTitle(t *testing.T) {
	assert.Equal(t, "Number of scooters by ward (Tue Sep  8 19:00:00 2020 UTC)", usecase.FigureTitle(domain.LayerWard, titleTime))
	assert.Equal(t, "Number of scooters by ZIP code (Tue Sep  8 19:00:00 2020 UTC)", usecase.FigureTitle(domain.LayerZip, titleTime))
	assert.Equal(t, "Number of scooters by community area (Tue Sep  8 19:00:00 2020 UTC)", usecase.FigureTitle(domain.LayerCommunity, titleTime))
}

func TestChoroplethBuilder_Build(t *testing.T) {
	layer := domain.BoundaryLayer{
		Kind: domain.LayerWard,
		Areas: []domain.Area{
			area("5", square(0, 0, 1)),
			area("12", square(1, 0, 1)),
		},
	}
	layer.Areas[0].Properties["ward"] = "5"
	counts := domain.AggregateCount{
		Layer:  domain.LayerWard,
		Counts: []domain.AreaCount{{AreaID: "5", Count: 3}, {AreaID: "12", Count: 0}},
	}

	fig := usecase.NewChoroplethBuilder().Build(layer, counts, titleTime)

	require.Len(t, fig.Data, 1)
	trace := fig.Data[0]
	assert.Equal(t, "choropleth", trace.Type)
	assert.Equal(t, []string{"WARD 5", "WARD 12"}, trace.Locations)
	assert.Equal(t, []float64{3, 0}, trace.Z)
	assert.Equal(t, usecase.FeatureIDKey, trace.FeatureIDKey)
	assert.Equal(t, "Blues", trace.ColorScale)
	assert.Equal(t, "white", trace.Marker.Line.Color)
	assert.Equal(t, "Number of scooters", trace.ColorBar.Title.Text)
	assert.Equal(t, "locations", fig.Layout.Geo.FitBounds)
	assert.False(t, fig.Layout.Geo.Visible)

	require.Len(t, trace.GeoJSON.Features, 2)
	for i, f := range trace.GeoJSON.Features {
		assert.Equal(t, trace.Locations[i], f.Properties["locations"])
	}
	assert.Equal(t, "5", trace.GeoJSON.Features[0].Properties["ward"])
	assert.NotContains(t, layer.Areas[0].Properties, "locations", "source properties must not change")
}

func TestChoroplethBuilder_CommunityNamesVerbatim(t *testing.T) {
	layer := domain.BoundaryLayer{
		Kind:  domain.LayerCommunity,
		Areas: []domain.Area{area("LOOP", square(0, 0, 1))},
	}

	fig := usecase.NewChoroplethBuilder().Build(layer, domain.AggregateCount{}, titleTime)

	assert.Equal(t, []string{"LOOP"}, fig.Data[0].Locations)
	assert.Equal(t, []float64{0}, fig.Data[0].Z)
}

func TestChoropleth_OnePointRoundTrip(t *testing.T) {
	layer := domain.BoundaryLayer{
		Kind: domain.LayerZip,
		Areas: []domain.Area{
			area("60601", square(-87.63, 41.88, 0.01)),
			area("60602", square(-87.62, 41.88, 0.01)),
		},
	}

	counts := usecase.NewSpatialAggregator(domain.TieBreakExclude, zap.NewNop()).
		Aggregate(layer, []orb.Point{{-87.625, 41.885}})
	fig := usecase.NewChoroplethBuilder().Build(layer, counts, titleTime)

	body, err := json.Marshal(fig)
	require.NoError(t, err)

	var decoded struct {
		Data []struct {
			Locations    []string  `json:"locations"`
			Z            []float64 `json:"z"`
			FeatureIDKey string    `json:"featureidkey"`
			GeoJSON      struct {
				Features []struct {
					Properties map[string]interface{} `json:"properties"`
				} `json:"features"`
			} `json:"geojson"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))

	trace := decoded.Data[0]
	assert.Equal(t, "properties.locations", trace.FeatureIDKey)
	assert.Equal(t, []string{"ZIP 60601", "ZIP 60602"}, trace.Locations)
	assert.Equal(t, []float64{1, 0}, trace.Z)
	assert.Equal(t, "ZIP 60601", trace.GeoJSON.Features[0].Properties["locations"])
}
