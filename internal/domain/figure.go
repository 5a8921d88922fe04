package domain

import "github.com/paulmach/orb/geojson"

// Figure - choropleth в формате Plotly (data + layout), рендерится на клиенте
type Figure struct {
	Data   []ChoroplethTrace `json:"data"`
	Layout FigureLayout      `json:"layout"`
}

type ChoroplethTrace struct {
	Type           string                     `json:"type"`
	Locations      []string                   `json:"locations"`
	Z              []float64                  `json:"z"`
	GeoJSON        *geojson.FeatureCollection `json:"geojson"`
	FeatureIDKey   string                     `json:"featureidkey"`
	ColorScale     string                     `json:"colorscale"`
	AutoColorScale bool                       `json:"autocolorscale"`
	Marker         TraceMarker                `json:"marker"`
	ColorBar       ColorBar                   `json:"colorbar"`
}

type TraceMarker struct {
	Line MarkerLine `json:"line"`
}

type MarkerLine struct {
	Color string `json:"color"`
}

type ColorBar struct {
	Title Text `json:"title"`
}

type Text struct {
	Text string `json:"text"`
}

type FigureLayout struct {
	Title Text      `json:"title"`
	Geo   GeoLayout `json:"geo"`
}

type GeoLayout struct {
	FitBounds string `json:"fitbounds"`
	Visible   bool   `json:"visible"`
}
