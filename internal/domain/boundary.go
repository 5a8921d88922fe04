package domain

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// LayerKind - уровень административного деления
type LayerKind string

const (
	LayerZip       LayerKind = "zip"
	LayerWard      LayerKind = "ward"
	LayerCommunity LayerKind = "community"
)

// AllLayers в порядке вкладок дашборда
func AllLayers() []LayerKind {
	return []LayerKind{LayerWard, LayerZip, LayerCommunity}
}

// ParseLayerKind разбирает имя слоя без учета регистра
func ParseLayerKind(s string) (LayerKind, error) {
	switch k := LayerKind(strings.ToLower(strings.TrimSpace(s))); k {
	case LayerZip, LayerWard, LayerCommunity:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayer, s)
	}
}

// IDProperty - свойство GeoJSON фичи с идентификатором области
func (k LayerKind) IDProperty() string {
	return string(k)
}

// Label - подпись вкладки
func (k LayerKind) Label() string {
	switch k {
	case LayerZip:
		return "ZIP Code"
	case LayerWard:
		return "Ward"
	case LayerCommunity:
		return "Community Area"
	default:
		return string(k)
	}
}

// TitleFragment используется в заголовке карты "Number of scooters by ..."
func (k LayerKind) TitleFragment() string {
	switch k {
	case LayerZip:
		return "ZIP code"
	case LayerCommunity:
		return "community area"
	default:
		return string(k)
	}
}

// LocationKey строит ключ, общий для полигонов и таблицы счетчиков.
// Номера ZIP и округов пересекаются по форме ("5" может быть и тем и другим),
// поэтому к ним добавляется префикс слоя. Названия community area уникальны и идут как есть.
func (k LayerKind) LocationKey(id string) string {
	switch k {
	case LayerZip, LayerWard:
		return strings.ToUpper(string(k)) + " " + id
	default:
		return id
	}
}

// Area - один полигон слоя (Polygon или MultiPolygon, WGS84)
type Area struct {
	ID         string
	Geometry   orb.Geometry
	Bound      orb.Bound
	Properties map[string]interface{}
}

// BoundaryLayer - неизменяемый набор областей, загружается один раз за прогон
type BoundaryLayer struct {
	Kind  LayerKind
	Areas []Area
}
