package domain

import (
	"encoding/json"
	"time"
)

// Provider - оператор флота самокатов
type Provider struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Snapshot - один снимок состояния флота провайдера из объектного хранилища.
// LastUpdated = 0, если в документе нет last_updated или его нельзя разобрать.
type Snapshot struct {
	Provider    string                     `json:"provider"`
	Key         string                     `json:"key"`
	LastUpdated int64                      `json:"last_updated"`
	Data        map[string]json.RawMessage `json:"-"`
}

// CapturedAt возвращает время снимка в UTC
func (s Snapshot) CapturedAt() time.Time {
	return time.Unix(s.LastUpdated, 0).UTC()
}

// SelectedSnapshot - первый по времени снимок провайдера, содержащий транспорт
type SelectedSnapshot struct {
	Provider   string
	Key        string
	CapturedAt time.Time
	Vehicles   []VehicleRecord
}

// VehicleRecord - запись о самокате/велосипеде как она пришла от провайдера.
// Lat/Lon хранятся в исходном виде (строка или число), приводятся при геокодировании.
type VehicleRecord struct {
	ID         string
	Lat        interface{}
	Lon        interface{}
	Attributes map[string]interface{}
}
