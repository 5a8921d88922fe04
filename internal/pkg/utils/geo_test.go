package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"chicago", 41.8781, -87.6298, true},
		{"corners", -90, 180, true},
		{"lat out of range", 91, 0, false},
		{"lon out of range", 0, -180.5, false},
		{"nan", math.NaN(), 0, false},
		{"inf", 0, math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCoordinates(tt.lat, tt.lon))
		})
	}
}
