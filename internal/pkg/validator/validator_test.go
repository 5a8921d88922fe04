package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type layerRequest struct {
	Layer string `validate:"required,layer"`
}

func TestValidate_Layer(t *testing.T) {
	for _, layer := range []string{"zip", "ward", "community", "WARD"} {
		assert.NoError(t, Validate(layerRequest{Layer: layer}), layer)
	}

	assert.Error(t, Validate(layerRequest{Layer: "county"}))
	assert.Error(t, Validate(layerRequest{}))
}
