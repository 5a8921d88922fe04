package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetails(t *testing.T) {
	err := ErrInvalidLayer.WithDetails(map[string]interface{}{"layer": "county"})

	assert.Equal(t, "county", err.Details["layer"])
	assert.Empty(t, ErrInvalidLayer.Details)
	assert.True(t, stderrors.Is(err, ErrInvalidLayer))
	assert.False(t, stderrors.Is(err, ErrInvalidRequest))
}

func TestAppError_Wrapped(t *testing.T) {
	err := fmt.Errorf("refresh: %w", ErrRefreshInProgress)

	var appErr *AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, "REFRESH_IN_PROGRESS: Pipeline refresh already running", appErr.Error())
}
