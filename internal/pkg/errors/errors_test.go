package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Wrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrDatabaseError.Wrap(cause)

	assert.True(t, stderrors.Is(err, ErrDatabaseError))
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, ErrDatabaseError.Unwrap(), "sentinel must stay untouched")
}

func TestAppError_WithDetails(t *testing.T) {
	err := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "radius"})

	assert.Equal(t, "radius", err.Details["field"])
	assert.Empty(t, ErrInvalidRequest.Details)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("list places: %w", ErrInvalidCoordinates)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "INVALID_COORDINATES", appErr.Code)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
