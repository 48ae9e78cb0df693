package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneKeepsCodeForErrorsIs(t *testing.T) {
	err := Clone(ErrInvalidInput, "month must be YYYY-MM")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "month must be YYYY-MM", err.Error())
}

func TestDataSourceWrapsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := DataSource(cause, "")
	require.True(t, errors.Is(err, ErrDataSource))
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	err := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Nil(t, FromError(nil))

	wrapped := fmt.Errorf("outer: %w", Clone(ErrNotFound, "student not found"))
	assert.Equal(t, ErrNotFound.Code, FromError(wrapped).Code)
}
