package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypesMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{UnavailableError("store down", nil), http.StatusServiceUnavailable},
		{InternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), "type %s", tt.err.Type)
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := UnavailableError("store down", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithFieldAccumulatesContext(t *testing.T) {
	err := NotFoundError("article not found").
		WithField("article_id", 42).
		WithField("group", "programming")

	assert.Equal(t, 42, err.Context["article_id"])
	assert.Equal(t, "programming", err.Context["group"])
}

func TestAsStructuredErrorPassesThrough(t *testing.T) {
	original := ValidationError("bad input")

	wrapped := fmt.Errorf("handler: %w", original)
	assert.Same(t, original, AsStructuredError(wrapped))
}

func TestAsStructuredErrorWrapsUnknownErrors(t *testing.T) {
	err := AsStructuredError(errors.New("surprise"))

	require.NotNil(t, err)
	assert.Equal(t, TypeInternal, err.Type)
}

func TestAsStructuredErrorNil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}

func TestToResponseOmitsEmptyContext(t *testing.T) {
	resp := ValidationError("bad input").ToResponse()

	assert.Equal(t, "bad input", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
}
