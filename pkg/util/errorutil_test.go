package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestMapErrorNilStaysNil(t *testing.T) {
	// a typed-nil *DomainError would make the interface non-nil and turn
	// every successful call into a reported failure
	assert.NoError(t, MapError(nil))
}

func TestToDomainErrorPassesThrough(t *testing.T) {
	orig := NewForbidden("no access")
	mapped := ToDomainError(orig)
	assert.Equal(t, "FORBIDDEN", mapped.Code)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestToDomainErrorWrapsMissingRows(t *testing.T) {
	mapped := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	outer := NewInternalError(inner)
	require.True(t, errors.Is(outer, inner))
}

func TestValidationErrorDetails(t *testing.T) {
	err := NewValidationError("bad input", map[string]any{"title": "required"})
	mapped := ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, "required", mapped.Details["title"])
}
