package apperr_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"quickcart/internal/apperr"
)

func TestKindToStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   apperr.Kind
		status int
	}{
		{apperr.Validation("bad"), apperr.KindValidation, http.StatusBadRequest},
		{apperr.NotFound("missing"), apperr.KindNotFound, http.StatusNotFound},
		{apperr.InsufficientStock("insufficient stock"), apperr.KindInsufficientStock, http.StatusConflict},
		{apperr.Unauthorized(), apperr.KindUnauthorized, http.StatusUnauthorized},
		{apperr.Forbidden(), apperr.KindForbidden, http.StatusForbidden},
		{apperr.Conflict("dup"), apperr.KindConflict, http.StatusConflict},
		{apperr.Internal(), apperr.KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		e, ok := apperr.As(tc.err)
		if assert.True(t, ok) {
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.status, e.Status)
		}
	}
}

func TestAsUnwrapsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("place order: %w", apperr.NotFound("product not found"))

	e, ok := apperr.As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)

	assert.True(t, apperr.IsKind(wrapped, apperr.KindNotFound))
	assert.False(t, apperr.IsKind(wrapped, apperr.KindConflict))
}

func TestAsPlainError(t *testing.T) {
	_, ok := apperr.As(assert.AnError)
	assert.False(t, ok)
}
