package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := New(CodeNotFound, "booking", "Booking not found", http.StatusNotFound)
	assert.Equal(t, "[booking:NOT_FOUND] Booking not found", err.Error())

	wrapped := Wrap(errors.New("record not found"), CodeNotFound, "booking", "Booking not found", http.StatusNotFound)
	assert.Contains(t, wrapped.Error(), "record not found")
}

func TestMarshalHidesInternals(t *testing.T) {
	inner := errors.New("pq: connection refused")
	appErr := DatabaseError(inner).WithDetails(map[string]string{"hint": "try later"})

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.NotContains(t, string(data), "connection refused")
	assert.Equal(t, "storage", out["domain"])
	assert.NotContains(t, out, "HTTPCode")
}

func TestUnwrapAndIs(t *testing.T) {
	inner := errors.New("sentinel")
	appErr := Wrap(inner, CodeDatabaseError, "storage", "Database error", http.StatusInternalServerError)

	assert.True(t, Is(appErr, inner))

	var target *AppError
	assert.True(t, As(appErr, &target))
	assert.Equal(t, CodeDatabaseError, target.Code)
}

func TestDomainErrorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusConflict, ErrSlotTaken.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrInvalidTransition("booking", "nope").HTTPCode)
	assert.Equal(t, http.StatusNotFound, ErrBookingNotFound.HTTPCode)
	assert.Equal(t, http.StatusForbidden, ErrNotAParticipant.HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrEmailAlreadyExists.HTTPCode)
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrBookingNotFound)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
