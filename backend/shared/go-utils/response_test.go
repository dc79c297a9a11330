package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleAppErrorWritesStructuredBody(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, Validation("Check-out must be after check-in.", []string{"check_out"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, ErrCodeValidation, body.Code)
	require.Equal(t, "Check-out must be after check-in.", body.Message)
	require.NotNil(t, body.Details)
}

func TestHandleAppErrorFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, ErrCodeInternal, body.Code)
}

func TestAppErrorUnwraps(t *testing.T) {
	err := Conflict(ErrCodeWrongStatus, "nope", ErrWrongStatus)
	require.ErrorIs(t, err, ErrWrongStatus)
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	require.Equal(t, "10.0.0.1", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "not-an-ip, 203.0.113.9")
	require.Equal(t, "203.0.113.9", ClientIP(r))
}
