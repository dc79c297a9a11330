package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	err := newValidator().Struct(dtos.SignupRequest{Email: "not-an-email", Password: "abc", Role: "OPERATOR"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	byField := map[string]string{}
	for _, d := range formatValidationErrors(verrs) {
		byField[d.Field] = d.Code
	}
	require.Equal(t, map[string]string{
		"name":     "validation_required",
		"email":    "validation_email",
		"password": "validation_min",
		"role":     "validation_oneof",
	}, byField)
}

func TestValidateRequestWrites400(t *testing.T) {
	rec := httptest.NewRecorder()
	ok := validateRequest(rec, newValidator(), dtos.AssignRequest{ApplicationID: "x"})
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"validation_uuid"`)

	rec = httptest.NewRecorder()
	require.True(t, validateRequest(rec, newValidator(), dtos.LoginRequest{Email: "a@b.co", Password: "x"}))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestFormParsing(t *testing.T) {
	form := url.Values{
		"consent": {"on"},
		"flag":    {"true"},
		"count":   {" 4 "},
		"bad":     {"four"},
		"name":    {"  Olive  "},
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.True(t, formBool(r, "consent"))
	require.True(t, formBool(r, "flag"))
	require.False(t, formBool(r, "missing"))
	require.Equal(t, 4, formInt(r, "count"))
	require.Zero(t, formInt(r, "bad"))
	require.Equal(t, "Olive", formString(r, "name"))
}

func TestPathUUIDRejectsGarbage(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := pathUUID(rec, r, "id")
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
