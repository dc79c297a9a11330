package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	shared_dtos "github.com/staynest/mono-repo/backend/shared/go-dtos"
	"github.com/staynest/mono-repo/backend/shared/go-middleware"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// formatValidationErrors converts validator errors into the public detail list.
func formatValidationErrors(errs validator.ValidationErrors) []shared_dtos.ValidationErrorDetail {
	details := make([]shared_dtos.ValidationErrorDetail, 0, len(errs))
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field '%s' must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		case "uuid":
			message = fmt.Sprintf("Field '%s' must be a valid id", err.Field())
		case "datetime":
			message = fmt.Sprintf("Field '%s' must be a date in YYYY-MM-DD format", err.Field())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, shared_dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}

// validateRequest writes a 400 and returns false when req fails validation.
func validateRequest(w http.ResponseWriter, v *validator.Validate, req any) bool {
	err := v.Struct(req)
	if err == nil {
		return true
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed",
			formatValidationErrors(validationErrs), err)
	} else {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
	}
	return false
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return false
	}
	return true
}

// pathUUID reads a mux path variable that must be a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err)
		return uuid.Nil, false
	}
	return id, true
}

func actorID(r *http.Request) string {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}

// parseMultipart bounds the body and parses the form. An oversized body is
// reported with the photo size message since photos dominate the payload.
func parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxMultipartBodyBytes)
	err := r.ParseMultipartForm(constants.MaxMultipartMemory)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, constants.MsgPhotosTooLarge, nil, err)
		return false
	}
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
	return false
}

// readUploads loads every file sent under field.
func readUploads(form *multipart.Form, field string) ([]dtos.UploadedPhoto, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[field]
	out := make([]dtos.UploadedPhoto, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		out = append(out, dtos.UploadedPhoto{Filename: fh.Filename, Data: data})
	}
	return out, nil
}

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formInt returns 0 for a missing or malformed number so the validator
// reports it.
func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(formString(r, key))
	if err != nil {
		return 0
	}
	return n
}

// formBool accepts HTML checkbox "on" as well as strconv booleans.
func formBool(r *http.Request, key string) bool {
	v := formString(r, key)
	if strings.EqualFold(v, "on") {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
