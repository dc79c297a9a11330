// backend/shared/go-utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors shared by repositories and services.
var (
	ErrInvalidEmail = errors.New("invalid_email")
	ErrEmailExists  = errors.New("email_exists")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// A lifecycle transition was requested from a status that does not allow it.
	ErrWrongStatus = errors.New("wrong_status")

	// For external service failures (Stripe, SendGrid, photo storage)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound builds the 404 AppError used when a referenced record does not exist.
func NotFound(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: message, Err: err}
}

// Validation builds a 400 AppError carrying a user-facing validation message.
func Validation(message string, details any) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: message, Details: details}
}

// Conflict builds a 409 AppError.
func Conflict(code, message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: code, Message: message, Err: err}
}

// Internal wraps an unexpected failure behind a generic public message.
func Internal(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message, Err: err}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
