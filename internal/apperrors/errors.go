package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not touch the resource.
var ErrForbidden = errors.New("forbidden")

// ErrCurrencyMismatch indicates arithmetic across two different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrExternalService indicates that an upstream provider failed or returned unusable data.
var ErrExternalService = errors.New("external service error")

// ErrRateNotFound is the external-service variant raised when no rate is known for a currency.
var ErrRateNotFound = fmt.Errorf("%w: exchange rate not found", ErrExternalService)

// ErrInvalidRate indicates a zero or negative exchange rate.
var ErrInvalidRate = errors.New("invalid exchange rate")

// ErrSyncInProgress indicates a rate sync was requested while another one is running.
var ErrSyncInProgress = errors.New("rate sync already in progress")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewExternalServiceError wraps ErrExternalService, keeping the upstream cause in the chain.
// Transport errors lose their request URL, which may carry credentials.
func NewExternalServiceError(message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrExternalService, message)
	}
	return fmt.Errorf("%w: %s: %w", ErrExternalService, message, withoutURL(cause))
}

func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// StatusCode maps an error chain onto the HTTP status the API reports for it.
func StatusCode(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrCurrencyMismatch), errors.Is(err, ErrRateNotFound), errors.Is(err, ErrInvalidRate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrExternalService):
		return http.StatusBadGateway
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
