package apperrors_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestRateNotFoundIsExternalServiceVariant(t *testing.T) {
	err := fmt.Errorf("convert XYZ: %w", apperrors.ErrRateNotFound)
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.False(t, errors.Is(apperrors.ErrExternalService, apperrors.ErrRateNotFound))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", apperrors.NewValidationError("bad code"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("income"), http.StatusNotFound},
		{"duplicate", fmt.Errorf("%w: username", apperrors.ErrDuplicate), http.StatusConflict},
		{"mismatch", fmt.Errorf("%w: USD vs EUR", apperrors.ErrCurrencyMismatch), http.StatusUnprocessableEntity},
		{"rate not found", fmt.Errorf("%w: XYZ", apperrors.ErrRateNotFound), http.StatusUnprocessableEntity},
		{"invalid rate", apperrors.ErrInvalidRate, http.StatusUnprocessableEntity},
		{"external", apperrors.NewExternalServiceError("provider down", errors.New("dial tcp")), http.StatusBadGateway},
		{"app error", apperrors.NewAppError(http.StatusServiceUnavailable, "db down", nil), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.StatusCode(tt.err))
		})
	}
}

func TestExternalServiceErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.NewExternalServiceError("fetch rates", cause)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fetch rates")
}

func TestNewExternalServiceError_DropsRequestURL(t *testing.T) {
	cause := &url.Error{Op: "Get", URL: "https://quotes.example/real-time/AAPL?api_token=SECRET", Err: io.EOF}
	err := apperrors.NewExternalServiceError("quote for AAPL", fmt.Errorf("fetch: %w", cause))

	assert.NotContains(t, err.Error(), "SECRET")
	assert.NotContains(t, err.Error(), "quotes.example")
	assert.Contains(t, err.Error(), "Get request: EOF")
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
