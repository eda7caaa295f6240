package ratesapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRates_Success(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"result":"success","time_last_update_unix":1735689600,"rates":{"USD":1,"EUR":0.92,"JPY":"150.5"}}`)
	client, err := New(Config{URLTemplate: srv.URL + "/latest/{base}", TimestampPath: "$.time_last_update_unix"})
	require.NoError(t, err)

	snap, err := client.FetchRates(context.Background(), "USD")
	require.NoError(t, err)

	assert.Equal(t, "USD", snap.Base)
	assert.Equal(t, time.Unix(1735689600, 0).UTC(), snap.AsOf)
	require.Len(t, snap.Rates, 3)
	// sorted by code
	assert.Equal(t, "EUR", snap.Rates[0].CurrencyCode)
	assert.True(t, snap.Rates[0].Rate.Equal(decimal.RequireFromString("0.92")))
	assert.Equal(t, "JPY", snap.Rates[1].CurrencyCode)
	assert.True(t, snap.Rates[1].Rate.Equal(decimal.RequireFromString("150.5")))
}

func TestFetchRates_NestedPath(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"data":{"quotes":{"gbp":0.79}}}`)
	client, err := New(Config{URLTemplate: srv.URL + "/latest/{base}", RatesPath: "$.data.quotes"})
	require.NoError(t, err)

	snap, err := client.FetchRates(context.Background(), "USD")
	require.NoError(t, err)
	require.Len(t, snap.Rates, 1)
	assert.Equal(t, "GBP", snap.Rates[0].CurrencyCode)
}

func TestFetchRates_Failures(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed json", http.StatusOK, `{"rates":`},
		{"missing path", http.StatusOK, `{"result":"error"}`},
		{"rates not an object", http.StatusOK, `{"rates":[1,2]}`},
		{"non numeric rate", http.StatusOK, `{"rates":{"EUR":"abc"}}`},
		{"zero rate", http.StatusOK, `{"rates":{"EUR":0}}`},
		{"negative rate", http.StatusOK, `{"rates":{"EUR":-1.2}}`},
		{"bad code", http.StatusOK, `{"rates":{"EURO":1.2}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, tc.status, tc.body)
			client, err := New(Config{URLTemplate: srv.URL + "/latest/{base}"})
			require.NoError(t, err)

			_, err = client.FetchRates(context.Background(), "USD")
			assert.ErrorIs(t, err, apperrors.ErrExternalService)
		})
	}
}

func TestFetchRates_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(Config{URLTemplate: url + "/latest/{base}?app_id=SECRETAPPID", Timeout: time.Second})
	require.NoError(t, err)
	_, err = client.FetchRates(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.NotContains(t, err.Error(), "SECRETAPPID")
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
