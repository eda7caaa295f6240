package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker(t *testing.T) {
	assert.Equal(t, "AAPL.US", Ticker("aapl.us", domain.AssetStock, "USD"))
	assert.Equal(t, "BTC-EUR.CC", Ticker("btc", domain.AssetCrypto, "EUR"))
}

func TestGetAssetPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("api_token"))
		assert.Equal(t, "json", r.URL.Query().Get("fmt"))
		switch r.URL.Path {
		case "/real-time/BTC-USD.CC":
			_, _ = w.Write([]byte(`{"code":"BTC-USD.CC","close":64250.5}`))
		case "/real-time/DELISTED":
			_, _ = w.Write([]byte(`{"code":"DELISTED","close":"NA"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(srv.URL+"/", "secret", time.Second)

	price, err := client.GetAssetPrice(context.Background(), "BTC", domain.AssetCrypto, "USD")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("64250.5")))

	_, err = client.GetAssetPrice(context.Background(), "DELISTED", domain.AssetStock, "USD")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)

	_, err = client.GetAssetPrice(context.Background(), "MISSING", domain.AssetStock, "USD")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestGetAssetPrice_TransportErrorHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	defer srv.Close()

	client := New(srv.URL, "SUPERSECRETKEY", time.Second)
	_, err := client.GetAssetPrice(context.Background(), "AAPL", domain.AssetStock, "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.NotContains(t, err.Error(), "SUPERSECRETKEY")
	assert.NotContains(t, err.Error(), "api_token")
}
