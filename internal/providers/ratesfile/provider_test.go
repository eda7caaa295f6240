package ratesfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_FetchRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: USD\nasOf: 2025-01-31T00:00:00Z\nrates:\n  EUR: 0.92\n  gbp: \"0.79\"\n"), 0o600))

	snap, err := New(path).FetchRates(context.Background(), "USD")
	require.NoError(t, err)
	require.Len(t, snap.Rates, 2)
	assert.Equal(t, "EUR", snap.Rates[0].CurrencyCode)
	assert.True(t, snap.Rates[0].Rate.Equal(decimal.RequireFromString("0.92")))
	assert.Equal(t, "GBP", snap.Rates[1].CurrencyCode)
	assert.Equal(t, 2025, snap.AsOf.Year())
}

func TestParse_Failures(t *testing.T) {
	testCases := map[string]string{
		"wrong base":    "base: EUR\nrates:\n  USD: 1.08\n",
		"negative rate": "base: USD\nrates:\n  EUR: -1\n",
		"not a number":  "base: USD\nrates:\n  EUR: lots\n",
		"bad code":      "base: USD\nrates:\n  EU: 1\n",
		"not yaml":      "base: [USD\n",
	}
	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body), "USD")
			assert.ErrorIs(t, err, apperrors.ErrExternalService)
		})
	}
}

func TestProvider_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yaml")).FetchRates(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
