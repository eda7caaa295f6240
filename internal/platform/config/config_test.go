package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.Set("PGSQL_URL", "postgres://localhost/fintrack")
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, 6*time.Hour, cfg.RateSyncInterval)
	assert.Equal(t, time.Second, cfg.MarketDataCallDelay)
	assert.Equal(t, "$.rates", cfg.RateProviderRatesPath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.SupportedCurrencies)
}

func TestFromViper_ParsesListsAndDurations(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"SUPPORTED_CURRENCIES": "eur, gbp ,JPY,",
		"BASE_CURRENCY":        "eur",
		"RATE_SYNC_INTERVAL":   "30m",
		"JWT_EXPIRY_DURATION":  "not-a-duration",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"EUR", "GBP", "JPY"}, cfg.SupportedCurrencies)
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.Equal(t, 30*time.Minute, cfg.RateSyncInterval)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}

func TestFromViper_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"bad base currency", map[string]any{"BASE_CURRENCY": "US"}},
		{"unknown storage", map[string]any{"STORAGE_DRIVER": "mongo"}},
		{"postgres without url", map[string]any{"PGSQL_URL": ""}},
		{"file provider without file", map[string]any{"RATE_PROVIDER": "file"}},
		{"short jwt secret", map[string]any{"JWT_SECRET": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newTestViper(tt.overrides))
			assert.Error(t, err)
		})
	}
}

func TestFromViper_MemoryDriverNeedsNoDatabase(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{"STORAGE_DRIVER": "memory", "PGSQL_URL": ""}))
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
}
