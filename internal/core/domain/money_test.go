package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string, code string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount, code)
	require.NoError(t, err)
	return m
}

func TestNewMoney_Validation(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid", "USD", false},
		{"unknown but well formed", "XYZ", false},
		{"lowercase", "usd", true},
		{"too short", "US", true},
		{"too long", "USDT", true},
		{"digits", "U5D", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewMoney(decimal.NewFromInt(10), tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewMoneyFromFloat_RejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := domain.NewMoneyFromFloat(f, "USD")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
	m, err := domain.NewMoneyFromFloat(12.5, "EUR")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "EUR", m.Currency())
}

func TestNewMoneyFromString_RejectsGarbage(t *testing.T) {
	_, err := domain.NewMoneyFromString("twelve", "USD")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMoney_AddSub(t *testing.T) {
	a := mustMoney(t, "10.25", "USD")
	b := mustMoney(t, "4.75", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(mustMoney(t, "15", "USD")))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(mustMoney(t, "5.5", "USD")))

	// operands are untouched
	assert.True(t, a.Amount().Equal(decimal.RequireFromString("10.25")))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd := mustMoney(t, "1", "USD")
	eur := mustMoney(t, "1", "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
	_, err = usd.Sub(eur)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
}

func TestMoney_Equals(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Money
		want bool
	}{
		{"identical", mustMoney(t, "100", "USD"), mustMoney(t, "100", "USD"), true},
		{"within epsilon", mustMoney(t, "100", "USD"), mustMoney(t, "99.99999999999999", "USD"), true},
		{"small within absolute epsilon", mustMoney(t, "0.0000000001", "USD"), mustMoney(t, "0", "USD"), true},
		{"outside epsilon", mustMoney(t, "100", "USD"), mustMoney(t, "100.001", "USD"), false},
		{"different currency", mustMoney(t, "100", "USD"), mustMoney(t, "100", "EUR"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equals(tt.b))
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "$1,234.50", mustMoney(t, "1234.5", "USD").String())
	assert.Equal(t, "12.00 XYZ", mustMoney(t, "12", "XYZ").String())
}

func TestMoney_JSON(t *testing.T) {
	m := mustMoney(t, "42.10", "EUR")
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"42.1","currency":"EUR"}`, string(data))

	var bad domain.Money
	err = json.Unmarshal([]byte(`{"amount":"1","currency":"eu"}`), &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
