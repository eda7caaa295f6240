package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	r, err := domain.NewDateRange(start, end)
	require.NoError(t, err)
	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(end))
	assert.False(t, r.Contains(end.Add(time.Second)))
	assert.Equal(t, 31, r.Days())

	_, err = domain.NewDateRange(end, start)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewDateRange(time.Time{}, end)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMonthOf(t *testing.T) {
	r := domain.MonthOf(time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start())
	assert.True(t, r.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPercentage(t *testing.T) {
	_, err := domain.NewPercentage(decimal.NewFromInt(101))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.NewPercentage(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	p, err := domain.NewPercentage(decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, "40.00%", p.String())

	assert.True(t, domain.PercentageOf(decimal.NewFromInt(1), decimal.NewFromInt(4)).Value().Equal(decimal.NewFromInt(25)))
	assert.True(t, domain.PercentageOf(decimal.NewFromInt(5), decimal.NewFromInt(4)).Value().Equal(decimal.NewFromInt(100)))
	assert.True(t, domain.PercentageOf(decimal.NewFromInt(5), decimal.Zero).Value().IsZero())
}

func TestRecurrence(t *testing.T) {
	base := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	none, err := domain.NewRecurrence("", 0)
	require.NoError(t, err)
	_, ok := none.Next(base)
	assert.False(t, ok)
	assert.False(t, none.IsRecurring())

	weekly, err := domain.NewRecurrence("weekly", 2)
	require.NoError(t, err)
	next, ok := weekly.Next(base)
	assert.True(t, ok)
	assert.Equal(t, base.AddDate(0, 0, 14), next)

	monthly, err := domain.NewRecurrence("MONTHLY", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, monthly.Interval())

	_, err = domain.NewRecurrence("HOURLY", 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.NewRecurrence("DAILY", -3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInvestment_Valuation(t *testing.T) {
	inv := domain.Investment{
		Symbol:        "VWCE",
		AssetType:     domain.AssetETF,
		Quantity:      decimal.NewFromInt(10),
		PurchasePrice: mustMoney(t, "100", "EUR"),
		CurrentPrice:  mustMoney(t, "100", "EUR"),
		PurchasedOn:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	repriced, err := inv.WithPrice(mustMoney(t, "112.5", "EUR"), time.Now())
	require.NoError(t, err)
	assert.True(t, repriced.MarketValue().Equals(mustMoney(t, "1125", "EUR")))
	gain, err := repriced.GainLoss()
	require.NoError(t, err)
	assert.True(t, gain.Equals(mustMoney(t, "125", "EUR")))
	assert.NotNil(t, repriced.PriceUpdatedAt)
	assert.Nil(t, inv.PriceUpdatedAt, "original must not be mutated")

	_, err = inv.WithPrice(mustMoney(t, "112.5", "USD"), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	item := repriced.LineItem()
	assert.Equal(t, domain.LineItemInvestment, item.Kind)
	assert.Equal(t, "ETF", item.Category)
	assert.Equal(t, "EUR", item.Amount.Currency())
}

func TestSaving_Progress(t *testing.T) {
	s := domain.Saving{
		Target: mustMoney(t, "1000", "EUR"),
		Saved:  domain.ConvertedAmount{Original: mustMoney(t, "250", "EUR")},
	}
	assert.True(t, s.Progress().Value().Equal(decimal.NewFromInt(25)))
}

func TestParseAssetType(t *testing.T) {
	at, err := domain.ParseAssetType("crypto")
	require.NoError(t, err)
	assert.Equal(t, domain.AssetCrypto, at)
	_, err = domain.ParseAssetType("tulips")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
