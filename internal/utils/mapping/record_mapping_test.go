package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainInvestment_RejectsCorruptRows(t *testing.T) {
	now := time.Now().UTC()
	eur, err := domain.NewMoney(decimal.NewFromInt(46), "EUR")
	require.NoError(t, err)
	usd, err := domain.NewMoney(decimal.NewFromInt(50), "USD")
	require.NoError(t, err)

	inv := domain.Investment{
		InvestmentID:  "v1",
		UserID:        "u1",
		Symbol:        "SAP",
		AssetType:     domain.AssetStock,
		Quantity:      decimal.NewFromInt(1),
		PurchasePrice: eur,
		CurrentPrice:  eur,
		CostBasis:     domain.ConvertedAmount{Original: eur, Base: usd, RateUsed: decimal.RequireFromString("0.92")},
		PurchasedOn:   now,
	}

	row := ToModelInvestment(inv)
	assert.Equal(t, "EUR", row.Currency)
	assert.Equal(t, "USD", row.BaseCurrency)

	back, err := ToDomainInvestment(row)
	require.NoError(t, err)
	assert.True(t, back.CurrentPrice.Equals(eur))
	assert.True(t, back.CostBasis.Base.Equals(usd))

	row.AssetType = "GOLD"
	_, err = ToDomainInvestment(row)
	assert.Error(t, err)

	row.AssetType = "STOCK"
	row.Currency = "eu"
	_, err = ToDomainInvestment(row)
	assert.Error(t, err)
}
