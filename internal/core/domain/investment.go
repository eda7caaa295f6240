package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AssetType classifies an investment for market-data lookups.
type AssetType string

const (
	AssetStock  AssetType = "STOCK"
	AssetETF    AssetType = "ETF"
	AssetCrypto AssetType = "CRYPTO"
	AssetBond   AssetType = "BOND"
	AssetFund   AssetType = "FUND"
)

// ParseAssetType validates an asset type name.
func ParseAssetType(s string) (AssetType, error) {
	t := AssetType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case AssetStock, AssetETF, AssetCrypto, AssetBond, AssetFund:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown asset type %q", apperrors.ErrValidation, s)
}

// Investment is a holding of Quantity units priced in the holding's currency.
type Investment struct {
	InvestmentID   string          `json:"investmentID"`
	UserID         string          `json:"userID"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	AssetType      AssetType       `json:"assetType"`
	Quantity       decimal.Decimal `json:"quantity"`
	PurchasePrice  Money           `json:"purchasePrice"`
	CurrentPrice   Money           `json:"currentPrice"`
	CostBasis      ConvertedAmount `json:"costBasis"`
	PurchasedOn    time.Time       `json:"purchasedOn"`
	PriceUpdatedAt *time.Time      `json:"priceUpdatedAt,omitempty"`
	AuditFields
}

// MarketValue is quantity times the latest price, in the holding's currency.
func (i Investment) MarketValue() Money {
	return i.CurrentPrice.Mul(i.Quantity)
}

// GainLoss is market value minus purchase cost, in the holding's currency.
func (i Investment) GainLoss() (Money, error) {
	return i.MarketValue().Sub(i.PurchasePrice.Mul(i.Quantity))
}

// WithPrice returns a copy repriced at price.
func (i Investment) WithPrice(price Money, at time.Time) (Investment, error) {
	if price.Currency() != i.PurchasePrice.Currency() {
		return Investment{}, fmt.Errorf("%w: price for %s quoted in %s, holding is in %s",
			apperrors.ErrCurrencyMismatch, i.Symbol, price.Currency(), i.PurchasePrice.Currency())
	}
	if price.IsNegative() {
		return Investment{}, fmt.Errorf("%w: price for %s is negative", apperrors.ErrValidation, i.Symbol)
	}
	i.CurrentPrice = price
	i.PriceUpdatedAt = &at
	return i, nil
}

func (i Investment) LineItem() LineItem {
	date := i.PurchasedOn
	if i.PriceUpdatedAt != nil {
		date = *i.PriceUpdatedAt
	}
	return LineItem{UserID: i.UserID, Kind: LineItemInvestment, Category: string(i.AssetType), Date: date, Amount: i.MarketValue()}
}

// PriceRefreshResult tallies a market-data refresh run.
type PriceRefreshResult struct {
	Updated int                 `json:"updated"`
	Failed  int                 `json:"failed"`
	Errors  []PriceRefreshError `json:"errors,omitempty"`
}

// PriceRefreshError records why one holding was not repriced.
type PriceRefreshError struct {
	InvestmentID string `json:"investmentID"`
	Symbol       string `json:"symbol"`
	Error        string `json:"error"`
}
