package providers

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProvider fetches rates for every currency it knows against base. Rates are
// units of the quoted currency per 1 unit of base. Implementations return
// apperrors.ErrExternalService for transport failures and malformed payloads.
type RateProvider interface {
	FetchRates(ctx context.Context, base string) (domain.RateSnapshot, error)
	Name() string
}

// MarketDataProvider prices one unit of an asset in the requested currency.
type MarketDataProvider interface {
	GetAssetPrice(ctx context.Context, symbol string, assetType domain.AssetType, currency string) (decimal.Decimal, error)
}
