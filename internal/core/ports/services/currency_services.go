package services

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read access to the exchange rate store.
type ExchangeRateReaderSvc interface {
	// BaseCurrency is the currency every stored rate is relative to.
	BaseCurrency() string
	// GetRate returns 1 for the base currency and apperrors.ErrRateNotFound for unknown codes.
	GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error)
	GetExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
	GetLastSyncTime(ctx context.Context) (*time.Time, error)
}

// ExchangeRateWriterSvc defines the store's mutation path.
type ExchangeRateWriterSvc interface {
	SetRate(ctx context.Context, currencyCode string, rate decimal.Decimal, isManual bool) (*domain.ExchangeRate, error)
	BulkMergeAutomaticRates(ctx context.Context, quotes []domain.RateQuote) (domain.MergeResult, error)
	ClearManualOverride(ctx context.Context, currencyCode string) error
}

// ExchangeRateSvcFacade combines all exchange rate store operations.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// ConverterSvc converts amounts between currencies through the base currency.
type ConverterSvc interface {
	BaseCurrency() string
	GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error)
	ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string) (domain.Money, error)
	ConvertFromBase(ctx context.Context, amountInBase decimal.Decimal, toCurrency string) (domain.Money, error)
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (domain.Money, error)
	ConvertMoney(ctx context.Context, m domain.Money, toCurrency string) (domain.Money, error)
}

// RateSyncSvc refreshes the store from the external rate provider.
type RateSyncSvc interface {
	// SyncNow runs one cycle, or reports SKIPPED when a cycle is already in flight.
	SyncNow(ctx context.Context) (domain.SyncReport, error)
	Status() domain.SyncStatus
}

// ValuationAggregatorSvc sums heterogeneous line items in the base currency.
type ValuationAggregatorSvc interface {
	TotalInBase(ctx context.Context, items []domain.LineItem) (domain.Money, error)
	GroupBy(ctx context.Context, items []domain.LineItem, key func(domain.LineItem) string) (map[string]domain.Money, error)
}
