package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for base-relative exchange rates.
type ExchangeRateReader interface {
	// FindExchangeRate returns apperrors.ErrNotFound when no row exists for code.
	FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
	// FindLastAutomaticUpdate returns nil when no automatic row exists.
	FindLastAutomaticUpdate(ctx context.Context) (*time.Time, error)
}

// ExchangeRateWriter defines write operations. Every method is atomic on its own.
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts or replaces the row for rate.CurrencyCode unconditionally.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	// MergeAutomaticRates replaces every non-manual row in one atomic step and
	// leaves manual rows untouched.
	MergeAutomaticRates(ctx context.Context, quotes []domain.RateQuote, at time.Time) (domain.MergeResult, error)
	// ClearManualFlag returns apperrors.ErrNotFound when no row exists for code.
	ClearManualFlag(ctx context.Context, currencyCode string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
