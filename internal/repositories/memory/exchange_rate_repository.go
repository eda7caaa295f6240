package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
)

// ExchangeRateRepository keeps rates in a map guarded by a RWMutex. Readers never
// observe a half-applied merge.
type ExchangeRateRepository struct {
	mu    sync.RWMutex
	rates map[string]domain.ExchangeRate
}

func NewExchangeRateRepository() *ExchangeRateRepository {
	return &ExchangeRateRepository{rates: make(map[string]domain.ExchangeRate)}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

func (r *ExchangeRateRepository) FindExchangeRate(_ context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rate, ok := r.rates[currencyCode]
	if !ok {
		return nil, fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, currencyCode)
	}
	return &rate, nil
}

func (r *ExchangeRateRepository) ListExchangeRates(_ context.Context) ([]domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ExchangeRate, 0, len(r.rates))
	for _, rate := range r.rates {
		out = append(out, rate)
	}
	return out, nil
}

func (r *ExchangeRateRepository) FindLastAutomaticUpdate(_ context.Context) (*time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *time.Time
	for _, rate := range r.rates {
		if rate.IsManual {
			continue
		}
		if latest == nil || rate.LastUpdated.After(*latest) {
			t := rate.LastUpdated
			latest = &t
		}
	}
	return latest, nil
}

func (r *ExchangeRateRepository) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates[rate.CurrencyCode] = rate
	return nil
}

func (r *ExchangeRateRepository) MergeAutomaticRates(_ context.Context, quotes []domain.RateQuote, at time.Time) (domain.MergeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := domain.MergeResult{MergedAt: at}
	for _, q := range quotes {
		if existing, ok := r.rates[q.CurrencyCode]; ok && existing.IsManual {
			result.SkippedManual = append(result.SkippedManual, q.CurrencyCode)
			continue
		}
		r.rates[q.CurrencyCode] = domain.ExchangeRate{
			CurrencyCode: q.CurrencyCode,
			Rate:         q.Rate,
			LastUpdated:  at,
		}
		result.Merged = append(result.Merged, q.CurrencyCode)
	}
	return result, nil
}

func (r *ExchangeRateRepository) ClearManualFlag(_ context.Context, currencyCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate, ok := r.rates[currencyCode]
	if !ok {
		return fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, currencyCode)
	}
	rate.IsManual = false
	r.rates[currencyCode] = rate
	return nil
}
