package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// exchangeRateService is the exchange rate store: base-relative rates keyed by
// currency code, with the base currency implied at rate 1.
type exchangeRateService struct {
	BaseService
	repo portsrepo.ExchangeRateRepositoryFacade
	base string
	now  func() time.Time

	// writeMu serializes every mutation path.
	writeMu sync.Mutex
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate store
type ExchangeRateServiceOption func(*exchangeRateService)

// WithExchangeRateClock overrides the clock used for lastUpdated stamps.
func WithExchangeRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates the exchange rate store over repo.
func NewExchangeRateService(repo portsrepo.ExchangeRateRepositoryFacade, baseCurrency string, options ...ExchangeRateServiceOption) (portssvc.ExchangeRateSvcFacade, error) {
	if err := domain.ValidateCurrencyCode(baseCurrency); err != nil {
		return nil, fmt.Errorf("base currency: %w", err)
	}
	svc := &exchangeRateService{
		repo: repo,
		base: baseCurrency,
		now:  utcNow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc, nil
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

var one = decimal.NewFromInt(1)

func (s *exchangeRateService) BaseCurrency() string {
	return s.base
}

func (s *exchangeRateService) GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	if currencyCode == s.base {
		return one, nil
	}
	rate, err := s.GetExchangeRate(ctx, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Rate, nil
}

func (s *exchangeRateService) GetExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	if currencyCode == s.base {
		return &domain.ExchangeRate{CurrencyCode: s.base, Rate: one}, nil
	}
	if err := domain.ValidateCurrencyCode(currencyCode); err != nil {
		return nil, err
	}
	rate, err := s.repo.FindExchangeRate(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rate for %s against %s", apperrors.ErrRateNotFound, currencyCode, s.base)
		}
		s.LogError(ctx, err, "Failed to read exchange rate", slog.String("currency", currencyCode))
		return nil, fmt.Errorf("failed to read exchange rate for %s: %w", currencyCode, err)
	}
	return rate, nil
}

func (s *exchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.repo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].CurrencyCode < rates[j].CurrencyCode })
	return rates, nil
}

func (s *exchangeRateService) GetLastSyncTime(ctx context.Context) (*time.Time, error) {
	t, err := s.repo.FindLastAutomaticUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync time: %w", err)
	}
	return t, nil
}

func (s *exchangeRateService) validateWritable(currencyCode string) error {
	if err := domain.ValidateCurrencyCode(currencyCode); err != nil {
		return err
	}
	if currencyCode == s.base {
		return fmt.Errorf("%w: %s is the base currency and is fixed at rate 1", apperrors.ErrValidation, s.base)
	}
	return nil
}

func validateRate(currencyCode string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("%w: rate for %s must be positive, got %s", apperrors.ErrInvalidRate, currencyCode, rate.String())
	}
	return nil
}

// SetRate replaces the stored rate unconditionally, manual or not.
func (s *exchangeRateService) SetRate(ctx context.Context, currencyCode string, rate decimal.Decimal, isManual bool) (*domain.ExchangeRate, error) {
	if err := s.validateWritable(currencyCode); err != nil {
		return nil, err
	}
	if err := validateRate(currencyCode, rate); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	record := domain.ExchangeRate{
		CurrencyCode: currencyCode,
		Rate:         rate,
		LastUpdated:  s.now(),
		IsManual:     isManual,
	}
	if err := s.repo.SaveExchangeRate(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("currency", currencyCode))
		return nil, fmt.Errorf("failed to save exchange rate for %s: %w", currencyCode, err)
	}

	s.LogInfo(ctx, "Exchange rate set",
		slog.String("currency", currencyCode),
		slog.String("rate", rate.String()),
		slog.Bool("manual", isManual))
	return &record, nil
}

// BulkMergeAutomaticRates validates the whole batch before writing anything, then
// merges it in one repository call. Manual rows are skipped by the repository.
func (s *exchangeRateService) BulkMergeAutomaticRates(ctx context.Context, quotes []domain.RateQuote) (domain.MergeResult, error) {
	latest := make(map[string]decimal.Decimal, len(quotes))
	order := make([]string, 0, len(quotes))
	for _, q := range quotes {
		if q.CurrencyCode == s.base {
			continue
		}
		if err := domain.ValidateCurrencyCode(q.CurrencyCode); err != nil {
			return domain.MergeResult{}, err
		}
		if err := validateRate(q.CurrencyCode, q.Rate); err != nil {
			return domain.MergeResult{}, err
		}
		if _, seen := latest[q.CurrencyCode]; !seen {
			order = append(order, q.CurrencyCode)
		}
		latest[q.CurrencyCode] = q.Rate
	}

	batch := make([]domain.RateQuote, 0, len(order))
	for _, code := range order {
		batch = append(batch, domain.RateQuote{CurrencyCode: code, Rate: latest[code]})
	}
	if len(batch) == 0 {
		return domain.MergeResult{MergedAt: s.now()}, nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	result, err := s.repo.MergeAutomaticRates(ctx, batch, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to merge automatic exchange rates", slog.Int("count", len(batch)))
		return domain.MergeResult{}, fmt.Errorf("failed to merge exchange rates: %w", err)
	}

	s.LogInfo(ctx, "Merged automatic exchange rates",
		slog.Int("merged", len(result.Merged)),
		slog.Any("skipped_manual", result.SkippedManual))
	return result, nil
}

// ClearManualOverride lets the next automatic sync overwrite the rate again.
func (s *exchangeRateService) ClearManualOverride(ctx context.Context, currencyCode string) error {
	if err := s.validateWritable(currencyCode); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.ClearManualFlag(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no rate stored for %s", apperrors.ErrNotFound, currencyCode)
		}
		return fmt.Errorf("failed to clear manual override for %s: %w", currencyCode, err)
	}
	s.LogInfo(ctx, "Manual exchange rate override cleared", slog.String("currency", currencyCode))
	return nil
}
