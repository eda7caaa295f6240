package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base string) (domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

func (m *MockRateProvider) Name() string {
	return "mock"
}

// --- Mock MarketDataProvider ---
type MockMarketDataProvider struct {
	mock.Mock
}

func (m *MockMarketDataProvider) GetAssetPrice(ctx context.Context, symbol string, assetType domain.AssetType, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol, assetType, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RecordHook ---
type MockRecordHook struct {
	mock.Mock
}

func (m *MockRecordHook) AfterCreate(ctx context.Context, event domain.RecordEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var errUpstream = errors.New("upstream unavailable")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot(base string, rates map[string]string) domain.RateSnapshot {
	snap := domain.RateSnapshot{Base: base, AsOf: time.Now().UTC()}
	for code, rate := range rates {
		snap.Rates = append(snap.Rates, domain.RateQuote{CurrencyCode: code, Rate: decimal.RequireFromString(rate)})
	}
	return snap
}
