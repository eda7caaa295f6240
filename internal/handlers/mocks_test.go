package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) BaseCurrency() string { return "USD" }

func (m *MockExchangeRateService) GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetLastSyncTime(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockExchangeRateService) SetRate(ctx context.Context, currencyCode string, rate decimal.Decimal, isManual bool) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, rate, isManual)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) BulkMergeAutomaticRates(ctx context.Context, quotes []domain.RateQuote) (domain.MergeResult, error) {
	args := m.Called(ctx, quotes)
	return args.Get(0).(domain.MergeResult), args.Error(1)
}

func (m *MockExchangeRateService) ClearManualOverride(ctx context.Context, currencyCode string) error {
	return m.Called(ctx, currencyCode).Error(0)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock RateSync ---
type MockRateSync struct {
	mock.Mock
}

func (m *MockRateSync) SyncNow(ctx context.Context) (domain.SyncReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SyncReport), args.Error(1)
}

func (m *MockRateSync) Status() domain.SyncStatus {
	return m.Called().Get(0).(domain.SyncStatus)
}

var _ portssvc.RateSyncSvc = (*MockRateSync)(nil)

// --- Mock Converter ---
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) BaseCurrency() string { return "USD" }

func (m *MockConverter) GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockConverter) ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string) (domain.Money, error) {
	args := m.Called(ctx, amount, fromCurrency)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockConverter) ConvertFromBase(ctx context.Context, amountInBase decimal.Decimal, toCurrency string) (domain.Money, error) {
	args := m.Called(ctx, amountInBase, toCurrency)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (domain.Money, error) {
	args := m.Called(ctx, amount, fromCurrency, toCurrency)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockConverter) ConvertMoney(ctx context.Context, money domain.Money, toCurrency string) (domain.Money, error) {
	args := m.Called(ctx, money, toCurrency)
	return args.Get(0).(domain.Money), args.Error(1)
}

var _ portssvc.ConverterSvc = (*MockConverter)(nil)

// --- Mock IncomeService ---
type MockIncomeService struct {
	mock.Mock
}

func (m *MockIncomeService) CreateIncome(ctx context.Context, req dto.CreateIncomeRequest, userID string) (*domain.Income, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) GetIncome(ctx context.Context, incomeID, userID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) ListIncomes(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Income, error) {
	args := m.Called(ctx, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}

func (m *MockIncomeService) UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, userID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) DeleteIncome(ctx context.Context, incomeID, userID string) error {
	return m.Called(ctx, incomeID, userID).Error(0)
}

var _ portssvc.IncomeSvcFacade = (*MockIncomeService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetSummary(ctx context.Context, userID string, period *domain.DateRange) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)
