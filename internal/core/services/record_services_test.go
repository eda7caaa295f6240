package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/core/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testUser = "user-1"

type RecordServicesTestSuite struct {
	suite.Suite
	ctx       context.Context
	repos     *portsrepo.RepositoryProvider
	converter portssvc.ConverterSvc
	hook      *MockRecordHook
	now       time.Time
}

func (suite *RecordServicesTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)
	suite.repos = memory.NewRepositoryProvider()
	suite.hook = new(MockRecordHook)

	store, err := services.NewExchangeRateService(suite.repos.ExchangeRateRepo, "USD")
	suite.Require().NoError(err)
	_, err = store.SetRate(suite.ctx, "EUR", dec("0.92"), false)
	suite.Require().NoError(err)
	suite.converter = services.NewCurrencyConverter(store)
}

func TestRecordServicesTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServicesTestSuite))
}

func (suite *RecordServicesTestSuite) recordOpts() []services.RecordServiceOption {
	return []services.RecordServiceOption{services.WithRecordHooks(suite.hook), services.WithClock(fixedClock(suite.now))}
}

func (suite *RecordServicesTestSuite) TestCreateIncome_ConvertsToBase() {
	suite.hook.On("AfterCreate", mock.Anything, mock.MatchedBy(func(e domain.RecordEvent) bool {
		return e.Kind == domain.LineItemIncome && e.Amount.Currency() == "EUR" && e.BaseAmount.Currency() == "USD"
	})).Return(nil).Once()
	svc := services.NewIncomeService(suite.repos.IncomeRepo, suite.converter, suite.recordOpts()...)

	income, err := svc.CreateIncome(suite.ctx, dto.CreateIncomeRequest{
		Source:     "Consulting",
		Amount:     dec("92"),
		Currency:   "eur",
		ReceivedOn: suite.now,
		Recurrence: "monthly",
	}, testUser)

	suite.Require().NoError(err)
	suite.NotEmpty(income.IncomeID)
	suite.Equal("EUR", income.Amount.Original.Currency())
	suite.True(income.Amount.Base.Amount().Equal(decimal.NewFromInt(100)))
	suite.True(income.Amount.RateUsed.Equal(dec("0.92")))
	suite.Equal(domain.RecurrenceMonthly, income.Recurrence.Frequency())
	suite.Equal(suite.now, income.CreatedAt)

	stored, err := svc.GetIncome(suite.ctx, income.IncomeID, testUser)
	suite.Require().NoError(err)
	suite.Equal(income.IncomeID, stored.IncomeID)
	suite.hook.AssertExpectations(suite.T())
}

// rateMovingConverter replaces the stored rate right after every GetRate, the way
// a sync merge landing mid-request would.
type rateMovingConverter struct {
	portssvc.ConverterSvc
	store portssvc.ExchangeRateSvcFacade
	next  decimal.Decimal
}

func (c *rateMovingConverter) GetRate(ctx context.Context, code string) (decimal.Decimal, error) {
	rate, err := c.ConverterSvc.GetRate(ctx, code)
	if _, setErr := c.store.SetRate(ctx, code, c.next, false); setErr != nil {
		return decimal.Zero, setErr
	}
	return rate, err
}

func (suite *RecordServicesTestSuite) TestCreateIncome_BaseMatchesRateUsed() {
	suite.hook.On("AfterCreate", mock.Anything, mock.Anything).Return(nil)
	store, err := services.NewExchangeRateService(suite.repos.ExchangeRateRepo, "USD")
	suite.Require().NoError(err)
	converter := &rateMovingConverter{ConverterSvc: suite.converter, store: store, next: dec("0.5")}
	svc := services.NewIncomeService(suite.repos.IncomeRepo, converter, suite.recordOpts()...)

	income, err := svc.CreateIncome(suite.ctx, dto.CreateIncomeRequest{
		Source: "Consulting", Amount: dec("92"), Currency: "EUR", ReceivedOn: suite.now,
	}, testUser)

	suite.Require().NoError(err)
	suite.True(income.Amount.RateUsed.Equal(dec("0.92")), "rate used %s", income.Amount.RateUsed)
	suite.True(income.Amount.Base.Amount().Equal(decimal.NewFromInt(100)), "base %s", income.Amount.Base.Amount())
}

func (suite *RecordServicesTestSuite) TestCreateIncome_HookFailureDoesNotFailWrite() {
	suite.hook.On("AfterCreate", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	svc := services.NewIncomeService(suite.repos.IncomeRepo, suite.converter, suite.recordOpts()...)

	income, err := svc.CreateIncome(suite.ctx, dto.CreateIncomeRequest{
		Source: "Salary", Amount: dec("1000"), Currency: "USD", ReceivedOn: suite.now,
	}, testUser)

	suite.Require().NoError(err)
	_, err = suite.repos.IncomeRepo.FindIncomeByID(suite.ctx, testUser, income.IncomeID)
	suite.NoError(err)
	suite.hook.AssertExpectations(suite.T())
}

func (suite *RecordServicesTestSuite) TestCreateIncome_Validation() {
	svc := services.NewIncomeService(suite.repos.IncomeRepo, suite.converter, suite.recordOpts()...)

	testCases := []struct {
		name    string
		req     dto.CreateIncomeRequest
		wantErr error
	}{
		{"zero amount", dto.CreateIncomeRequest{Source: "x", Amount: decimal.Zero, Currency: "USD", ReceivedOn: suite.now}, apperrors.ErrValidation},
		{"blank source", dto.CreateIncomeRequest{Source: "  ", Amount: dec("1"), Currency: "USD", ReceivedOn: suite.now}, apperrors.ErrValidation},
		{"bad recurrence", dto.CreateIncomeRequest{Source: "x", Amount: dec("1"), Currency: "USD", ReceivedOn: suite.now, Recurrence: "hourly"}, apperrors.ErrValidation},
		{"unknown currency", dto.CreateIncomeRequest{Source: "x", Amount: dec("1"), Currency: "XYZ", ReceivedOn: suite.now}, apperrors.ErrRateNotFound},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := svc.CreateIncome(suite.ctx, tc.req, testUser)
			suite.ErrorIs(err, tc.wantErr)
		})
	}

	all, err := svc.ListIncomes(suite.ctx, dto.ListRecordsParams{}, testUser)
	suite.Require().NoError(err)
	suite.Empty(all)
	suite.hook.AssertNotCalled(suite.T(), "AfterCreate", mock.Anything, mock.Anything)
}

func (suite *RecordServicesTestSuite) TestExpenses_ListByRangeAndUpdate() {
	suite.hook.On("AfterCreate", mock.Anything, mock.Anything).Return(nil)
	svc := services.NewExpenseService(suite.repos.ExpenseRepo, suite.converter, suite.recordOpts()...)

	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateExpense(suite.ctx, dto.CreateExpenseRequest{Category: "rent", Amount: dec("900"), Currency: "USD", SpentOn: march}, testUser)
	suite.Require().NoError(err)
	aprilExpense, err := svc.CreateExpense(suite.ctx, dto.CreateExpenseRequest{Category: "food", Amount: dec("46"), Currency: "EUR", SpentOn: april}, testUser)
	suite.Require().NoError(err)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	list, err := svc.ListExpenses(suite.ctx, dto.ListRecordsParams{From: &from, To: &to}, testUser)
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.Equal(aprilExpense.ExpenseID, list[0].ExpenseID)

	other, err := svc.ListExpenses(suite.ctx, dto.ListRecordsParams{}, "someone-else")
	suite.Require().NoError(err)
	suite.Empty(other)

	usd := "USD"
	updated, err := svc.UpdateExpense(suite.ctx, aprilExpense.ExpenseID, dto.UpdateExpenseRequest{Currency: &usd}, testUser)
	suite.Require().NoError(err)
	suite.True(updated.Amount.Base.Amount().Equal(dec("46")))
	suite.True(updated.Amount.RateUsed.Equal(decimal.NewFromInt(1)))

	suite.Require().NoError(svc.DeleteExpense(suite.ctx, aprilExpense.ExpenseID, testUser))
	_, err = svc.GetExpense(suite.ctx, aprilExpense.ExpenseID, testUser)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RecordServicesTestSuite) TestSaving_Contributions() {
	suite.hook.On("AfterCreate", mock.Anything, mock.Anything).Return(nil)
	svc := services.NewSavingService(suite.repos.SavingRepo, suite.converter, suite.recordOpts()...)

	saving, err := svc.CreateSaving(suite.ctx, dto.CreateSavingRequest{
		Goal: "Holiday", TargetAmount: dec("1000"), SavedAmount: dec("200"), Currency: "EUR",
	}, testUser)
	suite.Require().NoError(err)
	suite.Equal("20.00%", saving.Progress().String())

	updated, err := svc.AddContribution(suite.ctx, saving.SavingID, dto.ContributionRequest{Amount: dec("200"), Currency: "EUR"}, testUser)
	suite.Require().NoError(err)
	suite.True(updated.Saved.Original.Amount().Equal(dec("400")))
	suite.Equal("40.00%", updated.Progress().String())

	_, err = svc.AddContribution(suite.ctx, saving.SavingID, dto.ContributionRequest{Amount: dec("50"), Currency: "USD"}, testUser)
	suite.ErrorIs(err, apperrors.ErrCurrencyMismatch)

	_, err = svc.AddContribution(suite.ctx, saving.SavingID, dto.ContributionRequest{Amount: dec("-500"), Currency: "EUR"}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	stored, err := svc.GetSaving(suite.ctx, saving.SavingID, testUser)
	suite.Require().NoError(err)
	suite.True(stored.Saved.Original.Amount().Equal(dec("400")))
}

func (suite *RecordServicesTestSuite) TestInvestments_RefreshPricesTalliesFailures() {
	suite.hook.On("AfterCreate", mock.Anything, mock.Anything).Return(nil)
	prices := new(MockMarketDataProvider)
	var slept []time.Duration
	svc := services.NewInvestmentService(suite.repos.InvestmentRepo, suite.converter, prices,
		services.WithRecordOptions(suite.recordOpts()...),
		services.WithSleeper(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}))

	for _, req := range []dto.CreateInvestmentRequest{
		{Symbol: "aapl", AssetType: "stock", Quantity: dec("10"), PurchasePrice: dec("150"), Currency: "USD", PurchasedOn: suite.now},
		{Symbol: "BTC", AssetType: "crypto", Quantity: dec("0.5"), PurchasePrice: dec("30000"), Currency: "USD", PurchasedOn: suite.now},
		{Symbol: "VWCE", AssetType: "etf", Quantity: dec("4"), PurchasePrice: dec("100"), Currency: "EUR", PurchasedOn: suite.now},
	} {
		_, err := svc.CreateInvestment(suite.ctx, req, testUser)
		suite.Require().NoError(err)
	}

	prices.On("GetAssetPrice", mock.Anything, "AAPL", domain.AssetStock, "USD").Return(dec("180"), nil).Once()
	prices.On("GetAssetPrice", mock.Anything, "BTC", domain.AssetCrypto, "USD").Return(decimal.Zero, apperrors.NewExternalServiceError("quota", nil)).Once()
	prices.On("GetAssetPrice", mock.Anything, "VWCE", domain.AssetETF, "EUR").Return(dec("110"), nil).Once()

	result, err := svc.RefreshPrices(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Equal(2, result.Updated)
	suite.Equal(1, result.Failed)
	suite.Require().Len(result.Errors, 1)
	suite.Equal("BTC", result.Errors[0].Symbol)
	suite.Equal([]time.Duration{services.DefaultPriceCallDelay, services.DefaultPriceCallDelay}, slept)

	holdings, err := svc.ListInvestments(suite.ctx, dto.ListRecordsParams{}, testUser)
	suite.Require().NoError(err)
	for _, h := range holdings {
		switch h.Symbol {
		case "AAPL":
			suite.True(h.CurrentPrice.Amount().Equal(dec("180")))
			suite.NotNil(h.PriceUpdatedAt)
		case "BTC":
			suite.True(h.CurrentPrice.Amount().Equal(dec("30000")))
			suite.Nil(h.PriceUpdatedAt)
		}
	}
	prices.AssertExpectations(suite.T())
}

func (suite *RecordServicesTestSuite) TestInvestments_RefreshWithoutProvider() {
	svc := services.NewInvestmentService(suite.repos.InvestmentRepo, suite.converter, nil)
	_, err := svc.RefreshPrices(suite.ctx, testUser)
	suite.ErrorIs(err, apperrors.ErrExternalService)
}

func (suite *RecordServicesTestSuite) TestInvestments_CostBasisInBase() {
	suite.hook.On("AfterCreate", mock.Anything, mock.Anything).Return(nil)
	svc := services.NewInvestmentService(suite.repos.InvestmentRepo, suite.converter, nil,
		services.WithRecordOptions(suite.recordOpts()...))

	inv, err := svc.CreateInvestment(suite.ctx, dto.CreateInvestmentRequest{
		Symbol: "SAP", AssetType: "STOCK", Quantity: dec("2"), PurchasePrice: dec("46"), Currency: "EUR", PurchasedOn: suite.now,
	}, testUser)
	suite.Require().NoError(err)
	suite.True(inv.CostBasis.Original.Amount().Equal(dec("92")))
	suite.True(inv.CostBasis.Base.Amount().Equal(decimal.NewFromInt(100)))

	_, err = svc.CreateInvestment(suite.ctx, dto.CreateInvestmentRequest{
		Symbol: "SAP", AssetType: "COMMODITY", Quantity: dec("2"), PurchasePrice: dec("46"), Currency: "EUR", PurchasedOn: suite.now,
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)
}
