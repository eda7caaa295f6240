package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/core/services"
	"github.com/SscSPs/fintrack_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	repos     *portsrepo.RepositoryProvider
	store     portssvc.ExchangeRateSvcFacade
	dashboard portssvc.DashboardSvc
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repos = memory.NewRepositoryProvider()
	store, err := services.NewExchangeRateService(suite.repos.ExchangeRateRepo, "USD")
	suite.Require().NoError(err)
	_, err = store.BulkMergeAutomaticRates(suite.ctx, []domain.RateQuote{{CurrencyCode: "EUR", Rate: dec("0.92")}})
	suite.Require().NoError(err)
	suite.store = store
	aggregator := services.NewValuationAggregator(services.NewCurrencyConverter(store))
	suite.dashboard = services.NewDashboardService(suite.repos, store, aggregator)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func money(amount, code string) domain.Money {
	m, err := domain.NewMoney(decimal.RequireFromString(amount), code)
	if err != nil {
		panic(err)
	}
	return m
}

func converted(amount, code, base string) domain.ConvertedAmount {
	return domain.ConvertedAmount{Original: money(amount, code), Base: money(base, "USD"), RateUsed: decimal.NewFromInt(1)}
}

func (suite *DashboardServiceTestSuite) seed() {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.repos.IncomeRepo.SaveIncome(suite.ctx, domain.Income{IncomeID: "i1", UserID: testUser, Source: "salary", Amount: converted("1000", "USD", "1000"), ReceivedOn: jan}))
	suite.Require().NoError(suite.repos.IncomeRepo.SaveIncome(suite.ctx, domain.Income{IncomeID: "i2", UserID: testUser, Source: "salary", Amount: converted("1000", "USD", "1000"), ReceivedOn: feb}))
	suite.Require().NoError(suite.repos.ExpenseRepo.SaveExpense(suite.ctx, domain.Expense{ExpenseID: "e1", UserID: testUser, Category: "rent", Amount: converted("552", "EUR", "600"), SpentOn: jan}))
	suite.Require().NoError(suite.repos.ExpenseRepo.SaveExpense(suite.ctx, domain.Expense{ExpenseID: "e2", UserID: testUser, Category: "food", Amount: converted("200", "USD", "200"), SpentOn: feb}))
	suite.Require().NoError(suite.repos.SavingRepo.SaveSaving(suite.ctx, domain.Saving{SavingID: "s1", UserID: testUser, Goal: "rainy day", Target: money("5000", "USD"), Saved: converted("500", "USD", "500")}))
	suite.Require().NoError(suite.repos.InvestmentRepo.SaveInvestment(suite.ctx, domain.Investment{
		InvestmentID: "v1", UserID: testUser, Symbol: "VWCE", AssetType: domain.AssetETF, Quantity: dec("2"),
		PurchasePrice: money("40", "EUR"), CurrentPrice: money("46", "EUR"), PurchasedOn: jan,
	}))
}

func (suite *DashboardServiceTestSuite) assertUSD(want string, got domain.Money) {
	suite.True(money(want, "USD").Equals(got), "want %s USD, got %s %s", want, got.Amount(), got.Currency())
}

func (suite *DashboardServiceTestSuite) TestGetSummary_AllTime() {
	suite.seed()

	summary, err := suite.dashboard.GetSummary(suite.ctx, testUser, nil)
	suite.Require().NoError(err)

	suite.Equal("USD", summary.BaseCurrency)
	suite.assertUSD("2000", summary.TotalIncome)
	suite.assertUSD("800", summary.TotalExpenses)
	suite.assertUSD("1200", summary.NetCashFlow)
	suite.assertUSD("500", summary.TotalSavings)
	suite.assertUSD("100", summary.PortfolioValue)
	suite.assertUSD("600", summary.NetWorth)
	suite.Equal("60.00%", summary.SavingsRate.String())
	suite.assertUSD("600", summary.ExpensesByCategory["rent"])
	suite.assertUSD("2000", summary.IncomeBySource["salary"])
	suite.assertUSD("100", summary.PortfolioByAssetType["ETF"])
	suite.assertUSD("400", summary.NetByMonth["2025-01"])
	suite.assertUSD("800", summary.NetByMonth["2025-02"])
	suite.NotNil(summary.LastRateSync)
	suite.Nil(summary.From)
}

func (suite *DashboardServiceTestSuite) TestGetSummary_Period() {
	suite.seed()
	period := domain.MonthOf(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	summary, err := suite.dashboard.GetSummary(suite.ctx, testUser, &period)
	suite.Require().NoError(err)
	suite.assertUSD("1000", summary.TotalIncome)
	suite.assertUSD("200", summary.TotalExpenses)
	suite.Len(summary.NetByMonth, 1)
	suite.Require().NotNil(summary.From)
	suite.Equal(period.Start(), *summary.From)
}

func (suite *DashboardServiceTestSuite) TestGetSummary_FailsWhenHoldingCannotBeValued() {
	suite.seed()
	suite.Require().NoError(suite.repos.InvestmentRepo.SaveInvestment(suite.ctx, domain.Investment{
		InvestmentID: "v2", UserID: testUser, Symbol: "XX", AssetType: domain.AssetStock, Quantity: dec("1"),
		PurchasePrice: money("10", "ZZZ"), CurrentPrice: money("10", "ZZZ"),
	}))

	summary, err := suite.dashboard.GetSummary(suite.ctx, testUser, nil)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
	suite.Nil(summary)
}

func (suite *DashboardServiceTestSuite) TestGetSummary_Empty() {
	summary, err := suite.dashboard.GetSummary(suite.ctx, "nobody", nil)
	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.IsZero())
	suite.True(summary.SavingsRate.Value().IsZero())
	suite.Empty(summary.NetByMonth)
}
