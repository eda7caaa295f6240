package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	incomes     portsrepo.IncomeReader
	expenses    portsrepo.ExpenseReader
	savings     portsrepo.SavingReader
	investments portsrepo.InvestmentReader
	rates       portssvc.ExchangeRateReaderSvc
	aggregator  portssvc.ValuationAggregatorSvc
	now         func() time.Time
}

// DashboardServiceOption is a functional option for configuring the dashboard service
type DashboardServiceOption func(*dashboardService)

// WithDashboardClock overrides the clock stamped on summaries.
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *dashboardService) {
		s.now = now
	}
}

// NewDashboardService creates the dashboard read model service.
func NewDashboardService(repos *portsrepo.RepositoryProvider, rates portssvc.ExchangeRateReaderSvc, aggregator portssvc.ValuationAggregatorSvc, opts ...DashboardServiceOption) portssvc.DashboardSvc {
	s := &dashboardService{
		incomes:     repos.IncomeRepo,
		expenses:    repos.ExpenseRepo,
		savings:     repos.SavingRepo,
		investments: repos.InvestmentRepo,
		rates:       rates,
		aggregator:  aggregator,
		now:         utcNow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

// GetSummary filters incomes and expenses by period; savings and holdings are
// valued as they stand now. Investments are converted at today's rates, so any
// missing rate fails the whole summary.
func (s *dashboardService) GetSummary(ctx context.Context, userID string, period *domain.DateRange) (*domain.DashboardSummary, error) {
	flowFilter := portsrepo.RecordFilter{UserID: userID, Range: period}
	snapshotFilter := portsrepo.RecordFilter{UserID: userID}

	incomes, err := s.incomes.ListIncomes(ctx, flowFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx, flowFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	savings, err := s.savings.ListSavings(ctx, snapshotFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings: %w", err)
	}
	investments, err := s.investments.ListInvestments(ctx, snapshotFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	incomeItems := domain.LineItemsOf(incomes)
	expenseItems := domain.LineItemsOf(expenses)
	savingItems := domain.LineItemsOf(savings)
	holdingItems := domain.LineItemsOf(investments)

	summary := &domain.DashboardSummary{
		UserID:       userID,
		BaseCurrency: s.rates.BaseCurrency(),
		GeneratedAt:  s.now(),
	}
	if period != nil {
		from, to := period.Start(), period.End()
		summary.From, summary.To = &from, &to
	}

	if summary.TotalIncome, err = s.aggregator.TotalInBase(ctx, incomeItems); err != nil {
		return nil, err
	}
	if summary.TotalExpenses, err = s.aggregator.TotalInBase(ctx, expenseItems); err != nil {
		return nil, err
	}
	if summary.TotalSavings, err = s.aggregator.TotalInBase(ctx, savingItems); err != nil {
		return nil, err
	}
	if summary.PortfolioValue, err = s.aggregator.TotalInBase(ctx, holdingItems); err != nil {
		return nil, err
	}
	if summary.NetCashFlow, err = summary.TotalIncome.Sub(summary.TotalExpenses); err != nil {
		return nil, err
	}
	if summary.NetWorth, err = summary.TotalSavings.Add(summary.PortfolioValue); err != nil {
		return nil, err
	}
	summary.SavingsRate = domain.PercentageOf(summary.NetCashFlow.Amount(), summary.TotalIncome.Amount())

	if summary.ExpensesByCategory, err = s.aggregator.GroupBy(ctx, expenseItems, ByCategory); err != nil {
		return nil, err
	}
	if summary.IncomeBySource, err = s.aggregator.GroupBy(ctx, incomeItems, ByCategory); err != nil {
		return nil, err
	}
	if summary.PortfolioByAssetType, err = s.aggregator.GroupBy(ctx, holdingItems, ByCategory); err != nil {
		return nil, err
	}

	cashFlow := make([]domain.LineItem, 0, len(incomeItems)+len(expenseItems))
	cashFlow = append(cashFlow, incomeItems...)
	for _, item := range expenseItems {
		item.Amount = item.Amount.Neg()
		cashFlow = append(cashFlow, item)
	}
	if summary.NetByMonth, err = s.aggregator.GroupBy(ctx, cashFlow, ByMonth); err != nil {
		return nil, err
	}

	if lastSync, err := s.rates.GetLastSyncTime(ctx); err != nil {
		s.LogError(ctx, err, "Failed to read last rate sync time", slog.String("user_id", userID))
	} else {
		summary.LastRateSync = lastSync
	}

	return summary, nil
}
