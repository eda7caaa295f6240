package services

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
)

// IncomeSvcFacade defines the income use cases.
type IncomeSvcFacade interface {
	CreateIncome(ctx context.Context, req dto.CreateIncomeRequest, userID string) (*domain.Income, error)
	GetIncome(ctx context.Context, incomeID, userID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Income, error)
	UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, userID string) (*domain.Income, error)
	DeleteIncome(ctx context.Context, incomeID, userID string) error
}

// ExpenseSvcFacade defines the expense use cases.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	GetExpense(ctx context.Context, expenseID, userID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID, userID string) error
}

// SavingSvcFacade defines the savings use cases.
type SavingSvcFacade interface {
	CreateSaving(ctx context.Context, req dto.CreateSavingRequest, userID string) (*domain.Saving, error)
	GetSaving(ctx context.Context, savingID, userID string) (*domain.Saving, error)
	ListSavings(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Saving, error)
	UpdateSaving(ctx context.Context, savingID string, req dto.UpdateSavingRequest, userID string) (*domain.Saving, error)
	AddContribution(ctx context.Context, savingID string, req dto.ContributionRequest, userID string) (*domain.Saving, error)
	DeleteSaving(ctx context.Context, savingID, userID string) error
}

// InvestmentSvcFacade defines the investment use cases.
type InvestmentSvcFacade interface {
	CreateInvestment(ctx context.Context, req dto.CreateInvestmentRequest, userID string) (*domain.Investment, error)
	GetInvestment(ctx context.Context, investmentID, userID string) (*domain.Investment, error)
	ListInvestments(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Investment, error)
	UpdateInvestment(ctx context.Context, investmentID string, req dto.UpdateInvestmentRequest, userID string) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, investmentID, userID string) error
	// RefreshPrices reprices every holding of the user, one provider call at a time.
	RefreshPrices(ctx context.Context, userID string) (*domain.PriceRefreshResult, error)
}

// DashboardSvc builds the dashboard read model.
type DashboardSvc interface {
	GetSummary(ctx context.Context, userID string, period *domain.DateRange) (*domain.DashboardSummary, error)
}
