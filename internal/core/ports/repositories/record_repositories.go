package repositories

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// IncomeReader defines read operations for income records.
type IncomeReader interface {
	FindIncomeByID(ctx context.Context, userID, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, filter RecordFilter) ([]domain.Income, error)
}

// IncomeWriter defines write operations for income records.
type IncomeWriter interface {
	SaveIncome(ctx context.Context, income domain.Income) error
	UpdateIncome(ctx context.Context, income domain.Income) error
	DeleteIncome(ctx context.Context, userID, incomeID string) error
}

// IncomeRepositoryFacade combines all income repository interfaces.
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
}

// ExpenseReader defines read operations for expense records.
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, filter RecordFilter) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense records.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// SavingReader defines read operations for savings goals.
type SavingReader interface {
	FindSavingByID(ctx context.Context, userID, savingID string) (*domain.Saving, error)
	ListSavings(ctx context.Context, filter RecordFilter) ([]domain.Saving, error)
}

// SavingWriter defines write operations for savings goals.
type SavingWriter interface {
	SaveSaving(ctx context.Context, saving domain.Saving) error
	UpdateSaving(ctx context.Context, saving domain.Saving) error
	DeleteSaving(ctx context.Context, userID, savingID string) error
}

// SavingRepositoryFacade combines all saving repository interfaces.
type SavingRepositoryFacade interface {
	SavingReader
	SavingWriter
}

// InvestmentReader defines read operations for investments.
type InvestmentReader interface {
	FindInvestmentByID(ctx context.Context, userID, investmentID string) (*domain.Investment, error)
	ListInvestments(ctx context.Context, filter RecordFilter) ([]domain.Investment, error)
}

// InvestmentWriter defines write operations for investments.
type InvestmentWriter interface {
	SaveInvestment(ctx context.Context, investment domain.Investment) error
	UpdateInvestment(ctx context.Context, investment domain.Investment) error
	DeleteInvestment(ctx context.Context, userID, investmentID string) error
}

// InvestmentRepositoryFacade combines all investment repository interfaces.
type InvestmentRepositoryFacade interface {
	InvestmentReader
	InvestmentWriter
}
