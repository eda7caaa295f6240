package memory

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
)

// IncomeRepository stores incomes in memory.
type IncomeRepository struct{ t *table[domain.Income] }

func NewIncomeRepository() *IncomeRepository {
	return &IncomeRepository{t: newTable("income", func(i domain.Income) string { return i.IncomeID })}
}

var _ portsrepo.IncomeRepositoryFacade = (*IncomeRepository)(nil)

func (r *IncomeRepository) SaveIncome(_ context.Context, income domain.Income) error {
	return r.t.insert(income)
}
func (r *IncomeRepository) UpdateIncome(_ context.Context, income domain.Income) error {
	return r.t.update(income)
}
func (r *IncomeRepository) DeleteIncome(_ context.Context, userID, incomeID string) error {
	return r.t.delete(userID, incomeID)
}
func (r *IncomeRepository) FindIncomeByID(_ context.Context, userID, incomeID string) (*domain.Income, error) {
	return r.t.find(userID, incomeID)
}
func (r *IncomeRepository) ListIncomes(_ context.Context, filter portsrepo.RecordFilter) ([]domain.Income, error) {
	return r.t.list(filter), nil
}

// ExpenseRepository stores expenses in memory.
type ExpenseRepository struct{ t *table[domain.Expense] }

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{t: newTable("expense", func(e domain.Expense) string { return e.ExpenseID })}
}

var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

func (r *ExpenseRepository) SaveExpense(_ context.Context, expense domain.Expense) error {
	return r.t.insert(expense)
}
func (r *ExpenseRepository) UpdateExpense(_ context.Context, expense domain.Expense) error {
	return r.t.update(expense)
}
func (r *ExpenseRepository) DeleteExpense(_ context.Context, userID, expenseID string) error {
	return r.t.delete(userID, expenseID)
}
func (r *ExpenseRepository) FindExpenseByID(_ context.Context, userID, expenseID string) (*domain.Expense, error) {
	return r.t.find(userID, expenseID)
}
func (r *ExpenseRepository) ListExpenses(_ context.Context, filter portsrepo.RecordFilter) ([]domain.Expense, error) {
	return r.t.list(filter), nil
}

// SavingRepository stores savings goals in memory.
type SavingRepository struct{ t *table[domain.Saving] }

func NewSavingRepository() *SavingRepository {
	return &SavingRepository{t: newTable("saving", func(s domain.Saving) string { return s.SavingID })}
}

var _ portsrepo.SavingRepositoryFacade = (*SavingRepository)(nil)

func (r *SavingRepository) SaveSaving(_ context.Context, saving domain.Saving) error {
	return r.t.insert(saving)
}
func (r *SavingRepository) UpdateSaving(_ context.Context, saving domain.Saving) error {
	return r.t.update(saving)
}
func (r *SavingRepository) DeleteSaving(_ context.Context, userID, savingID string) error {
	return r.t.delete(userID, savingID)
}
func (r *SavingRepository) FindSavingByID(_ context.Context, userID, savingID string) (*domain.Saving, error) {
	return r.t.find(userID, savingID)
}
func (r *SavingRepository) ListSavings(_ context.Context, filter portsrepo.RecordFilter) ([]domain.Saving, error) {
	return r.t.list(filter), nil
}

// InvestmentRepository stores holdings in memory.
type InvestmentRepository struct{ t *table[domain.Investment] }

func NewInvestmentRepository() *InvestmentRepository {
	return &InvestmentRepository{t: newTable("investment", func(i domain.Investment) string { return i.InvestmentID })}
}

var _ portsrepo.InvestmentRepositoryFacade = (*InvestmentRepository)(nil)

func (r *InvestmentRepository) SaveInvestment(_ context.Context, investment domain.Investment) error {
	return r.t.insert(investment)
}
func (r *InvestmentRepository) UpdateInvestment(_ context.Context, investment domain.Investment) error {
	return r.t.update(investment)
}
func (r *InvestmentRepository) DeleteInvestment(_ context.Context, userID, investmentID string) error {
	return r.t.delete(userID, investmentID)
}
func (r *InvestmentRepository) FindInvestmentByID(_ context.Context, userID, investmentID string) (*domain.Investment, error) {
	return r.t.find(userID, investmentID)
}
func (r *InvestmentRepository) ListInvestments(_ context.Context, filter portsrepo.RecordFilter) ([]domain.Investment, error) {
	return r.t.list(filter), nil
}
