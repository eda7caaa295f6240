package memory

import portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"

// NewRepositoryProvider wires a fresh set of empty in-memory repositories.
func NewRepositoryProvider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ExchangeRateRepo: NewExchangeRateRepository(),
		IncomeRepo:       NewIncomeRepository(),
		ExpenseRepo:      NewExpenseRepository(),
		SavingRepo:       NewSavingRepository(),
		InvestmentRepo:   NewInvestmentRepository(),
		NotificationRepo: NewNotificationRepository(),
		UserRepo:         NewUserRepository(),
	}
}
