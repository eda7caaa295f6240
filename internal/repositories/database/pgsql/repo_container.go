package pgsql

import (
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		IncomeRepo:       newPgxIncomeRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		SavingRepo:       newPgxSavingRepository(dbPool),
		InvestmentRepo:   newPgxInvestmentRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
