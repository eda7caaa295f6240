package repositories

// RepositoryProvider groups every repository the services need, whatever the backing store.
type RepositoryProvider struct {
	ExchangeRateRepo ExchangeRateRepositoryFacade
	IncomeRepo       IncomeRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	SavingRepo       SavingRepositoryFacade
	InvestmentRepo   InvestmentRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	UserRepo         UserRepositoryFacade
}
