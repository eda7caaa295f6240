package services

// ServiceContainer holds instances of all the application services.
// It is the main entry point for handlers.
type ServiceContainer struct {
	ExchangeRate ExchangeRateSvcFacade
	Converter    ConverterSvc
	RateSync     RateSyncSvc
	Aggregator   ValuationAggregatorSvc
	Income       IncomeSvcFacade
	Expense      ExpenseSvcFacade
	Saving       SavingSvcFacade
	Investment   InvestmentSvcFacade
	Dashboard    DashboardSvc
	Notification NotificationSvcFacade
	User         UserSvcFacade
}
