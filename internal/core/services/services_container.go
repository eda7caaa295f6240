package services

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/platform/config"
)

// Dependencies are the adapters the container wires services to.
type Dependencies struct {
	Repos        *portsrepo.RepositoryProvider
	RateProvider providers.RateProvider
	MarketData   providers.MarketDataProvider
	// ExtraHooks run after the notification hook, e.g. the AMQP publisher.
	ExtraHooks []portssvc.RecordHook
	Logger     *slog.Logger
}

// NewServiceContainer creates a new service container with all services initialized.
// The returned RateSyncService is the same instance exposed as RateSync; main owns its lifecycle.
func NewServiceContainer(cfg *config.Config, deps Dependencies) (*portssvc.ServiceContainer, *RateSyncService, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := NewExchangeRateService(deps.Repos.ExchangeRateRepo, cfg.BaseCurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create exchange rate store: %w", err)
	}
	converter := NewCurrencyConverter(store)
	aggregator := NewValuationAggregator(converter)

	rateSync := NewRateSyncService(deps.RateProvider, store, RateSyncConfig{
		Interval:            cfg.RateSyncInterval,
		SyncOnStart:         cfg.RateSyncOnStartup,
		SupportedCurrencies: cfg.SupportedCurrencies,
	}, WithRateSyncLogger(logger.With(slog.String("component", "rate_sync"))))

	notifications := NewNotificationService(deps.Repos.NotificationRepo)
	hooks := append([]portssvc.RecordHook{notifications}, deps.ExtraHooks...)
	recordOpts := []RecordServiceOption{WithRecordHooks(hooks...)}

	container := &portssvc.ServiceContainer{
		ExchangeRate: store,
		Converter:    converter,
		RateSync:     rateSync,
		Aggregator:   aggregator,
		Income:       NewIncomeService(deps.Repos.IncomeRepo, converter, recordOpts...),
		Expense:      NewExpenseService(deps.Repos.ExpenseRepo, converter, recordOpts...),
		Saving:       NewSavingService(deps.Repos.SavingRepo, converter, recordOpts...),
		Investment: NewInvestmentService(deps.Repos.InvestmentRepo, converter, deps.MarketData,
			WithPriceCallDelay(cfg.MarketDataCallDelay),
			WithRecordOptions(recordOpts...)),
		Dashboard:    NewDashboardService(deps.Repos, store, aggregator),
		Notification: notifications,
		User:         NewUserService(deps.Repos.UserRepo),
	}
	return container, rateSync, nil
}
