package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/core/services"
	"github.com/SscSPs/fintrack_app/internal/platform/config"
	"github.com/SscSPs/fintrack_app/internal/platform/database"
	"github.com/SscSPs/fintrack_app/internal/providers/ratesapi"
	"github.com/SscSPs/fintrack_app/internal/providers/ratesfile"
	"github.com/SscSPs/fintrack_app/internal/repositories/database/pgsql"
	"github.com/alexflint/go-arg"
	"github.com/shopspring/decimal"
)

type MigrateCmd struct{}

type SyncRatesCmd struct {
	File string `arg:"--file" help:"read rates from this YAML file instead of the configured provider"`
}

type SetRateCmd struct {
	Currency string `arg:"positional,required" help:"currency code, e.g. EUR"`
	Rate     string `arg:"positional,required" help:"units of the currency per 1 unit of the base currency"`
}

type ClearRateCmd struct {
	Currency string `arg:"positional,required" help:"currency code whose manual override is cleared"`
}

type ListRatesCmd struct{}

type ConvertCmd struct {
	Amount string `arg:"positional,required"`
	From   string `arg:"positional,required"`
	To     string `arg:"positional,required"`
}

type Args struct {
	Migrate   *MigrateCmd   `arg:"subcommand:migrate" help:"apply pending database migrations"`
	SyncRates *SyncRatesCmd `arg:"subcommand:sync-rates" help:"run one exchange rate sync cycle"`
	SetRate   *SetRateCmd   `arg:"subcommand:set-rate" help:"store a manual exchange rate override"`
	ClearRate *ClearRateCmd `arg:"subcommand:clear-rate" help:"drop a manual override so syncs may update the rate"`
	ListRates *ListRatesCmd `arg:"subcommand:list-rates" help:"print every stored rate"`
	Convert   *ConvertCmd   `arg:"subcommand:convert" help:"convert an amount using stored rates"`
	Verbose   bool          `arg:"-v" help:"debug logging"`
}

// Version is set with `go build -ldflags`.
var Version = "development"

func (Args) Version() string { return Version }

func (Args) Description() string {
	return "fintrack_admin maintains the exchange rate store of a FinTrack database."
}

func main() {
	var args Args
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(context.Background(), args, logger); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, args Args, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		return errors.New("fintrack_admin needs STORAGE_DRIVER=postgres")
	}

	if args.Migrate != nil {
		return database.RunMigrations(cfg.DatabaseURL, logger)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger, database.WithMaxConns(2))
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool, logger)

	repos := pgsql.NewRepositoryProvider(pool)
	store, err := services.NewExchangeRateService(repos.ExchangeRateRepo, cfg.BaseCurrency)
	if err != nil {
		return err
	}

	switch {
	case args.SyncRates != nil:
		return syncRates(ctx, cfg, store, args.SyncRates, logger)
	case args.SetRate != nil:
		rate, err := decimal.NewFromString(args.SetRate.Rate)
		if err != nil {
			return fmt.Errorf("rate %q is not a decimal number", args.SetRate.Rate)
		}
		stored, err := store.SetRate(ctx, args.SetRate.Currency, rate, true)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s per 1 %s (manual)\n", stored.CurrencyCode, stored.Rate, cfg.BaseCurrency)
		return nil
	case args.ClearRate != nil:
		if err := store.ClearManualOverride(ctx, args.ClearRate.Currency); err != nil {
			return err
		}
		fmt.Printf("%s override cleared\n", strings.ToUpper(args.ClearRate.Currency))
		return nil
	case args.ListRates != nil:
		return listRates(ctx, store)
	case args.Convert != nil:
		return convert(ctx, services.NewCurrencyConverter(store), args.Convert)
	}
	return nil
}

func syncRates(ctx context.Context, cfg *config.Config, store portssvc.ExchangeRateSvcFacade, cmd *SyncRatesCmd, logger *slog.Logger) error {
	var provider providers.RateProvider
	if cmd.File != "" {
		provider = ratesfile.New(cmd.File)
	} else if cfg.RateProvider == config.RateProviderFile {
		provider = ratesfile.New(cfg.RateProviderFile)
	} else {
		client, err := ratesapi.New(ratesapi.Config{
			URLTemplate:   cfg.RateProviderURL,
			RatesPath:     cfg.RateProviderRatesPath,
			TimestampPath: cfg.RateProviderTimestampPath,
			Timeout:       cfg.RateProviderTimeout,
		}, ratesapi.WithLogger(logger))
		if err != nil {
			return err
		}
		provider = client
	}

	sync := services.NewRateSyncService(provider, store, services.RateSyncConfig{
		SupportedCurrencies: cfg.SupportedCurrencies,
	}, services.WithRateSyncLogger(logger))
	report, err := sync.SyncNow(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s: merged %d, kept %d manual (%s)\n", report.Outcome, len(report.Merged),
		len(report.SkippedManual), report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	if len(report.SkippedManual) > 0 {
		fmt.Printf("manual overrides kept: %s\n", strings.Join(report.SkippedManual, ", "))
	}
	return nil
}

func listRates(ctx context.Context, store portssvc.ExchangeRateSvcFacade) error {
	rates, err := store.ListRates(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "CURRENCY\tRATE (per 1 %s)\tUPDATED\tMANUAL\n", store.BaseCurrency())
	for _, r := range rates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", r.CurrencyCode, r.Rate, r.LastUpdated.Format(time.RFC3339), r.IsManual)
	}
	if last, err := store.GetLastSyncTime(ctx); err == nil && last != nil {
		fmt.Fprintf(w, "\nlast sync\t%s\n", last.Format(time.RFC3339))
	}
	return w.Flush()
}

func convert(ctx context.Context, converter portssvc.ConverterSvc, cmd *ConvertCmd) error {
	source, err := domain.NewMoneyFromString(cmd.Amount, strings.ToUpper(cmd.From))
	if err != nil {
		return err
	}
	converted, err := converter.ConvertMoney(ctx, source, strings.ToUpper(cmd.To))
	if err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", source, converted)
	return nil
}
