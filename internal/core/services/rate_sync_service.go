package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsprov "github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/middleware"
)

// RateSyncConfig configures the periodic rate refresh.
type RateSyncConfig struct {
	Interval    time.Duration
	SyncOnStart bool
	// SupportedCurrencies limits which quotes are merged. Empty means all.
	SupportedCurrencies []string
}

// RateSyncService keeps the exchange rate store fresh. At most one cycle runs at
// a time; scheduled ticks and manual calls share the same guard.
type RateSyncService struct {
	BaseService
	provider portsprov.RateProvider
	store    portssvc.ExchangeRateSvcFacade
	config   RateSyncConfig
	logger   *slog.Logger
	now      func() time.Time

	supported map[string]struct{}

	// syncMu is held for the duration of a cycle.
	syncMu sync.Mutex

	statusMu    sync.RWMutex
	state       domain.SyncState
	lastReport  *domain.SyncReport
	lastSuccess *time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// RateSyncOption configures a RateSyncService.
type RateSyncOption func(*RateSyncService)

// WithRateSyncLogger sets the logger used by scheduled cycles, which run without a request context.
func WithRateSyncLogger(logger *slog.Logger) RateSyncOption {
	return func(s *RateSyncService) {
		s.logger = logger
	}
}

// WithRateSyncClock overrides the clock used for report timestamps.
func WithRateSyncClock(now func() time.Time) RateSyncOption {
	return func(s *RateSyncService) {
		s.now = now
	}
}

// NewRateSyncService creates a sync service. Start must be called to schedule cycles.
func NewRateSyncService(provider portsprov.RateProvider, store portssvc.ExchangeRateSvcFacade, cfg RateSyncConfig, opts ...RateSyncOption) *RateSyncService {
	s := &RateSyncService{
		provider: provider,
		store:    store,
		config:   cfg,
		logger:   slog.Default(),
		now:      utcNow,
		state:    domain.SyncStateIdle,
	}
	if len(cfg.SupportedCurrencies) > 0 {
		s.supported = make(map[string]struct{}, len(cfg.SupportedCurrencies))
		for _, code := range cfg.SupportedCurrencies {
			s.supported[code] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.RateSyncSvc = (*RateSyncService)(nil)

func (s *RateSyncService) setState(state domain.SyncState) {
	s.statusMu.Lock()
	s.state = state
	s.statusMu.Unlock()
}

// SyncNow runs one fetch-and-merge cycle. When another cycle is in flight it
// returns a SKIPPED report and no error. A failed cycle leaves the store as it was.
func (s *RateSyncService) SyncNow(ctx context.Context) (domain.SyncReport, error) {
	if !s.syncMu.TryLock() {
		s.LogDebug(ctx, "Rate sync already in progress, skipping")
		now := s.now()
		return domain.SyncReport{Outcome: domain.SyncSkipped, StartedAt: now, FinishedAt: now}, nil
	}
	defer s.syncMu.Unlock()

	report := domain.SyncReport{StartedAt: s.now()}
	result, err := s.runCycle(ctx)
	report.FinishedAt = s.now()

	if err != nil {
		report.Outcome = domain.SyncFailed
		report.Error = err.Error()
		s.statusMu.Lock()
		s.state = domain.SyncStateFailed
		s.lastReport = &report
		s.statusMu.Unlock()
		s.LogError(ctx, err, "Exchange rate sync failed", slog.String("provider", s.provider.Name()))
		return report, err
	}

	report.Outcome = domain.SyncSucceeded
	report.Merged = result.Merged
	report.SkippedManual = result.SkippedManual
	finished := report.FinishedAt
	s.statusMu.Lock()
	s.state = domain.SyncStateIdle
	s.lastReport = &report
	s.lastSuccess = &finished
	s.statusMu.Unlock()

	s.LogInfo(ctx, "Exchange rate sync completed",
		slog.String("provider", s.provider.Name()),
		slog.Int("merged", len(result.Merged)),
		slog.Int("skipped_manual", len(result.SkippedManual)),
		slog.Duration("took", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

func (s *RateSyncService) runCycle(ctx context.Context) (domain.MergeResult, error) {
	base := s.store.BaseCurrency()

	s.setState(domain.SyncStateFetching)
	snapshot, err := s.provider.FetchRates(ctx, base)
	if err != nil {
		if errors.Is(err, apperrors.ErrExternalService) {
			return domain.MergeResult{}, err
		}
		return domain.MergeResult{}, apperrors.NewExternalServiceError(fmt.Sprintf("%s fetch failed", s.provider.Name()), err)
	}
	if snapshot.Base != "" && snapshot.Base != base {
		return domain.MergeResult{}, apperrors.NewExternalServiceError(
			fmt.Sprintf("%s returned rates against %s, expected %s", s.provider.Name(), snapshot.Base, base), nil)
	}

	quotes := make([]domain.RateQuote, 0, len(snapshot.Rates))
	for _, q := range snapshot.Rates {
		if s.supported != nil {
			if _, ok := s.supported[q.CurrencyCode]; !ok {
				continue
			}
		}
		quotes = append(quotes, q)
	}
	if len(quotes) == 0 {
		return domain.MergeResult{}, apperrors.NewExternalServiceError(
			fmt.Sprintf("%s returned no usable rates", s.provider.Name()), nil)
	}

	// A cancelled cycle must not merge a half-observed snapshot.
	if err := ctx.Err(); err != nil {
		return domain.MergeResult{}, err
	}

	s.setState(domain.SyncStateMerging)
	return s.store.BulkMergeAutomaticRates(ctx, quotes)
}

// Status reports the current state, the last attempt and the last success.
func (s *RateSyncService) Status() domain.SyncStatus {
	s.statusMu.RLock()
	status := domain.SyncStatus{
		State:         s.state,
		Interval:      s.config.Interval,
		LastReport:    s.lastReport,
		LastSuccessAt: s.lastSuccess,
	}
	s.statusMu.RUnlock()
	status.Scheduled = s.IsRunning()
	return status
}

// Start schedules cycles every Interval until Stop is called or ctx is done.
// A non-positive interval disables scheduling.
func (s *RateSyncService) Start(ctx context.Context) {
	if s.config.Interval <= 0 {
		s.logger.Info("Exchange rate sync scheduling disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.runLoop(ctx, s.stopCh, s.doneCh)

	s.logger.Info("Exchange rate sync started",
		slog.Duration("interval", s.config.Interval),
		slog.String("provider", s.provider.Name()))
}

// Stop stops scheduling and waits for an in-flight cycle to return.
func (s *RateSyncService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
	s.logger.Info("Exchange rate sync stopped")
}

// IsRunning reports whether cycles are scheduled.
func (s *RateSyncService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *RateSyncService) runLoop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-cycleCtx.Done():
		}
	}()

	logCtx := middleware.WithLogger(cycleCtx, s.logger)
	if s.config.SyncOnStart {
		_, _ = s.SyncNow(logCtx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.SyncNow(logCtx)
		}
	}
}
