package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsprov "github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/google/uuid"
)

// DefaultPriceCallDelay spaces out market data calls to stay under provider quotas.
const DefaultPriceCallDelay = time.Second

type investmentService struct {
	recordBase
	repo      portsrepo.InvestmentRepositoryFacade
	prices    portsprov.MarketDataProvider
	callDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

// InvestmentServiceOption configures the investment service beyond the shared record options.
type InvestmentServiceOption func(*investmentService)

// WithPriceCallDelay sets the pause between two market data calls.
func WithPriceCallDelay(d time.Duration) InvestmentServiceOption {
	return func(s *investmentService) {
		s.callDelay = d
	}
}

// WithSleeper replaces the context-aware sleep used between market data calls.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) InvestmentServiceOption {
	return func(s *investmentService) {
		s.sleep = sleep
	}
}

// WithRecordOptions applies shared record options to the investment service.
func WithRecordOptions(opts ...RecordServiceOption) InvestmentServiceOption {
	return func(s *investmentService) {
		for _, opt := range opts {
			opt(&s.recordBase)
		}
	}
}

// NewInvestmentService creates a new investment service. prices may be nil, in which
// case RefreshPrices fails with an external service error.
func NewInvestmentService(repo portsrepo.InvestmentRepositoryFacade, converter portssvc.ConverterSvc, prices portsprov.MarketDataProvider, opts ...InvestmentServiceOption) portssvc.InvestmentSvcFacade {
	s := &investmentService{
		recordBase: newRecordBase(converter, nil),
		repo:       repo,
		prices:     prices,
		callDelay:  DefaultPriceCallDelay,
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.InvestmentSvcFacade = (*investmentService)(nil)

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *investmentService) CreateInvestment(ctx context.Context, req dto.CreateInvestmentRequest, userID string) (*domain.Investment, error) {
	symbol, err := requireText("symbol", req.Symbol)
	if err != nil {
		return nil, err
	}
	assetType, err := domain.ParseAssetType(req.AssetType)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("quantity", req.Quantity); err != nil {
		return nil, err
	}
	if err := requireNonNegative("purchasePrice", req.PurchasePrice); err != nil {
		return nil, err
	}
	if err := requireDate("purchasedOn", req.PurchasedOn); err != nil {
		return nil, err
	}
	code, err := domain.NormalizeCurrencyCode(req.Currency)
	if err != nil {
		return nil, err
	}
	price, err := domain.NewMoney(req.PurchasePrice, code)
	if err != nil {
		return nil, err
	}
	costBasis, err := s.convertAmount(ctx, price.Mul(req.Quantity).Amount(), code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	investment := domain.Investment{
		InvestmentID:  uuid.NewString(),
		UserID:        userID,
		Symbol:        strings.ToUpper(symbol),
		Name:          req.Name,
		AssetType:     assetType,
		Quantity:      req.Quantity,
		PurchasePrice: price,
		CurrentPrice:  price,
		CostBasis:     costBasis,
		PurchasedOn:   req.PurchasedOn.UTC(),
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if err := s.repo.SaveInvestment(ctx, investment); err != nil {
		s.LogError(ctx, err, "Failed to save investment", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save investment: %w", err)
	}

	s.LogInfo(ctx, "Investment recorded",
		slog.String("investment_id", investment.InvestmentID),
		slog.String("symbol", investment.Symbol))
	s.afterCreate(ctx, domain.RecordEvent{
		Kind:       domain.LineItemInvestment,
		RecordID:   investment.InvestmentID,
		UserID:     userID,
		Label:      investment.Symbol,
		Amount:     costBasis.Original,
		BaseAmount: costBasis.Base,
		OccurredAt: now,
	})
	return &investment, nil
}

func (s *investmentService) GetInvestment(ctx context.Context, investmentID, userID string) (*domain.Investment, error) {
	return s.repo.FindInvestmentByID(ctx, userID, investmentID)
}

func (s *investmentService) ListInvestments(ctx context.Context, params dto.ListRecordsParams, userID string) ([]domain.Investment, error) {
	filter, err := recordFilter(params, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListInvestments(ctx, filter)
}

func (s *investmentService) UpdateInvestment(ctx context.Context, investmentID string, req dto.UpdateInvestmentRequest, userID string) (*domain.Investment, error) {
	inv, err := s.repo.FindInvestmentByID(ctx, userID, investmentID)
	if err != nil {
		return nil, err
	}
	code := inv.PurchasePrice.Currency()
	now := s.now()

	if req.Name != nil {
		inv.Name = *req.Name
	}
	if req.PurchasedOn != nil {
		if err := requireDate("purchasedOn", *req.PurchasedOn); err != nil {
			return nil, err
		}
		inv.PurchasedOn = req.PurchasedOn.UTC()
	}
	if req.Quantity != nil {
		if err := requirePositive("quantity", *req.Quantity); err != nil {
			return nil, err
		}
		inv.Quantity = *req.Quantity
	}
	if req.PurchasePrice != nil {
		if err := requireNonNegative("purchasePrice", *req.PurchasePrice); err != nil {
			return nil, err
		}
		if inv.PurchasePrice, err = domain.NewMoney(*req.PurchasePrice, code); err != nil {
			return nil, err
		}
	}
	if req.CurrentPrice != nil {
		price, err := domain.NewMoney(*req.CurrentPrice, code)
		if err != nil {
			return nil, err
		}
		repriced, err := inv.WithPrice(price, now)
		if err != nil {
			return nil, err
		}
		inv = &repriced
	}
	if req.Quantity != nil || req.PurchasePrice != nil {
		if inv.CostBasis, err = s.convertAmount(ctx, inv.PurchasePrice.Mul(inv.Quantity).Amount(), code); err != nil {
			return nil, err
		}
	}

	inv.Touch(userID, now)
	if err := s.repo.UpdateInvestment(ctx, *inv); err != nil {
		s.LogError(ctx, err, "Failed to update investment", slog.String("investment_id", investmentID))
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}
	return inv, nil
}

func (s *investmentService) DeleteInvestment(ctx context.Context, investmentID, userID string) error {
	if err := s.repo.DeleteInvestment(ctx, userID, investmentID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Investment deleted", slog.String("investment_id", investmentID))
	return nil
}

// RefreshPrices asks the market data provider for each holding in turn, pausing
// between calls. A failing holding is tallied and the run continues; only a
// cancelled context stops it early.
func (s *investmentService) RefreshPrices(ctx context.Context, userID string) (*domain.PriceRefreshResult, error) {
	if s.prices == nil {
		return nil, apperrors.NewExternalServiceError("market data provider is not configured", nil)
	}
	holdings, err := s.repo.ListInvestments(ctx, portsrepo.RecordFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	result := &domain.PriceRefreshResult{}
	for i, inv := range holdings {
		if i > 0 {
			if err := s.sleep(ctx, s.callDelay); err != nil {
				return result, err
			}
		}
		if err := s.refreshOne(ctx, inv, userID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.PriceRefreshError{
				InvestmentID: inv.InvestmentID,
				Symbol:       inv.Symbol,
				Error:        err.Error(),
			})
			s.LogWarn(ctx, "Price refresh failed",
				slog.String("symbol", inv.Symbol),
				slog.String("error", err.Error()))
			continue
		}
		result.Updated++
	}

	s.LogInfo(ctx, "Investment prices refreshed",
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed))
	return result, nil
}

func (s *investmentService) refreshOne(ctx context.Context, inv domain.Investment, userID string) error {
	code := inv.PurchasePrice.Currency()
	amount, err := s.prices.GetAssetPrice(ctx, inv.Symbol, inv.AssetType, code)
	if err != nil {
		return err
	}
	price, err := domain.NewMoney(amount, code)
	if err != nil {
		return err
	}
	now := s.now()
	repriced, err := inv.WithPrice(price, now)
	if err != nil {
		return err
	}
	repriced.Touch(userID, now)
	return s.repo.UpdateInvestment(ctx, repriced)
}
