package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/shopspring/decimal"
)

// recordBase is shared by the income, expense, saving and investment services.
type recordBase struct {
	BaseService
	converter portssvc.ConverterSvc
	hooks     []portssvc.RecordHook
	now       func() time.Time
}

// RecordServiceOption configures any of the record services.
type RecordServiceOption func(*recordBase)

// WithRecordHooks registers hooks run after a record is created.
func WithRecordHooks(hooks ...portssvc.RecordHook) RecordServiceOption {
	return func(b *recordBase) {
		for _, h := range hooks {
			if h != nil {
				b.hooks = append(b.hooks, h)
			}
		}
	}
}

// WithClock overrides the clock used for audit stamps.
func WithClock(now func() time.Time) RecordServiceOption {
	return func(b *recordBase) {
		b.now = now
	}
}

func newRecordBase(converter portssvc.ConverterSvc, opts []RecordServiceOption) recordBase {
	b := recordBase{converter: converter, now: utcNow}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// convertAmount stamps the record with its base value at today's rate.
func (b *recordBase) convertAmount(ctx context.Context, amount decimal.Decimal, currency string) (domain.ConvertedAmount, error) {
	code, err := domain.NormalizeCurrencyCode(currency)
	if err != nil {
		return domain.ConvertedAmount{}, err
	}
	original, err := domain.NewMoney(amount, code)
	if err != nil {
		return domain.ConvertedAmount{}, err
	}
	// one read, so RateUsed always explains Base
	rate, err := b.converter.GetRate(ctx, code)
	if err != nil {
		return domain.ConvertedAmount{}, err
	}
	if !rate.IsPositive() {
		return domain.ConvertedAmount{}, fmt.Errorf("%w: stored rate for %s is %s", apperrors.ErrInvalidRate, code, rate.String())
	}
	base, err := domain.NewMoney(divideByRate(amount, rate), b.converter.BaseCurrency())
	if err != nil {
		return domain.ConvertedAmount{}, err
	}
	return domain.ConvertedAmount{Original: original, Base: base, RateUsed: rate}, nil
}

// afterCreate runs the post-commit hooks. A failing hook is logged and never
// reported to the caller.
func (b *recordBase) afterCreate(ctx context.Context, event domain.RecordEvent) {
	for _, h := range b.hooks {
		if err := h.AfterCreate(ctx, event); err != nil {
			b.LogError(ctx, err, "Post-create hook failed",
				slog.String("kind", string(event.Kind)),
				slog.String("record_id", event.RecordID))
		}
	}
}

func recordFilter(params dto.ListRecordsParams, userID string) (portsrepo.RecordFilter, error) {
	r, err := params.DateRange()
	if err != nil {
		return portsrepo.RecordFilter{}, err
	}
	return portsrepo.RecordFilter{UserID: userID, Range: r, Limit: params.Limit, Offset: params.Offset}, nil
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be greater than zero", field))
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperrors.NewValidationError(fmt.Sprintf("%s must not be negative", field))
	}
	return nil
}

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	return v, nil
}

func requireDate(field string, t time.Time) error {
	if t.IsZero() {
		return apperrors.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	return nil
}
