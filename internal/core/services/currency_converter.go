package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// currencyConverter routes every conversion through the base currency, so only
// base-relative rates need to be stored and all cross rates stay consistent.
// It reads the store on each call and keeps no cache of its own.
type currencyConverter struct {
	rates portssvc.ExchangeRateReaderSvc
}

// NewCurrencyConverter creates a converter reading from the given store.
func NewCurrencyConverter(rates portssvc.ExchangeRateReaderSvc) portssvc.ConverterSvc {
	return &currencyConverter{rates: rates}
}

var _ portssvc.ConverterSvc = (*currencyConverter)(nil)

func (c *currencyConverter) BaseCurrency() string {
	return c.rates.BaseCurrency()
}

func (c *currencyConverter) GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	return c.rates.GetRate(ctx, currencyCode)
}

// usableRate refuses zero and negative rates so a bad row can never yield
// infinite or sign-flipped money.
func (c *currencyConverter) usableRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	rate, err := c.rates.GetRate(ctx, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: stored rate for %s is %s", apperrors.ErrInvalidRate, currencyCode, rate.String())
	}
	return rate, nil
}

// ConvertToBase computes amount / rate(from).
func (c *currencyConverter) ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string) (domain.Money, error) {
	base := c.rates.BaseCurrency()
	if fromCurrency == base {
		return domain.NewMoney(amount, base)
	}
	if err := domain.ValidateCurrencyCode(fromCurrency); err != nil {
		return domain.Money{}, err
	}
	rate, err := c.usableRate(ctx, fromCurrency)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(divideByRate(amount, rate), base)
}

// quotientDigits is the number of significant digits kept by divideByRate.
const quotientDigits = 20

// divideByRate keeps quotientDigits significant digits whatever the magnitudes
// involved. decimal.Div rounds to a fixed number of places after the point, which
// is too coarse once the rate is large.
func divideByRate(amount, rate decimal.Decimal) decimal.Decimal {
	places := quotientDigits - (leadingDigitPos(amount) - leadingDigitPos(rate))
	if places < int64(decimal.DivisionPrecision) {
		places = int64(decimal.DivisionPrecision)
	}
	return amount.DivRound(rate, int32(places))
}

// leadingDigitPos is the power of ten of the most significant digit.
func leadingDigitPos(d decimal.Decimal) int64 {
	return int64(d.NumDigits()) + int64(d.Exponent()) - 1
}

// ConvertFromBase computes amountInBase * rate(to).
func (c *currencyConverter) ConvertFromBase(ctx context.Context, amountInBase decimal.Decimal, toCurrency string) (domain.Money, error) {
	base := c.rates.BaseCurrency()
	if toCurrency == base {
		return domain.NewMoney(amountInBase, base)
	}
	if err := domain.ValidateCurrencyCode(toCurrency); err != nil {
		return domain.Money{}, err
	}
	rate, err := c.usableRate(ctx, toCurrency)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(amountInBase.Mul(rate), toCurrency)
}

// Convert returns the amount untouched when both currencies match; otherwise it
// hops through the base currency.
func (c *currencyConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (domain.Money, error) {
	if fromCurrency == toCurrency {
		return domain.NewMoney(amount, fromCurrency)
	}
	inBase, err := c.ConvertToBase(ctx, amount, fromCurrency)
	if err != nil {
		return domain.Money{}, err
	}
	return c.ConvertFromBase(ctx, inBase.Amount(), toCurrency)
}

func (c *currencyConverter) ConvertMoney(ctx context.Context, m domain.Money, toCurrency string) (domain.Money, error) {
	return c.Convert(ctx, m.Amount(), m.Currency(), toCurrency)
}
