package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyEpsilon is the tolerance used by Money.Equals, applied relative to the
// larger magnitude once amounts exceed 1.
var MoneyEpsilon = decimal.New(1, -9)

// Money is an immutable amount in a single currency. The zero value is not valid;
// build one with NewMoney, NewMoneyFromFloat or NewMoneyFromString.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates the currency code and wraps the amount.
func NewMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	if err := ValidateCurrencyCode(currencyCode); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: currencyCode}, nil
}

// NewMoneyFromFloat rejects NaN and infinities.
func NewMoneyFromFloat(amount float64, currencyCode string) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, fmt.Errorf("%w: amount must be a finite number", apperrors.ErrValidation)
	}
	return NewMoney(decimal.NewFromFloat(amount), currencyCode)
}

// NewMoneyFromString parses a decimal literal such as "12.50".
func NewMoneyFromString(amount string, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q is not a finite number", apperrors.ErrValidation, amount)
	}
	return NewMoney(d, currencyCode)
}

// ZeroMoney returns 0 in the given currency.
func ZeroMoney(currencyCode string) (Money, error) {
	return NewMoney(decimal.Zero, currencyCode)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }
func (m Money) Neg() Money              { return Money{amount: m.amount.Neg(), currency: m.currency} }

// Mul scales the amount, keeping the currency.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Add fails with ErrCurrencyMismatch when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub fails with ErrCurrencyMismatch when the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Equals is true for the same currency and amounts within MoneyEpsilon.
func (m Money) Equals(other Money) bool {
	if m.currency != other.currency {
		return false
	}
	diff := m.amount.Sub(other.amount).Abs()
	scale := decimal.Max(decimal.NewFromInt(1), m.amount.Abs(), other.amount.Abs())
	return diff.LessThanOrEqual(MoneyEpsilon.Mul(scale))
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s and %s", apperrors.ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

// String formats with the currency's locale rules when go-money knows it.
func (m Money) String() string {
	cur := money.GetCurrency(m.currency)
	if cur == nil {
		return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
	}
	minor := m.amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	parsed, err := NewMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
