package domain

import (
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage is a value in [0, 100].
type Percentage struct {
	value decimal.Decimal
}

// NewPercentage rejects values outside [0, 100].
func NewPercentage(value decimal.Decimal) (Percentage, error) {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return Percentage{}, fmt.Errorf("%w: percentage %s must be between 0 and 100", apperrors.ErrValidation, value.String())
	}
	return Percentage{value: value}, nil
}

// PercentageOf computes part/whole*100 clamped to [0, 100]; a zero whole yields 0.
func PercentageOf(part, whole decimal.Decimal) Percentage {
	if whole.IsZero() {
		return Percentage{value: decimal.Zero}
	}
	v := part.Div(whole).Mul(hundred)
	if v.IsNegative() {
		v = decimal.Zero
	}
	if v.GreaterThan(hundred) {
		v = hundred
	}
	return Percentage{value: v.Round(2)}
}

func (p Percentage) Value() decimal.Decimal { return p.value }
func (p Percentage) String() string         { return p.value.StringFixed(2) + "%" }

func (p Percentage) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}
