package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/fintrack_app/internal/apperrors"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrencyCode accepts exactly three uppercase ASCII letters.
func ValidateCurrencyCode(code string) error {
	if !currencyCodePattern.MatchString(code) {
		return fmt.Errorf("%w: currency code %q must be 3 uppercase letters", apperrors.ErrValidation, code)
	}
	return nil
}

// NormalizeCurrencyCode trims and upper-cases user input before validating it.
func NormalizeCurrencyCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if err := ValidateCurrencyCode(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// IsISOCurrency reports whether go-money knows the code. Unknown but well-formed codes are
// still valid Money; they just cannot be formatted with locale rules.
func IsISOCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
