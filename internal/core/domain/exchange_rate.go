package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the latest known rate for one currency against the base currency.
// Rate is expressed as units of CurrencyCode per 1 unit of base, so
// amountInBase = amount / Rate and amount = amountInBase * Rate.
type ExchangeRate struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	LastUpdated  time.Time       `json:"lastUpdated"`
	IsManual     bool            `json:"isManual"`
}

// RateQuote is a single currency/rate pair as delivered by a provider.
type RateQuote struct {
	CurrencyCode string
	Rate         decimal.Decimal
}

// RateSnapshot is one provider response.
type RateSnapshot struct {
	Base  string
	AsOf  time.Time
	Rates []RateQuote
}

// MergeResult reports what an automatic merge did.
type MergeResult struct {
	Merged        []string
	SkippedManual []string
	MergedAt      time.Time
}
