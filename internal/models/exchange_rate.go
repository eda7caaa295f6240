package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row per currency, relative to the configured base.
type ExchangeRate struct {
	CurrencyCode string          `db:"currency_code"` // Primary Key
	Rate         decimal.Decimal `db:"rate"`          // NUMERIC(20,10), always > 0
	LastUpdated  time.Time       `db:"last_updated"`
	IsManual     bool            `db:"is_manual"`
}
