package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for database rows.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// ConvertedAmount is the column group stored next to every user-entered amount.
type ConvertedAmount struct {
	Amount       decimal.Decimal `db:"amount"`
	Currency     string          `db:"currency_code"`
	BaseAmount   decimal.Decimal `db:"base_amount"`
	BaseCurrency string          `db:"base_currency_code"`
	RateUsed     decimal.Decimal `db:"rate_used"`
}
