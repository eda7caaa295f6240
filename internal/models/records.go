package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income row.
type Income struct {
	IncomeID           string    `db:"income_id"`
	UserID             string    `db:"user_id"`
	Source             string    `db:"source"`
	Description        string    `db:"description"`
	ReceivedOn         time.Time `db:"received_on"`
	Recurrence         string    `db:"recurrence"`
	RecurrenceInterval int       `db:"recurrence_interval"`
	ConvertedAmount
	AuditFields
}

// Expense row.
type Expense struct {
	ExpenseID          string    `db:"expense_id"`
	UserID             string    `db:"user_id"`
	Category           string    `db:"category"`
	Description        string    `db:"description"`
	SpentOn            time.Time `db:"spent_on"`
	Recurrence         string    `db:"recurrence"`
	RecurrenceInterval int       `db:"recurrence_interval"`
	ConvertedAmount
	AuditFields
}

// Saving row. Amount columns hold the saved amount; the target shares its currency.
type Saving struct {
	SavingID     string          `db:"saving_id"`
	UserID       string          `db:"user_id"`
	Goal         string          `db:"goal"`
	TargetAmount decimal.Decimal `db:"target_amount"`
	TargetDate   *time.Time      `db:"target_date"`
	ConvertedAmount
	AuditFields
}

// Investment row. Amount columns hold the cost basis.
type Investment struct {
	InvestmentID   string          `db:"investment_id"`
	UserID         string          `db:"user_id"`
	Symbol         string          `db:"symbol"`
	Name           string          `db:"name"`
	AssetType      string          `db:"asset_type"`
	Quantity       decimal.Decimal `db:"quantity"`
	PurchasePrice  decimal.Decimal `db:"purchase_price"`
	CurrentPrice   decimal.Decimal `db:"current_price"`
	PurchasedOn    time.Time       `db:"purchased_on"`
	PriceUpdatedAt *time.Time      `db:"price_updated_at"`
	ConvertedAmount
	AuditFields
}
