package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConvertedAmount keeps what the user entered next to its base-currency value
// at the time the record was written.
type ConvertedAmount struct {
	Original Money           `json:"original"`
	Base     Money           `json:"base"`
	RateUsed decimal.Decimal `json:"rateUsed"`
}

// Income is money received.
type Income struct {
	IncomeID    string          `json:"incomeID"`
	UserID      string          `json:"userID"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	Amount      ConvertedAmount `json:"amount"`
	ReceivedOn  time.Time       `json:"receivedOn"`
	Recurrence  Recurrence      `json:"-"`
	AuditFields
}

func (i Income) LineItem() LineItem {
	return LineItem{UserID: i.UserID, Kind: LineItemIncome, Category: i.Source, Date: i.ReceivedOn, Amount: i.Amount.Base}
}

// Expense is money spent.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	UserID      string          `json:"userID"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      ConvertedAmount `json:"amount"`
	SpentOn     time.Time       `json:"spentOn"`
	Recurrence  Recurrence      `json:"-"`
	AuditFields
}

func (e Expense) LineItem() LineItem {
	return LineItem{UserID: e.UserID, Kind: LineItemExpense, Category: e.Category, Date: e.SpentOn, Amount: e.Amount.Base}
}

// Saving is a goal with an amount set aside towards a target.
type Saving struct {
	SavingID   string          `json:"savingID"`
	UserID     string          `json:"userID"`
	Goal       string          `json:"goal"`
	Target     Money           `json:"target"`
	Saved      ConvertedAmount `json:"saved"`
	TargetDate *time.Time      `json:"targetDate,omitempty"`
	AuditFields
}

// Progress is saved/target in the saving's own currency.
func (s Saving) Progress() Percentage {
	return PercentageOf(s.Saved.Original.Amount(), s.Target.Amount())
}

func (s Saving) LineItem() LineItem {
	return LineItem{UserID: s.UserID, Kind: LineItemSaving, Category: s.Goal, Date: s.LastUpdatedAt, Amount: s.Saved.Base}
}
