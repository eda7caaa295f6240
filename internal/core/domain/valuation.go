package domain

import "time"

// LineItemKind tags what kind of record a line item came from.
type LineItemKind string

const (
	LineItemIncome     LineItemKind = "INCOME"
	LineItemExpense    LineItemKind = "EXPENSE"
	LineItemSaving     LineItemKind = "SAVING"
	LineItemInvestment LineItemKind = "INVESTMENT"
)

// LineItem is anything carrying a Money value that can be aggregated.
type LineItem struct {
	UserID   string
	Kind     LineItemKind
	Category string
	Date     time.Time
	Amount   Money
}

// LineItemSource is implemented by records that contribute to aggregates.
type LineItemSource interface {
	LineItem() LineItem
}

// LineItemsOf flattens records into line items.
func LineItemsOf[T LineItemSource](records []T) []LineItem {
	items := make([]LineItem, 0, len(records))
	for _, r := range records {
		items = append(items, r.LineItem())
	}
	return items
}
