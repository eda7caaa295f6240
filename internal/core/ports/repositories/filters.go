package repositories

import "github.com/SscSPs/fintrack_app/internal/core/domain"

// RecordFilter scopes list queries to one user and, optionally, a date range.
// A zero Limit means no limit.
type RecordFilter struct {
	UserID string
	Range  *domain.DateRange
	Limit  int
	Offset int
}

// Matches applies the filter in memory; SQL implementations push it into the query instead.
func (f RecordFilter) Matches(item domain.LineItem) bool {
	if f.UserID != "" && item.UserID != f.UserID {
		return false
	}
	if f.Range != nil && !f.Range.Contains(item.Date) {
		return false
	}
	return true
}
