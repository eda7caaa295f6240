package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyResponse is the wire shape of a domain.Money.
type MoneyResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
}

// ToMoneyResponse converts a domain.Money to its wire shape.
func ToMoneyResponse(m domain.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount(), Currency: m.Currency(), Formatted: m.String()}
}

// ConvertedAmountResponse shows the entered amount next to its base value.
type ConvertedAmountResponse struct {
	Original MoneyResponse   `json:"original"`
	Base     MoneyResponse   `json:"base"`
	RateUsed decimal.Decimal `json:"rateUsed"`
}

func ToConvertedAmountResponse(a domain.ConvertedAmount) ConvertedAmountResponse {
	return ConvertedAmountResponse{
		Original: ToMoneyResponse(a.Original),
		Base:     ToMoneyResponse(a.Base),
		RateUsed: a.RateUsed,
	}
}

// ListRecordsParams are the query parameters shared by the record list endpoints.
type ListRecordsParams struct {
	From   *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To     *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit  int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int        `form:"offset" binding:"omitempty,min=0"`
}

// DateRange builds the optional domain range; both bounds are needed to filter.
func (p ListRecordsParams) DateRange() (*domain.DateRange, error) {
	if p.From == nil && p.To == nil {
		return nil, nil
	}
	from := time.Unix(0, 0).UTC()
	if p.From != nil {
		from = *p.From
	}
	to := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if p.To != nil {
		// inclusive of the whole end day
		to = p.To.Add(24*time.Hour - time.Nanosecond)
	}
	r, err := domain.NewDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RecurrenceResponse describes a record's repetition.
type RecurrenceResponse struct {
	Frequency      domain.RecurrenceFrequency `json:"frequency"`
	Interval       int                        `json:"interval,omitempty"`
	NextOccurrence *time.Time                 `json:"nextOccurrence,omitempty"`
}

func toRecurrenceResponse(r domain.Recurrence, last time.Time) RecurrenceResponse {
	resp := RecurrenceResponse{Frequency: r.Frequency(), Interval: r.Interval()}
	if next, ok := r.Next(last); ok {
		resp.NextOccurrence = &next
	}
	return resp
}
