package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetExchangeRateRequest is the body of PUT /exchange-rates/:code.
// Rate is units of the currency per 1 unit of the base currency.
type SetExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// ExchangeRateResponse is the wire shape of a stored rate.
type ExchangeRateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	BaseCurrency string          `json:"baseCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	LastUpdated  time.Time       `json:"lastUpdated"`
	IsManual     bool            `json:"isManual"`
}

func ToExchangeRateResponse(rate *domain.ExchangeRate, base string) ExchangeRateResponse {
	return ExchangeRateResponse{
		CurrencyCode: rate.CurrencyCode,
		BaseCurrency: base,
		Rate:         rate.Rate,
		LastUpdated:  rate.LastUpdated,
		IsManual:     rate.IsManual,
	}
}

// ListExchangeRatesResponse wraps the rate list with sync metadata.
type ListExchangeRatesResponse struct {
	BaseCurrency string                 `json:"baseCurrency"`
	LastSyncTime *time.Time             `json:"lastSyncTime,omitempty"`
	Rates        []ExchangeRateResponse `json:"rates"`
}

func ToListExchangeRatesResponse(rates []domain.ExchangeRate, base string, lastSync *time.Time) ListExchangeRatesResponse {
	out := make([]ExchangeRateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, ToExchangeRateResponse(&rates[i], base))
	}
	return ListExchangeRatesResponse{BaseCurrency: base, LastSyncTime: lastSync, Rates: out}
}

// ConvertParams are the query parameters of GET /currencies/convert.
type ConvertParams struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,len=3,alpha"`
	To     string `form:"to" binding:"required,len=3,alpha"`
}

// ConversionResponse is the result of a conversion.
type ConversionResponse struct {
	From         MoneyResponse `json:"from"`
	To           MoneyResponse `json:"to"`
	BaseCurrency string        `json:"baseCurrency"`
}
