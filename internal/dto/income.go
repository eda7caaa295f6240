package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateIncomeRequest is the body of POST /incomes.
type CreateIncomeRequest struct {
	Source             string          `json:"source" binding:"required,max=100"`
	Description        string          `json:"description" binding:"max=500"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency" binding:"required,len=3,alpha"`
	ReceivedOn         time.Time       `json:"receivedOn" binding:"required"`
	Recurrence         string          `json:"recurrence" binding:"omitempty,max=10"`
	RecurrenceInterval int             `json:"recurrenceInterval" binding:"omitempty,min=1"`
}

// UpdateIncomeRequest is the body of PUT /incomes/:id. Nil fields are left unchanged.
type UpdateIncomeRequest struct {
	Source             *string          `json:"source" binding:"omitempty,max=100"`
	Description        *string          `json:"description" binding:"omitempty,max=500"`
	Amount             *decimal.Decimal `json:"amount"`
	Currency           *string          `json:"currency" binding:"omitempty,len=3,alpha"`
	ReceivedOn         *time.Time       `json:"receivedOn"`
	Recurrence         *string          `json:"recurrence" binding:"omitempty,max=10"`
	RecurrenceInterval *int             `json:"recurrenceInterval" binding:"omitempty,min=1"`
}

// IncomeResponse is the wire shape of an income record.
type IncomeResponse struct {
	IncomeID    string                  `json:"incomeID"`
	Source      string                  `json:"source"`
	Description string                  `json:"description"`
	Amount      ConvertedAmountResponse `json:"amount"`
	ReceivedOn  time.Time               `json:"receivedOn"`
	Recurrence  RecurrenceResponse      `json:"recurrence"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func ToIncomeResponse(i *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:    i.IncomeID,
		Source:      i.Source,
		Description: i.Description,
		Amount:      ToConvertedAmountResponse(i.Amount),
		ReceivedOn:  i.ReceivedOn,
		Recurrence:  toRecurrenceResponse(i.Recurrence, i.ReceivedOn),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.LastUpdatedAt,
	}
}

func ToIncomeResponses(incomes []domain.Income) []IncomeResponse {
	out := make([]IncomeResponse, 0, len(incomes))
	for i := range incomes {
		out = append(out, ToIncomeResponse(&incomes[i]))
	}
	return out
}
