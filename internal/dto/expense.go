package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the body of POST /expenses.
type CreateExpenseRequest struct {
	Category           string          `json:"category" binding:"required,max=100"`
	Description        string          `json:"description" binding:"max=500"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency" binding:"required,len=3,alpha"`
	SpentOn            time.Time       `json:"spentOn" binding:"required"`
	Recurrence         string          `json:"recurrence" binding:"omitempty,max=10"`
	RecurrenceInterval int             `json:"recurrenceInterval" binding:"omitempty,min=1"`
}

// UpdateExpenseRequest is the body of PUT /expenses/:id. Nil fields are left unchanged.
type UpdateExpenseRequest struct {
	Category           *string          `json:"category" binding:"omitempty,max=100"`
	Description        *string          `json:"description" binding:"omitempty,max=500"`
	Amount             *decimal.Decimal `json:"amount"`
	Currency           *string          `json:"currency" binding:"omitempty,len=3,alpha"`
	SpentOn            *time.Time       `json:"spentOn"`
	Recurrence         *string          `json:"recurrence" binding:"omitempty,max=10"`
	RecurrenceInterval *int             `json:"recurrenceInterval" binding:"omitempty,min=1"`
}

// ExpenseResponse is the wire shape of an expense record.
type ExpenseResponse struct {
	ExpenseID   string                  `json:"expenseID"`
	Category    string                  `json:"category"`
	Description string                  `json:"description"`
	Amount      ConvertedAmountResponse `json:"amount"`
	SpentOn     time.Time               `json:"spentOn"`
	Recurrence  RecurrenceResponse      `json:"recurrence"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      ToConvertedAmountResponse(e.Amount),
		SpentOn:     e.SpentOn,
		Recurrence:  toRecurrenceResponse(e.Recurrence, e.SpentOn),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.LastUpdatedAt,
	}
}

func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, ToExpenseResponse(&expenses[i]))
	}
	return out
}
