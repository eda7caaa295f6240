package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSavingRequest is the body of POST /savings. Saved and Target share Currency.
type CreateSavingRequest struct {
	Goal         string          `json:"goal" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Currency     string          `json:"currency" binding:"required,len=3,alpha"`
	TargetDate   *time.Time      `json:"targetDate"`
}

// UpdateSavingRequest is the body of PUT /savings/:id. Nil fields are left unchanged.
type UpdateSavingRequest struct {
	Goal         *string          `json:"goal" binding:"omitempty,max=100"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	SavedAmount  *decimal.Decimal `json:"savedAmount"`
	TargetDate   *time.Time       `json:"targetDate"`
}

// ContributionRequest adds (or with a negative amount, withdraws) money from a saving.
type ContributionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required,len=3,alpha"`
}

// SavingResponse is the wire shape of a savings goal.
type SavingResponse struct {
	SavingID   string                  `json:"savingID"`
	Goal       string                  `json:"goal"`
	Target     MoneyResponse           `json:"target"`
	Saved      ConvertedAmountResponse `json:"saved"`
	Progress   decimal.Decimal         `json:"progressPercent"`
	TargetDate *time.Time              `json:"targetDate,omitempty"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

func ToSavingResponse(s *domain.Saving) SavingResponse {
	return SavingResponse{
		SavingID:   s.SavingID,
		Goal:       s.Goal,
		Target:     ToMoneyResponse(s.Target),
		Saved:      ToConvertedAmountResponse(s.Saved),
		Progress:   s.Progress().Value(),
		TargetDate: s.TargetDate,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.LastUpdatedAt,
	}
}

func ToSavingResponses(savings []domain.Saving) []SavingResponse {
	out := make([]SavingResponse, 0, len(savings))
	for i := range savings {
		out = append(out, ToSavingResponse(&savings[i]))
	}
	return out
}
