package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvestmentRequest is the body of POST /investments.
type CreateInvestmentRequest struct {
	Symbol        string          `json:"symbol" binding:"required,max=32"`
	Name          string          `json:"name" binding:"max=200"`
	AssetType     string          `json:"assetType" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Currency      string          `json:"currency" binding:"required,len=3,alpha"`
	PurchasedOn   time.Time       `json:"purchasedOn" binding:"required"`
}

// UpdateInvestmentRequest is the body of PUT /investments/:id. Nil fields are left unchanged.
type UpdateInvestmentRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=200"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice"`
	PurchasedOn   *time.Time       `json:"purchasedOn"`
}

// InvestmentResponse is the wire shape of a holding.
type InvestmentResponse struct {
	InvestmentID   string                  `json:"investmentID"`
	Symbol         string                  `json:"symbol"`
	Name           string                  `json:"name"`
	AssetType      domain.AssetType        `json:"assetType"`
	Quantity       decimal.Decimal         `json:"quantity"`
	PurchasePrice  MoneyResponse           `json:"purchasePrice"`
	CurrentPrice   MoneyResponse           `json:"currentPrice"`
	MarketValue    MoneyResponse           `json:"marketValue"`
	GainLoss       *MoneyResponse          `json:"gainLoss,omitempty"`
	CostBasis      ConvertedAmountResponse `json:"costBasis"`
	PurchasedOn    time.Time               `json:"purchasedOn"`
	PriceUpdatedAt *time.Time              `json:"priceUpdatedAt,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

func ToInvestmentResponse(i *domain.Investment) InvestmentResponse {
	resp := InvestmentResponse{
		InvestmentID:   i.InvestmentID,
		Symbol:         i.Symbol,
		Name:           i.Name,
		AssetType:      i.AssetType,
		Quantity:       i.Quantity,
		PurchasePrice:  ToMoneyResponse(i.PurchasePrice),
		CurrentPrice:   ToMoneyResponse(i.CurrentPrice),
		MarketValue:    ToMoneyResponse(i.MarketValue()),
		CostBasis:      ToConvertedAmountResponse(i.CostBasis),
		PurchasedOn:    i.PurchasedOn,
		PriceUpdatedAt: i.PriceUpdatedAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.LastUpdatedAt,
	}
	if gain, err := i.GainLoss(); err == nil {
		g := ToMoneyResponse(gain)
		resp.GainLoss = &g
	}
	return resp
}

func ToInvestmentResponses(investments []domain.Investment) []InvestmentResponse {
	out := make([]InvestmentResponse, 0, len(investments))
	for i := range investments {
		out = append(out, ToInvestmentResponse(&investments[i]))
	}
	return out
}
