package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse is the wire shape of the dashboard summary.
type DashboardSummaryResponse struct {
	BaseCurrency         string                   `json:"baseCurrency"`
	From                 *time.Time               `json:"from,omitempty"`
	To                   *time.Time               `json:"to,omitempty"`
	TotalIncome          MoneyResponse            `json:"totalIncome"`
	TotalExpenses        MoneyResponse            `json:"totalExpenses"`
	NetCashFlow          MoneyResponse            `json:"netCashFlow"`
	TotalSavings         MoneyResponse            `json:"totalSavings"`
	PortfolioValue       MoneyResponse            `json:"portfolioValue"`
	NetWorth             MoneyResponse            `json:"netWorth"`
	SavingsRatePercent   decimal.Decimal          `json:"savingsRatePercent"`
	ExpensesByCategory   map[string]MoneyResponse `json:"expensesByCategory"`
	IncomeBySource       map[string]MoneyResponse `json:"incomeBySource"`
	PortfolioByAssetType map[string]MoneyResponse `json:"portfolioByAssetType"`
	NetByMonth           map[string]MoneyResponse `json:"netByMonth"`
	LastRateSync         *time.Time               `json:"lastRateSync,omitempty"`
	GeneratedAt          time.Time                `json:"generatedAt"`
}

func toMoneyMap(in map[string]domain.Money) map[string]MoneyResponse {
	out := make(map[string]MoneyResponse, len(in))
	for k, v := range in {
		out[k] = ToMoneyResponse(v)
	}
	return out
}

func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		BaseCurrency:         s.BaseCurrency,
		From:                 s.From,
		To:                   s.To,
		TotalIncome:          ToMoneyResponse(s.TotalIncome),
		TotalExpenses:        ToMoneyResponse(s.TotalExpenses),
		NetCashFlow:          ToMoneyResponse(s.NetCashFlow),
		TotalSavings:         ToMoneyResponse(s.TotalSavings),
		PortfolioValue:       ToMoneyResponse(s.PortfolioValue),
		NetWorth:             ToMoneyResponse(s.NetWorth),
		SavingsRatePercent:   s.SavingsRate.Value(),
		ExpensesByCategory:   toMoneyMap(s.ExpensesByCategory),
		IncomeBySource:       toMoneyMap(s.IncomeBySource),
		PortfolioByAssetType: toMoneyMap(s.PortfolioByAssetType),
		NetByMonth:           toMoneyMap(s.NetByMonth),
		LastRateSync:         s.LastRateSync,
		GeneratedAt:          s.GeneratedAt,
	}
}
