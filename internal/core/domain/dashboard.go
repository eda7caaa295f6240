package domain

import "time"

// DashboardSummary is the read model behind the dashboard endpoint. All Money
// values are in BaseCurrency.
type DashboardSummary struct {
	UserID               string           `json:"userID"`
	BaseCurrency         string           `json:"baseCurrency"`
	From                 *time.Time       `json:"from,omitempty"`
	To                   *time.Time       `json:"to,omitempty"`
	TotalIncome          Money            `json:"totalIncome"`
	TotalExpenses        Money            `json:"totalExpenses"`
	NetCashFlow          Money            `json:"netCashFlow"`
	TotalSavings         Money            `json:"totalSavings"`
	PortfolioValue       Money            `json:"portfolioValue"`
	NetWorth             Money            `json:"netWorth"`
	SavingsRate          Percentage       `json:"savingsRate"`
	ExpensesByCategory   map[string]Money `json:"expensesByCategory"`
	IncomeBySource       map[string]Money `json:"incomeBySource"`
	PortfolioByAssetType map[string]Money `json:"portfolioByAssetType"`
	NetByMonth           map[string]Money `json:"netByMonth"`
	LastRateSync         *time.Time       `json:"lastRateSync,omitempty"`
	GeneratedAt          time.Time        `json:"generatedAt"`
}
