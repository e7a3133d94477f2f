package models

import "github.com/shopspring/decimal"

type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetBalance    decimal.Decimal `json:"net_balance"`
}

type PortfolioSummary struct {
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalGainLoss decimal.Decimal `json:"total_gain_loss"`
}

// CategoryTotal is the expense total for one category. Percent is the share
// of all expenses, rounded to two places.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// HoldingPoint is one bar group of the portfolio chart.
type HoldingPoint struct {
	Symbol        string          `json:"symbol"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	GainLoss      decimal.Decimal `json:"gain_loss"`
}

type Snapshot struct {
	Transactions []Transaction    `json:"transactions"`
	Investments  []Holding        `json:"investments"`
	Summary      Summary          `json:"summary"`
	Portfolio    PortfolioSummary `json:"portfolio"`
}
