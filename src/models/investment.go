package models

import "github.com/shopspring/decimal"

type Investment struct {
	ID            string          `json:"id"`
	UserID        int64           `json:"user_id"`
	Symbol        string          `json:"symbol"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PurchaseDate  Date            `json:"purchase_date"`
}

type InvestmentInput struct {
	Symbol        string          `json:"symbol"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PurchaseDate  Date            `json:"purchase_date"`
}

func (i Investment) Input() InvestmentInput {
	return InvestmentInput{
		Symbol:        i.Symbol,
		Shares:        i.Shares,
		PurchasePrice: i.PurchasePrice,
		CurrentPrice:  i.CurrentPrice,
		PurchaseDate:  i.PurchaseDate,
	}
}

func (i Investment) WithInput(in InvestmentInput) Investment {
	i.Symbol = in.Symbol
	i.Shares = in.Shares
	i.PurchasePrice = in.PurchasePrice
	i.CurrentPrice = in.CurrentPrice
	i.PurchaseDate = in.PurchaseDate
	return i
}

// Holding is an investment together with its derived figures.
// GainLossPercent is nil when the cost basis is zero.
type Holding struct {
	Investment
	Cost            decimal.Decimal  `json:"cost"`
	Value           decimal.Decimal  `json:"value"`
	GainLoss        decimal.Decimal  `json:"gain_loss"`
	GainLossPercent *decimal.Decimal `json:"gain_loss_percent"`
}
