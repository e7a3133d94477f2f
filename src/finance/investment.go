package finance

import (
	"finance-tracker-server/src/models"

	"github.com/shopspring/decimal"
)

func Cost(inv models.Investment) decimal.Decimal {
	return inv.Shares.Mul(inv.PurchasePrice)
}

func Value(inv models.Investment) decimal.Decimal {
	return inv.Shares.Mul(inv.CurrentPrice)
}

// GainLossPercent returns gain over cost as a percentage. The second result is
// false when cost is zero and the percentage is undefined.
func GainLossPercent(gainLoss, cost decimal.Decimal) (decimal.Decimal, bool) {
	if cost.IsZero() {
		return decimal.Zero, false
	}
	return gainLoss.Div(cost).Mul(hundred), true
}

// Metrics computes the derived figures for one holding.
func Metrics(inv models.Investment) models.Holding {
	cost := Cost(inv)
	value := Value(inv)
	h := models.Holding{
		Investment: inv,
		Cost:       cost,
		Value:      value,
		GainLoss:   value.Sub(cost),
	}
	if pct, ok := GainLossPercent(h.GainLoss, cost); ok {
		h.GainLossPercent = &pct
	}
	return h
}

func Holdings(investments []models.Investment) []models.Holding {
	holdings := make([]models.Holding, 0, len(investments))
	for _, inv := range investments {
		holdings = append(holdings, Metrics(inv))
	}
	return holdings
}

// SummarizeInvestments totals value and cost across the portfolio. No
// percentage is computed here, so an empty portfolio is simply all zeros.
func SummarizeInvestments(investments []models.Investment) models.PortfolioSummary {
	var s models.PortfolioSummary
	for _, inv := range investments {
		s.TotalValue = s.TotalValue.Add(Value(inv))
		s.TotalCost = s.TotalCost.Add(Cost(inv))
	}
	s.TotalGainLoss = s.TotalValue.Sub(s.TotalCost)
	return s
}

// HoldingChart returns purchase against current value per holding, in list order.
func HoldingChart(investments []models.Investment) []models.HoldingPoint {
	points := make([]models.HoldingPoint, 0, len(investments))
	for _, inv := range investments {
		cost, value := Cost(inv), Value(inv)
		points = append(points, models.HoldingPoint{
			Symbol:        inv.Symbol,
			PurchaseValue: cost,
			CurrentValue:  value,
			GainLoss:      value.Sub(cost),
		})
	}
	return points
}
