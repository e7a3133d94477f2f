// Package finance derives the aggregate figures shown on the dashboard. Every
// function is pure and recomputes from the lists it is given.
package finance

import (
	"finance-tracker-server/src/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize totals income and expenses. NetBalance is always exactly
// TotalIncome minus TotalExpenses.
func Summarize(transactions []models.Transaction) models.Summary {
	var s models.Summary
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case models.TransactionExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.NetBalance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// ExpensesByCategory groups expenses by category in the order each category
// first appears. Income is ignored.
func ExpensesByCategory(transactions []models.Transaction) []models.CategoryTotal {
	totals := []models.CategoryTotal{}
	index := map[string]int{}
	var all decimal.Decimal

	for _, t := range transactions {
		if t.Type != models.TransactionExpense {
			continue
		}
		all = all.Add(t.Amount)
		if i, ok := index[t.Category]; ok {
			totals[i].Amount = totals[i].Amount.Add(t.Amount)
			continue
		}
		index[t.Category] = len(totals)
		totals = append(totals, models.CategoryTotal{Category: t.Category, Amount: t.Amount})
	}

	if all.IsZero() {
		return totals
	}
	for i := range totals {
		totals[i].Percent = totals[i].Amount.Div(all).Mul(hundred).Round(2)
	}
	return totals
}

// Categories returns the suggested categories for kind followed by any other
// categories already used for that kind, without duplicates.
func Categories(kind models.TransactionType, transactions []models.Transaction) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, c := range models.SuggestedCategories[kind] {
		seen[c] = true
		out = append(out, c)
	}
	for _, t := range transactions {
		if t.Type != kind || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}
