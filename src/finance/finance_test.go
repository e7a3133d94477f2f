package finance

import (
	"math/rand"
	"testing"

	"finance-tracker-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(kind models.TransactionType, amount, category string) models.Transaction {
	return models.Transaction{Type: kind, Amount: dec(amount), Category: category}
}

func TestSummarize_Example(t *testing.T) {
	s := Summarize([]models.Transaction{
		txn(models.TransactionIncome, "5000", "Salary"),
		txn(models.TransactionExpense, "1200", "Rent"),
		txn(models.TransactionExpense, "300", "Food"),
	})

	assert.True(t, s.TotalIncome.Equal(dec("5000")), s.TotalIncome.String())
	assert.True(t, s.TotalExpenses.Equal(dec("1500")), s.TotalExpenses.String())
	assert.True(t, s.NetBalance.Equal(dec("3500")), s.NetBalance.String())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.NetBalance.IsZero())
}

func TestSummarize_NetBalanceIsExact(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		var list []models.Transaction
		n := r.Intn(40)
		for i := 0; i < n; i++ {
			kind := models.TransactionIncome
			if r.Intn(2) == 0 {
				kind = models.TransactionExpense
			}
			amount := decimal.New(int64(1+r.Intn(1_000_000)), -2)
			list = append(list, models.Transaction{Type: kind, Amount: amount})
		}

		s := Summarize(list)
		assert.True(t, s.TotalIncome.Sub(s.TotalExpenses).Equal(s.NetBalance))
	}
}

func TestSummarize_CentsDoNotDrift(t *testing.T) {
	var list []models.Transaction
	for i := 0; i < 10; i++ {
		list = append(list, txn(models.TransactionIncome, "0.10", "Other"))
	}
	list = append(list, txn(models.TransactionExpense, "1.00", "Food"))

	s := Summarize(list)
	assert.True(t, s.NetBalance.IsZero(), s.NetBalance.String())
}

func TestMetrics_Example(t *testing.T) {
	h := Metrics(models.Investment{
		Symbol:        "AAPL",
		Shares:        dec("10"),
		PurchasePrice: dec("100"),
		CurrentPrice:  dec("150"),
	})

	assert.True(t, h.Cost.Equal(dec("1000")))
	assert.True(t, h.Value.Equal(dec("1500")))
	assert.True(t, h.GainLoss.Equal(dec("500")))
	require.NotNil(t, h.GainLossPercent)
	assert.True(t, h.GainLossPercent.Equal(dec("50")), h.GainLossPercent.String())
}

func TestMetrics_ZeroCostHasNoPercent(t *testing.T) {
	h := Metrics(models.Investment{
		Shares:        dec("5"),
		PurchasePrice: decimal.Zero,
		CurrentPrice:  dec("2"),
	})

	assert.True(t, h.GainLoss.Equal(dec("10")))
	assert.Nil(t, h.GainLossPercent)
}

func TestMetrics_GainLossMatchesDefinition(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		inv := models.Investment{
			Shares:        decimal.New(int64(1+r.Intn(100000)), -3),
			PurchasePrice: decimal.New(int64(r.Intn(100000)), -2),
			CurrentPrice:  decimal.New(int64(r.Intn(100000)), -2),
		}
		want := inv.Shares.Mul(inv.CurrentPrice).Sub(inv.Shares.Mul(inv.PurchasePrice))
		assert.True(t, Metrics(inv).GainLoss.Equal(want))
	}
}

func TestMetrics_Loss(t *testing.T) {
	h := Metrics(models.Investment{Shares: dec("4"), PurchasePrice: dec("50"), CurrentPrice: dec("40")})

	assert.True(t, h.GainLoss.Equal(dec("-40")))
	require.NotNil(t, h.GainLossPercent)
	assert.True(t, h.GainLossPercent.Equal(dec("-20")))
}

func TestSummarizeInvestments_Empty(t *testing.T) {
	s := SummarizeInvestments(nil)
	assert.True(t, s.TotalValue.IsZero())
	assert.True(t, s.TotalCost.IsZero())
	assert.True(t, s.TotalGainLoss.IsZero())
}

func TestSummarizeInvestments_Totals(t *testing.T) {
	s := SummarizeInvestments([]models.Investment{
		{Symbol: "AAPL", Shares: dec("10"), PurchasePrice: dec("100"), CurrentPrice: dec("150")},
		{Symbol: "MSFT", Shares: dec("2"), PurchasePrice: dec("300"), CurrentPrice: dec("250")},
	})

	assert.True(t, s.TotalCost.Equal(dec("1600")))
	assert.True(t, s.TotalValue.Equal(dec("2000")))
	assert.True(t, s.TotalGainLoss.Equal(dec("400")))
}

func TestExpensesByCategory_FirstSeenOrder(t *testing.T) {
	totals := ExpensesByCategory([]models.Transaction{
		txn(models.TransactionExpense, "30", "Food"),
		txn(models.TransactionIncome, "5000", "Salary"),
		txn(models.TransactionExpense, "60", "Rent"),
		txn(models.TransactionExpense, "10", "Food"),
	})

	require.Len(t, totals, 2)
	assert.Equal(t, "Food", totals[0].Category)
	assert.True(t, totals[0].Amount.Equal(dec("40")))
	assert.True(t, totals[0].Percent.Equal(dec("40")))
	assert.Equal(t, "Rent", totals[1].Category)
	assert.True(t, totals[1].Percent.Equal(dec("60")))
}

func TestExpensesByCategory_NoExpenses(t *testing.T) {
	totals := ExpensesByCategory([]models.Transaction{txn(models.TransactionIncome, "10", "Salary")})
	assert.NotNil(t, totals)
	assert.Empty(t, totals)
}

func TestHoldingChart(t *testing.T) {
	points := HoldingChart([]models.Investment{
		{Symbol: "VTI", Shares: dec("3"), PurchasePrice: dec("200"), CurrentPrice: dec("210")},
	})

	require.Len(t, points, 1)
	assert.Equal(t, "VTI", points[0].Symbol)
	assert.True(t, points[0].PurchaseValue.Equal(dec("600")))
	assert.True(t, points[0].CurrentValue.Equal(dec("630")))
	assert.True(t, points[0].GainLoss.Equal(dec("30")))
}

func TestCategories_SuggestedThenUsed(t *testing.T) {
	cats := Categories(models.TransactionExpense, []models.Transaction{
		txn(models.TransactionExpense, "5", "Food"),
		txn(models.TransactionExpense, "5", "Pets"),
		txn(models.TransactionIncome, "5", "Gifts"),
		txn(models.TransactionExpense, "5", "Pets"),
	})

	suggested := models.SuggestedCategories[models.TransactionExpense]
	require.Len(t, cats, len(suggested)+1)
	assert.Equal(t, suggested, cats[:len(suggested)])
	assert.Equal(t, "Pets", cats[len(cats)-1])
	assert.NotContains(t, cats, "Gifts")
}

func TestCategories_UnknownKind(t *testing.T) {
	assert.Empty(t, Categories("transfer", nil))
}
