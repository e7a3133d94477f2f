package store

import (
	"fmt"
	"strings"

	"finance-tracker-server/src/models"

	"github.com/shopspring/decimal"
)

// Column limits from schema.sql: amount is NUMERIC(14, 2), share counts and
// prices are NUMERIC(18, 6). Both leave 12 integer digits.
const (
	amountScale   = 2
	quantityScale = 6
)

var columnLimit = decimal.New(1, 12)

// fits reports whether v is stored by a column of the given scale without
// rounding or overflow.
func fits(v decimal.Decimal, scale int32) bool {
	return v.Equal(v.Round(scale)) && v.Abs().LessThan(columnLimit)
}

// NormalizeTransaction trims free text and checks the record invariants.
func NormalizeTransaction(in *models.TransactionInput) error {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)

	if !in.Type.Valid() {
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalid, models.TransactionIncome, models.TransactionExpense)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalid)
	}
	if !fits(in.Amount, amountScale) {
		return fmt.Errorf("%w: amount must have at most %d decimal places and fewer than 13 digits before the point", ErrInvalid, amountScale)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	return nil
}

func NormalizeInvestment(in *models.InvestmentInput) error {
	in.Symbol = strings.ToUpper(strings.TrimSpace(in.Symbol))

	if in.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalid)
	}
	if !in.Shares.IsPositive() {
		return fmt.Errorf("%w: shares must be greater than zero", ErrInvalid)
	}
	if in.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: purchase price cannot be negative", ErrInvalid)
	}
	if in.CurrentPrice.IsNegative() {
		return fmt.Errorf("%w: current price cannot be negative", ErrInvalid)
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"shares", in.Shares},
		{"purchase price", in.PurchasePrice},
		{"current price", in.CurrentPrice},
	} {
		if !fits(f.v, quantityScale) {
			return fmt.Errorf("%w: %s must have at most %d decimal places and fewer than 13 digits before the point", ErrInvalid, f.name, quantityScale)
		}
	}
	if in.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: purchase date is required", ErrInvalid)
	}
	return nil
}
