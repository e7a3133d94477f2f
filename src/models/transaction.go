package models

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
}

// TransactionInput is a transaction as submitted by a form, before the store
// has assigned an identifier and owner.
type TransactionInput struct {
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
}

func (t Transaction) Input() TransactionInput {
	return TransactionInput{
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}

// WithInput returns a copy of t carrying the editable fields of in.
func (t Transaction) WithInput(in TransactionInput) Transaction {
	t.Type = in.Type
	t.Amount = in.Amount
	t.Category = in.Category
	t.Description = in.Description
	t.Date = in.Date
	return t
}

// SuggestedCategories are offered per kind when entering a transaction.
// Categories stay free-form; these are only suggestions.
var SuggestedCategories = map[TransactionType][]string{
	TransactionExpense: {"Food", "Rent", "Transport", "Entertainment", "Personal Care", "Healthcare", "Shopping", "Utilities"},
	TransactionIncome:  {"Salary", "Freelance", "Investment", "Business", "Other"},
}
