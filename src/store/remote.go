// Package store keeps one user's transactions and investments in memory and
// keeps them in step with the remote database.
package store

import (
	"context"
	"errors"

	"finance-tracker-server/src/models"
)

var (
	// ErrNotFound is returned when no record matches the identifier for the
	// current owner.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid record")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

// Remote is the persistence surface the store synchronizes with. An
// implementation is bound to a single owner; every call only sees and
// changes that owner's rows.
type Remote interface {
	// ListTransactions returns all transactions, most recent date first.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	InsertTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error)
	// UpdateTransaction replaces the record with the same ID and returns the
	// stored row, or ErrNotFound.
	UpdateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// ListInvestments returns all investments, most recent purchase first.
	ListInvestments(ctx context.Context) ([]models.Investment, error)
	InsertInvestment(ctx context.Context, in models.InvestmentInput) (*models.Investment, error)
	UpdateInvestment(ctx context.Context, inv models.Investment) (*models.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
}
