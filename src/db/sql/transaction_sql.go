package db

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id::text, user_id, type, amount, category, description, date`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Description, &t.Date)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func GetTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, userID int64, in models.TransactionInput) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, category, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns
	t, err := scanTransaction(pool.QueryRow(ctx, query,
		userID, in.Type, in.Amount, in.Category, in.Description, in.Date))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return t, nil
}

// UpdateTransaction overwrites every field of the owner's row. The last write
// wins.
func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID int64, t models.Transaction) (*models.Transaction, error) {
	if _, err := uuid.Parse(t.ID); err != nil {
		return nil, store.ErrNotFound
	}
	query := `
		UPDATE transactions
		SET type = $3, amount = $4, category = $5, description = $6, date = $7, updated_at = NOW()
		WHERE id = $1::uuid AND user_id = $2
		RETURNING ` + transactionColumns
	updated, err := scanTransaction(pool.QueryRow(ctx, query,
		t.ID, userID, t.Type, t.Amount, t.Category, t.Description, t.Date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return updated, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrNotFound
	}
	tag, err := pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1::uuid AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
