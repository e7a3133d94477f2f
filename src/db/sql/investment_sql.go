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

const investmentColumns = `id::text, user_id, symbol, shares, purchase_price, current_price, purchase_date`

func scanInvestment(row pgx.Row) (*models.Investment, error) {
	var inv models.Investment
	err := row.Scan(&inv.ID, &inv.UserID, &inv.Symbol, &inv.Shares, &inv.PurchasePrice, &inv.CurrentPrice, &inv.PurchaseDate)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func GetInvestmentsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE user_id = $1
		ORDER BY purchase_date DESC, created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query investments: %w", err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		investments = append(investments, *inv)
	}
	return investments, rows.Err()
}

func CreateInvestment(ctx context.Context, pool *pgxpool.Pool, userID int64, in models.InvestmentInput) (*models.Investment, error) {
	query := `
		INSERT INTO investments (user_id, symbol, shares, purchase_price, current_price, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + investmentColumns
	inv, err := scanInvestment(pool.QueryRow(ctx, query,
		userID, in.Symbol, in.Shares, in.PurchasePrice, in.CurrentPrice, in.PurchaseDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return inv, nil
}

func UpdateInvestment(ctx context.Context, pool *pgxpool.Pool, userID int64, inv models.Investment) (*models.Investment, error) {
	if _, err := uuid.Parse(inv.ID); err != nil {
		return nil, store.ErrNotFound
	}
	query := `
		UPDATE investments
		SET symbol = $3, shares = $4, purchase_price = $5, current_price = $6, purchase_date = $7, updated_at = NOW()
		WHERE id = $1::uuid AND user_id = $2
		RETURNING ` + investmentColumns
	updated, err := scanInvestment(pool.QueryRow(ctx, query,
		inv.ID, userID, inv.Symbol, inv.Shares, inv.PurchasePrice, inv.CurrentPrice, inv.PurchaseDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}
	return updated, nil
}

func DeleteInvestment(ctx context.Context, pool *pgxpool.Pool, userID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrNotFound
	}
	tag, err := pool.Exec(ctx, `DELETE FROM investments WHERE id = $1::uuid AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
