package db

import (
	"context"

	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Remote is the Postgres-backed store.Remote for a single user. Every
// statement is scoped to that user's rows.
type Remote struct {
	pool   *pgxpool.Pool
	userID int64
}

var _ store.Remote = (*Remote)(nil)

func NewRemote(pool *pgxpool.Pool, userID int64) *Remote {
	return &Remote{pool: pool, userID: userID}
}

func (r *Remote) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return GetTransactionsForUser(ctx, r.pool, r.userID)
}

func (r *Remote) InsertTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	return CreateTransaction(ctx, r.pool, r.userID, in)
}

func (r *Remote) UpdateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	return UpdateTransaction(ctx, r.pool, r.userID, t)
}

func (r *Remote) DeleteTransaction(ctx context.Context, id string) error {
	return DeleteTransaction(ctx, r.pool, r.userID, id)
}

func (r *Remote) ListInvestments(ctx context.Context) ([]models.Investment, error) {
	return GetInvestmentsForUser(ctx, r.pool, r.userID)
}

func (r *Remote) InsertInvestment(ctx context.Context, in models.InvestmentInput) (*models.Investment, error) {
	return CreateInvestment(ctx, r.pool, r.userID, in)
}

func (r *Remote) UpdateInvestment(ctx context.Context, inv models.Investment) (*models.Investment, error) {
	return UpdateInvestment(ctx, r.pool, r.userID, inv)
}

func (r *Remote) DeleteInvestment(ctx context.Context, id string) error {
	return DeleteInvestment(ctx, r.pool, r.userID, id)
}

// Users exposes the account queries on a pool.
type Users struct {
	Pool *pgxpool.Pool
}

func (u Users) CreateUser(ctx context.Context, req models.RegisterRequest, hashedPassword string) (*models.User, error) {
	return CreateUser(ctx, u.Pool, req, hashedPassword)
}

func (u Users) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return GetUserByID(ctx, u.Pool, id)
}

func (u Users) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return GetUserByLogin(ctx, u.Pool, login)
}

func (u Users) UpdateLastLogin(ctx context.Context, id int64) error {
	return UpdateUserLastLogin(ctx, u.Pool, id)
}

func (u Users) DeleteUser(ctx context.Context, id int64) error {
	return DeleteUser(ctx, u.Pool, id)
}
