package db

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	database "finance-tracker-server/src/db"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	pgOnce sync.Once
	pgPool *pgxpool.Pool
	pgStartErr  error
)

// startPostgres starts one Postgres container per test process and applies
// the schema.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}

	pgOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "finance",
				"POSTGRES_PASSWORD": "finance",
				"POSTGRES_DB":       "finance",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(90 * time.Second),
		}

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			pgStartErr = fmt.Errorf("start Postgres container: %w", err)
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			container.Terminate(ctx)
			pgStartErr = fmt.Errorf("get Postgres host: %w", err)
			return
		}
		port, err := container.MappedPort(ctx, "5432/tcp")
		if err != nil {
			container.Terminate(ctx)
			pgStartErr = fmt.Errorf("get Postgres port: %w", err)
			return
		}

		url := fmt.Sprintf("postgres://finance:finance@%s:%s/finance?sslmode=disable", host, port.Port())
		pgPool, pgStartErr = database.Connect(ctx, url)
		if pgStartErr != nil {
			return
		}
		pgStartErr = database.Migrate(ctx, pgPool)
	})

	if pgStartErr != nil {
		t.Fatalf("Postgres container failed: %v", pgStartErr)
	}
	return pgPool
}

func newUser(t *testing.T, pool *pgxpool.Pool, name string) *models.User {
	t.Helper()
	user, err := CreateUser(context.Background(), pool, models.RegisterRequest{
		Username: name + fmt.Sprint(time.Now().UnixNano()),
		Email:    fmt.Sprintf("%s%d@example.com", name, time.Now().UnixNano()),
	}, "hash")
	require.NoError(t, err)
	return user
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMigrate_Idempotent(t *testing.T) {
	pool := startPostgres(t)
	require.NoError(t, database.Migrate(context.Background(), pool))
}

func TestTransactions_RoundTrip(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	user := newUser(t, pool, "alice")
	remote := NewRemote(pool, user.ID)

	older, err := remote.InsertTransaction(ctx, models.TransactionInput{
		Type: models.TransactionIncome, Amount: dec("5000.00"), Category: "Salary",
		Date: models.NewDate(2024, time.January, 1),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, older.ID)
	assert.Equal(t, user.ID, older.UserID)

	newer, err := remote.InsertTransaction(ctx, models.TransactionInput{
		Type: models.TransactionExpense, Amount: dec("12.34"), Category: "Food",
		Description: "lunch", Date: models.NewDate(2024, time.February, 3),
	})
	require.NoError(t, err)

	list, err := remote.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.True(t, list[0].Amount.Equal(dec("12.34")))
	assert.Equal(t, "2024-02-03", list[0].Date.String())
	assert.Equal(t, "lunch", list[0].Description)

	changed := *newer
	changed.Amount = dec("15")
	updated, err := remote.UpdateTransaction(ctx, changed)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("15")))

	require.NoError(t, remote.DeleteTransaction(ctx, older.ID))
	list, err = remote.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestTransactions_UnknownIDs(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	remote := NewRemote(pool, newUser(t, pool, "bob").ID)

	err := remote.DeleteTransaction(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = remote.DeleteTransaction(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = remote.UpdateTransaction(ctx, models.Transaction{
		ID: "00000000-0000-0000-0000-000000000000", Type: models.TransactionIncome,
		Amount: dec("1"), Category: "x", Date: models.NewDate(2024, 1, 1),
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTransactions_OwnerIsolation(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	alice := NewRemote(pool, newUser(t, pool, "carol").ID)
	mallory := NewRemote(pool, newUser(t, pool, "mallory").ID)

	created, err := alice.InsertTransaction(ctx, models.TransactionInput{
		Type: models.TransactionExpense, Amount: dec("9.99"), Category: "Food",
		Date: models.NewDate(2024, 3, 1),
	})
	require.NoError(t, err)

	list, err := mallory.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, mallory.DeleteTransaction(ctx, created.ID), store.ErrNotFound)

	list, err = alice.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestInvestments_RoundTrip(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	remote := NewRemote(pool, newUser(t, pool, "dave").ID)

	created, err := remote.InsertInvestment(ctx, models.InvestmentInput{
		Symbol: "AAPL", Shares: dec("10.5"), PurchasePrice: dec("100"), CurrentPrice: dec("150.123456"),
		PurchaseDate: models.NewDate(2023, 6, 1),
	})
	require.NoError(t, err)

	list, err := remote.ListInvestments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Shares.Equal(dec("10.5")))
	assert.True(t, list[0].CurrentPrice.Equal(dec("150.123456")))
	assert.Equal(t, "2023-06-01", list[0].PurchaseDate.String())

	changed := *created
	changed.CurrentPrice = dec("90")
	_, err = remote.UpdateInvestment(ctx, changed)
	require.NoError(t, err)

	require.NoError(t, remote.DeleteInvestment(ctx, created.ID))
	assert.ErrorIs(t, remote.DeleteInvestment(ctx, created.ID), store.ErrNotFound)
}

func TestUsers(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	users := Users{Pool: pool}

	req := models.RegisterRequest{Username: "Erin", Email: "erin@example.com", FirstName: "Erin"}
	created, err := users.CreateUser(ctx, req, "hash")
	require.NoError(t, err)
	assert.False(t, created.SuperAdmin)
	assert.Nil(t, created.LastLogin)

	_, err = users.CreateUser(ctx, req, "hash")
	assert.ErrorIs(t, err, store.ErrDuplicate)

	byName, err := users.GetUserByLogin(ctx, "erin")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := users.GetUserByLogin(ctx, "ERIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	require.NoError(t, users.UpdateLastLogin(ctx, created.ID))
	fetched, err := users.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, fetched.LastLogin)

	remote := NewRemote(pool, created.ID)
	_, err = remote.InsertTransaction(ctx, models.TransactionInput{
		Type: models.TransactionIncome, Amount: dec("1"), Category: "Other", Date: models.NewDate(2024, 1, 1),
	})
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(ctx, created.ID))
	_, err = users.GetUserByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	list, err := remote.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
