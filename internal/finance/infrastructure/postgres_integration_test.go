//go:build integration

package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	database "github.com/sebuszqo/FinanceTracker/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("finance_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dbService, err := database.NewDBService(connStr, database.Options{MaxOpenConns: 5, MaxIdleConns: 5, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { dbService.Close() })

	require.NoError(t, database.RunMigrations(dbService.DB))
	return dbService.DB
}

func insertUser(t *testing.T, db *sql.DB, email string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`, id, "Test", email, "hash")
	require.NoError(t, err)
	return id
}

func TestTransactionRepository_Postgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := NewTransactionRepository(db)

	owner := insertUser(t, db, "owner@example.com")
	other := insertUser(t, db, "other@example.com")

	now := time.Now().UTC().Truncate(time.Microsecond)
	jan := domain.Transaction{
		ID: uuid.NewString(), UserID: owner, Type: domain.TypeIncome, Description: "Salário",
		Amount: decimal.RequireFromString("1000.00"), Category: "Salário", Date: domain.NewDate(2024, time.January, 5),
		CreatedAt: now, UpdatedAt: now,
	}
	feb := domain.Transaction{
		ID: uuid.NewString(), UserID: owner, Type: domain.TypeExpense, Description: "Cinema",
		Amount: decimal.RequireFromString("45.90"), Category: "Lazer", Date: domain.NewDate(2024, time.February, 1),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Save(ctx, jan))
	require.NoError(t, repo.Save(ctx, feb))

	list, err := repo.FindByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, feb.ID, list[0].ID, "newest date first")
	assert.True(t, list[1].Amount.Equal(jan.Amount))
	assert.Equal(t, jan.Date, list[1].Date)

	empty, err := repo.FindByUser(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repo.FindByID(ctx, other, jan.ID)
	assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)

	feb.Description = "Teatro"
	feb.Amount = decimal.RequireFromString("80")
	affected, err := repo.Update(ctx, feb)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.FindByID(ctx, owner, feb.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teatro", got.Description)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(80)))

	affected, err = repo.Delete(ctx, other, feb.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.Delete(ctx, owner, feb.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestGoalRepository_Postgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := NewGoalRepository(db)

	owner := insertUser(t, db, "goals@example.com")
	goal := domain.Goal{ID: uuid.NewString(), UserID: owner, Description: "Viagem", Amount: decimal.NewFromInt(5000), CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Save(ctx, goal))

	goals, err := repo.FindByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Viagem", goals[0].Description)

	affected, err := repo.Delete(ctx, owner, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	goals, err = repo.FindByUser(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, goals)
}
