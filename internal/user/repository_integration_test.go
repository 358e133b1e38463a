//go:build integration

package user

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	database "github.com/sebuszqo/FinanceTracker/db"
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
		postgres.WithDatabase("users_test"),
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

func TestUserRepository_Postgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	ana := &User{
		ID:           uuid.NewString(),
		Name:         "Ana",
		Email:        "Ana.Souza@Example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.createUser(ctx, ana))

	found, err := repo.getUserByEmail(ctx, "ana.souza@example.COM")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, found.ID)
	assert.Equal(t, ana.Email, found.Email)
	assert.Equal(t, "hash", found.PasswordHash)

	byID, err := repo.getUserByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)

	duplicate := &User{
		ID:           uuid.NewString(),
		Name:         "Outra Ana",
		Email:        "ana.souza@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	assert.ErrorIs(t, repo.createUser(ctx, duplicate), ErrEmailAlreadyExists)

	_, err = repo.getUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.getUserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
