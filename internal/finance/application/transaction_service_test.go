package application

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = "owner-1"
	strangerID = "stranger-2"
)

func newExpense(description, amount, category string, date domain.Date) *domain.Transaction {
	return &domain.Transaction{
		Type:        domain.TypeExpense,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Date:        date,
	}
}

func TestCreateTransaction_AssignsIdentityAndOwner(t *testing.T) {
	service := NewTransactionService(infrastructure.NewMemoryTransactionRepository())
	ctx := context.Background()

	transaction := newExpense("  Aluguel  ", "1200.456", "Moradia", domain.NewDate(2024, time.March, 1))
	require.NoError(t, service.CreateTransaction(ctx, ownerID, transaction))

	_, err := uuid.Parse(transaction.ID)
	assert.NoError(t, err)
	assert.Equal(t, ownerID, transaction.UserID)
	assert.Equal(t, "Aluguel", transaction.Description)
	assert.True(t, transaction.Amount.Equal(decimal.RequireFromString("1200.46")))
	assert.False(t, transaction.CreatedAt.IsZero())

	list, err := service.GetUserTransactions(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, transaction.ID, list[0].ID)
}

func TestCreateTransaction_RejectsInvalidInput(t *testing.T) {
	service := NewTransactionService(infrastructure.NewMemoryTransactionRepository())
	ctx := context.Background()

	tests := []struct {
		name        string
		transaction *domain.Transaction
	}{
		{"zero amount", newExpense("Cinema", "0", "Lazer", domain.NewDate(2024, time.March, 1))},
		{"negative amount", newExpense("Cinema", "-5", "Lazer", domain.NewDate(2024, time.March, 1))},
		{"income category on expense", newExpense("Cinema", "10", "Salário", domain.NewDate(2024, time.March, 1))},
		{"missing date", newExpense("Cinema", "10", "Lazer", domain.Date{})},
		{"blank description", newExpense("   ", "10", "Lazer", domain.NewDate(2024, time.March, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateTransaction(ctx, ownerID, tt.transaction)
			assert.True(t, financeErrors.IsValidationError(err), "expected validation error, got %v", err)
		})
	}

	list, err := service.GetUserTransactions(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetUserTransactions_IsolatedPerOwner(t *testing.T) {
	service := NewTransactionService(infrastructure.NewMemoryTransactionRepository())
	ctx := context.Background()

	require.NoError(t, service.CreateTransaction(ctx, ownerID, newExpense("Mercado", "50", "Alimentação", domain.NewDate(2024, time.January, 2))))

	list, err := service.GetUserTransactions(ctx, strangerID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUpdateTransaction_KeepsTypeAndRevalidatesCategory(t *testing.T) {
	service := NewTransactionService(infrastructure.NewMemoryTransactionRepository())
	ctx := context.Background()

	transaction := newExpense("Ônibus", "4.40", "Transporte", domain.NewDate(2024, time.April, 10))
	require.NoError(t, service.CreateTransaction(ctx, ownerID, transaction))

	updated, err := service.UpdateTransaction(ctx, ownerID, transaction.ID, domain.TransactionChanges{
		Description: "Metrô",
		Amount:      decimal.RequireFromString("5"),
		Category:    "Transporte",
		Date:        domain.NewDate(2024, time.April, 11),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeExpense, updated.Type)
	assert.Equal(t, "Metrô", updated.Description)

	_, err = service.UpdateTransaction(ctx, ownerID, transaction.ID, domain.TransactionChanges{
		Description: "Metrô",
		Amount:      decimal.RequireFromString("5"),
		Category:    "Salário",
		Date:        domain.NewDate(2024, time.April, 11),
	})
	assert.True(t, financeErrors.IsValidationError(err))

	list, err := service.GetUserTransactions(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Transporte", list[0].Category)
	assert.Equal(t, "Metrô", list[0].Description)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	service := NewTransactionService(infrastructure.NewMemoryTransactionRepository())
	ctx := context.Background()

	transaction := newExpense("Luz", "120", "Contas", domain.NewDate(2024, time.May, 5))
	require.NoError(t, service.CreateTransaction(ctx, ownerID, transaction))

	changes := domain.TransactionChanges{Description: "Luz", Amount: decimal.NewFromInt(1), Category: "Contas", Date: domain.NewDate(2024, time.May, 5)}

	_, err := service.UpdateTransaction(ctx, strangerID, transaction.ID, changes)
	assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)

	_, err = service.UpdateTransaction(ctx, ownerID, "not-a-uuid", changes)
	assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)

	_, err = service.UpdateTransaction(ctx, ownerID, uuid.NewString(), changes)
	assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
}

func TestUpdateTransaction_RecordVanishesBeforeWrite(t *testing.T) {
	id := uuid.NewString()
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{*newExpense("Luz", "120", "Contas", domain.NewDate(2024, time.May, 5))},
		Affected:     0,
	}
	repo.Transactions[0].ID = id
	repo.Transactions[0].UserID = ownerID
	service := NewTransactionService(repo)

	changes := domain.TransactionChanges{Description: "Água", Amount: decimal.NewFromInt(80), Category: "Contas", Date: domain.NewDate(2024, time.May, 6)}
	_, err := service.UpdateTransaction(context.Background(), ownerID, id, changes)

	assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
	require.Len(t, repo.Updated, 1)
	assert.Equal(t, "Água", repo.Updated[0].Description)
	assert.Equal(t, domain.TypeExpense, repo.Updated[0].Type)
}

func TestTransactionService_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	repo := &infrastructure.MockTransactionRepository{SaveErr: boom, FindErr: boom, DeleteErr: boom}
	service := NewTransactionService(repo)

	err := service.CreateTransaction(ctx, ownerID, newExpense("Luz", "120", "Contas", domain.NewDate(2024, time.May, 5)))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, repo.Saved)

	_, err = service.GetUserTransactions(ctx, ownerID)
	assert.ErrorIs(t, err, boom)

	_, err = service.UpdateTransaction(ctx, ownerID, uuid.NewString(), domain.TransactionChanges{})
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, service.DeleteTransaction(ctx, ownerID, uuid.NewString()), boom)
}

func TestCreateTransaction_InvalidInputNeverReachesRepository(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewTransactionService(repo)

	err := service.CreateTransaction(context.Background(), ownerID, newExpense("Luz", "-5", "Contas", domain.NewDate(2024, time.May, 5)))

	assert.Error(t, err)
	assert.Empty(t, repo.Saved)
}

func TestDeleteTransaction(t *testing.T) {
	service := NewTransactionService(infrastructure.NewMemoryTransactionRepository())
	ctx := context.Background()

	transaction := newExpense("Farmácia", "32.10", "Saúde", domain.NewDate(2024, time.June, 1))
	require.NoError(t, service.CreateTransaction(ctx, ownerID, transaction))

	assert.ErrorIs(t, service.DeleteTransaction(ctx, strangerID, transaction.ID), financeErrors.ErrTransactionNotFound)
	require.NoError(t, service.DeleteTransaction(ctx, ownerID, transaction.ID))
	assert.ErrorIs(t, service.DeleteTransaction(ctx, ownerID, transaction.ID), financeErrors.ErrTransactionNotFound)
	assert.ErrorIs(t, service.DeleteTransaction(ctx, ownerID, "42"), financeErrors.ErrTransactionNotFound)
}

func TestGoalService(t *testing.T) {
	service := NewGoalService(infrastructure.NewMemoryGoalRepository())
	ctx := context.Background()

	err := service.CreateGoal(ctx, ownerID, &domain.Goal{Description: "Reserva", Amount: decimal.Zero})
	assert.True(t, financeErrors.IsValidationError(err))

	goal := &domain.Goal{Description: "Reserva", Amount: decimal.NewFromInt(1000)}
	require.NoError(t, service.CreateGoal(ctx, ownerID, goal))
	assert.NotEmpty(t, goal.ID)

	goals, err := service.GetUserGoals(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, goals, 1)

	assert.ErrorIs(t, service.DeleteGoal(ctx, strangerID, goal.ID), financeErrors.ErrGoalNotFound)
	require.NoError(t, service.DeleteGoal(ctx, ownerID, goal.ID))
	assert.ErrorIs(t, service.DeleteGoal(ctx, ownerID, goal.ID), financeErrors.ErrGoalNotFound)
}

func TestReportService(t *testing.T) {
	transactions := infrastructure.NewMemoryTransactionRepository()
	goals := infrastructure.NewMemoryGoalRepository()
	txService := NewTransactionService(transactions)
	goalService := NewGoalService(goals)
	reports := NewReportService(transactions, goals)
	ctx := context.Background()

	income := &domain.Transaction{Type: domain.TypeIncome, Description: "Salário", Amount: decimal.NewFromInt(1000), Category: "Salário", Date: domain.NewDate(2024, time.January, 5)}
	require.NoError(t, txService.CreateTransaction(ctx, ownerID, income))
	require.NoError(t, txService.CreateTransaction(ctx, ownerID, newExpense("Aluguel", "500", "Moradia", domain.NewDate(2024, time.February, 1))))
	require.NoError(t, goalService.CreateGoal(ctx, ownerID, &domain.Goal{Description: "Viagem", Amount: decimal.NewFromInt(1000)}))

	report, err := reports.GetReport(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, report.Summary.Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, []string{"Jan/2024", "Fev/2024"}, report.Monthly.Labels)
	assert.Equal(t, []string{"Moradia"}, report.Categories.Labels)
	require.Len(t, report.Goals, 1)
	assert.True(t, report.Goals[0].Percent.Equal(decimal.NewFromInt(50)))

	var buf bytes.Buffer
	require.NoError(t, reports.ExportCSV(ctx, ownerID, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)

	empty, err := reports.GetReport(ctx, strangerID)
	require.NoError(t, err)
	assert.True(t, empty.Summary.Balance.IsZero())
	assert.Empty(t, empty.Goals)
}

func TestCategoryService_ReturnsCopies(t *testing.T) {
	service := NewCategoryService()
	vocabulary := service.GetVocabulary()
	vocabulary.Income[0] = "changed"

	assert.Equal(t, "Salário", service.GetVocabulary().Income[0])

	fresh := service.GetVocabulary()
	for _, category := range fresh.Income {
		assert.True(t, domain.IsValidCategory(domain.TypeIncome, category), category)
	}
	for _, category := range fresh.Expense {
		assert.True(t, domain.IsValidCategory(domain.TypeExpense, category), category)
	}
}
