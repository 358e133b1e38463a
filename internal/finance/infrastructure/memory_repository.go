package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

// MemoryTransactionRepository keeps transactions in process memory. It backs
// STORAGE_DRIVER=memory and the handler tests.
type MemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]domain.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{transactions: make(map[string]domain.Transaction)}
}

func (m *MemoryTransactionRepository) Save(_ context.Context, transaction domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MemoryTransactionRepository) FindByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	transactions := []domain.Transaction{}
	for _, t := range m.transactions {
		if t.UserID == userID {
			transactions = append(transactions, t)
		}
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date.Time) {
			return transactions[i].Date.After(transactions[j].Date.Time)
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

func (m *MemoryTransactionRepository) FindByID(_ context.Context, userID, transactionID string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.transactions[transactionID]
	if !ok || t.UserID != userID {
		return nil, financeErrors.ErrTransactionNotFound
	}
	return &t, nil
}

func (m *MemoryTransactionRepository) Update(_ context.Context, transaction domain.Transaction) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.transactions[transaction.ID]
	if !ok || stored.UserID != transaction.UserID {
		return 0, nil
	}
	stored.Description = transaction.Description
	stored.Amount = transaction.Amount
	stored.Category = transaction.Category
	stored.Date = transaction.Date
	stored.UpdatedAt = transaction.UpdatedAt
	m.transactions[transaction.ID] = stored
	return 1, nil
}

func (m *MemoryTransactionRepository) Delete(_ context.Context, userID, transactionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transactions[transactionID]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	delete(m.transactions, transactionID)
	return 1, nil
}

type MemoryGoalRepository struct {
	mu    sync.RWMutex
	goals []domain.Goal
}

func NewMemoryGoalRepository() *MemoryGoalRepository {
	return &MemoryGoalRepository{}
}

func (m *MemoryGoalRepository) Save(_ context.Context, goal domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals = append(m.goals, goal)
	return nil
}

func (m *MemoryGoalRepository) FindByUser(_ context.Context, userID string) ([]domain.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	goals := []domain.Goal{}
	for _, g := range m.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (m *MemoryGoalRepository) Delete(_ context.Context, userID, goalID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, g := range m.goals {
		if g.ID == goalID && g.UserID == userID {
			m.goals = append(m.goals[:i], m.goals[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
