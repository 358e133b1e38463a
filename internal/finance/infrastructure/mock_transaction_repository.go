package infrastructure

import (
	"context"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

// MockTransactionRepository serves reads from Transactions and lets tests
// force failures on each method.
type MockTransactionRepository struct {
	Transactions []domain.Transaction

	SaveErr   error
	FindErr   error
	UpdateErr error
	DeleteErr error
	// Affected is returned by Update and Delete when no error is set.
	Affected int64

	Saved   []domain.Transaction
	Updated []domain.Transaction
}

func (m *MockTransactionRepository) Save(_ context.Context, transaction domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, transaction)
	return nil
}

func (m *MockTransactionRepository) FindByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var filtered []domain.Transaction
	for _, t := range m.Transactions {
		if t.UserID == userID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	list, err := m.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		if t.ID == transactionID {
			return &t, nil
		}
	}
	return nil, financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(_ context.Context, transaction domain.Transaction) (int64, error) {
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}
	m.Updated = append(m.Updated, transaction)
	return m.Affected, nil
}

func (m *MockTransactionRepository) Delete(_ context.Context, _, _ string) (int64, error) {
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	return m.Affected, nil
}
