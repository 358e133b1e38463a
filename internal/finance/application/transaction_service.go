package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type TransactionService struct {
	repo domain.TransactionRepository
	now  func() time.Time
}

func NewTransactionService(repo domain.TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *TransactionService) GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.UserID = userID
	transaction.Normalize()
	if err := transaction.Validate(); err != nil {
		return err
	}

	now := s.now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	return s.repo.Save(ctx, *transaction)
}

// UpdateTransaction applies changes to a stored transaction. The stored type is
// kept, so the category is validated against it.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, changes domain.TransactionChanges) (*domain.Transaction, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, financeErrors.ErrTransactionNotFound
	}

	transaction, err := s.repo.FindByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	transaction.Apply(changes)
	transaction.Normalize()
	if err := transaction.Validate(); err != nil {
		return nil, err
	}
	transaction.UpdatedAt = s.now()

	affected, err := s.repo.Update(ctx, *transaction)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, financeErrors.ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if _, err := uuid.Parse(transactionID); err != nil {
		return financeErrors.ErrTransactionNotFound
	}

	affected, err := s.repo.Delete(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}
