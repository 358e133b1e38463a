package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, type, description, amount, category, date, created_at, updated_at`

func scanTransaction(row interface{ Scan(dest ...any) error }, t *domain.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.Type, &t.Description, &t.Amount, &t.Category, &t.Date, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TransactionRepository) Save(ctx context.Context, transaction domain.Transaction) error {
	const op = "infrastructure.TransactionRepository.Save"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, type, description, amount, category, date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		transaction.ID, transaction.UserID, transaction.Type, transaction.Description, transaction.Amount,
		transaction.Category, transaction.Date, transaction.CreatedAt, transaction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *TransactionRepository) FindByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	const op = "infrastructure.TransactionRepository.FindByUser"

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var transaction domain.Transaction
		if err := scanTransaction(rows, &transaction); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return transactions, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	const op = "infrastructure.TransactionRepository.FindByID"

	var transaction domain.Transaction
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err := scanTransaction(row, &transaction); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &transaction, nil
}

func (r *TransactionRepository) Update(ctx context.Context, transaction domain.Transaction) (int64, error) {
	const op = "infrastructure.TransactionRepository.Update"

	result, err := r.db.ExecContext(ctx, `
        UPDATE transactions
        SET description = $1, amount = $2, category = $3, date = $4, updated_at = $5
        WHERE id = $6 AND user_id = $7
    `, transaction.Description, transaction.Amount, transaction.Category, transaction.Date, transaction.UpdatedAt,
		transaction.ID, transaction.UserID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, transactionID string) (int64, error) {
	const op = "infrastructure.TransactionRepository.Delete"

	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
