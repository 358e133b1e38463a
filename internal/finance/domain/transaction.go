package domain

import (
	"context"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 200

type TransactionRepository interface {
	Save(ctx context.Context, transaction Transaction) error
	FindByUser(ctx context.Context, userID string) ([]Transaction, error)
	FindByID(ctx context.Context, userID, transactionID string) (*Transaction, error)
	Update(ctx context.Context, transaction Transaction) (int64, error)
	Delete(ctx context.Context, userID, transactionID string) (int64, error)
}

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionChanges holds the fields an edit may touch. Type is not editable.
type TransactionChanges struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        Date
}

func (t *Transaction) Normalize() {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.Amount = NormalizeAmount(t.Amount)
}

func (t *Transaction) Validate() error {
	ve := &errors.ValidationErrors{}
	if !IsValidTransactionType(string(t.Type)) {
		ve.Add(errors.ErrInvalidType)
	}
	if t.Description == "" {
		ve.Add(errors.ErrMissingDescription)
	} else if len([]rune(t.Description)) > maxDescriptionLength {
		ve.Add(errors.ErrDescriptionLength)
	}
	if err := ValidateAmount(t.Amount, errors.ErrInvalidAmount); err != nil {
		ve.Add(err)
	}
	if t.Date.IsZero() {
		ve.Add(errors.ErrMissingDate)
	}
	if IsValidTransactionType(string(t.Type)) && !IsValidCategory(t.Type, t.Category) {
		ve.Add(errors.ErrInvalidCategory)
	}
	return ve.ErrOrNil()
}

// Apply copies the editable fields onto t, leaving ID, owner and type intact.
func (t *Transaction) Apply(changes TransactionChanges) {
	t.Description = changes.Description
	t.Amount = changes.Amount
	t.Category = changes.Category
	t.Date = changes.Date
}
