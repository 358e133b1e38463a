package domain

import (
	"context"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type GoalRepository interface {
	Save(ctx context.Context, goal Goal) error
	FindByUser(ctx context.Context, userID string) ([]Goal, error)
	Delete(ctx context.Context, userID, goalID string) (int64, error)
}

var errGoalAmount = errors.NewValidationError("Goal amount must be a number greater than zero")

// Goal is a savings target. Its progress is derived from the live balance and never stored.
type Goal struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (g *Goal) Normalize() {
	g.Description = strings.TrimSpace(g.Description)
	g.Amount = NormalizeAmount(g.Amount)
}

func (g *Goal) Validate() error {
	ve := &errors.ValidationErrors{}
	if g.Description == "" {
		ve.Add(errors.ErrMissingDescription)
	} else if len([]rune(g.Description)) > maxDescriptionLength {
		ve.Add(errors.ErrDescriptionLength)
	}
	if err := ValidateAmount(g.Amount, errGoalAmount); err != nil {
		ve.Add(err)
	}
	return ve.ErrOrNil()
}
