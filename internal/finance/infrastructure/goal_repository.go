package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Save(ctx context.Context, goal domain.Goal) error {
	const op = "infrastructure.GoalRepository.Save"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, description, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
		goal.ID, goal.UserID, goal.Description, goal.Amount, goal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *GoalRepository) FindByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	const op = "infrastructure.GoalRepository.FindByUser"

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, description, amount, created_at FROM goals WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Description, &goal.Amount, &goal.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return goals, nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, goalID string) (int64, error) {
	const op = "infrastructure.GoalRepository.Delete"

	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
