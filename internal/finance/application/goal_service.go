package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type GoalService struct {
	repo domain.GoalRepository
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) GetUserGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return []domain.Goal{}, nil
	}
	return goals, nil
}

func (s *GoalService) CreateGoal(ctx context.Context, userID string, goal *domain.Goal) error {
	goal.ID = uuid.NewString()
	goal.UserID = userID
	goal.Normalize()
	if err := goal.Validate(); err != nil {
		return err
	}
	goal.CreatedAt = time.Now().UTC()
	return s.repo.Save(ctx, *goal)
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := uuid.Parse(goalID); err != nil {
		return financeErrors.ErrGoalNotFound
	}

	affected, err := s.repo.Delete(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrGoalNotFound
	}
	return nil
}
