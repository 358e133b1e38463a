package application

import (
	"context"
	"io"

	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

// Report is everything the dashboard and goals pages derive from a user's data.
type Report struct {
	Summary    aggregation.Summary        `json:"summary"`
	Monthly    aggregation.MonthlySeries  `json:"monthly"`
	Categories aggregation.CategorySeries `json:"categories"`
	Goals      []aggregation.GoalProgress `json:"goals"`
}

type ReportService struct {
	transactions domain.TransactionRepository
	goals        domain.GoalRepository
}

func NewReportService(transactions domain.TransactionRepository, goals domain.GoalRepository) *ReportService {
	return &ReportService{transactions: transactions, goals: goals}
}

func (s *ReportService) GetReport(ctx context.Context, userID string) (*Report, error) {
	transactions, err := s.transactions.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Report{
		Summary:    aggregation.Summarize(transactions),
		Monthly:    aggregation.Monthly(transactions),
		Categories: aggregation.ByCategory(transactions),
		Goals:      aggregation.GoalsProgress(transactions, goals),
	}, nil
}

// ExportCSV writes every transaction of the user to w.
func (s *ReportService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	transactions, err := s.transactions.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	return aggregation.WriteCSV(w, transactions)
}
