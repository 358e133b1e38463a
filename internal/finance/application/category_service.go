package application

import "github.com/sebuszqo/FinanceTracker/internal/finance/domain"

type CategoryService struct{}

func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

// GetVocabulary returns copies so callers cannot mutate domain.Categories.
func (s *CategoryService) GetVocabulary() domain.CategoryVocabulary {
	return domain.CategoryVocabulary{
		Income:  append([]string(nil), domain.Categories[domain.TypeIncome]...),
		Expense: append([]string(nil), domain.Categories[domain.TypeExpense]...),
	}
}
