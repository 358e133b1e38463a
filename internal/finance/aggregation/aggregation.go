// Package aggregation turns a user's transactions into the derived views shown
// on the dashboard and goals pages: balance summary, monthly and category
// series, goal progress and the CSV export. Every function is pure.
package aggregation

import (
	"sort"
	"strconv"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

var monthAbbreviations = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

var hundred = decimal.NewFromInt(100)

type Summary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// MonthlySeries holds three index-aligned slices, one entry per (year, month) bucket.
type MonthlySeries struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// CategorySeries holds expense totals per category in first-seen order.
type CategorySeries struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

type GoalProgress struct {
	GoalID      string          `json:"goal_id"`
	Description string          `json:"description"`
	Target      decimal.Decimal `json:"target"`
	Current     decimal.Decimal `json:"current"`
	Percent     decimal.Decimal `json:"percent"`
}

func Summarize(transactions []domain.Transaction) Summary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case domain.TypeIncome:
			income = income.Add(t.Amount)
		case domain.TypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return Summary{Income: income, Expenses: expenses, Balance: income.Sub(expenses)}
}

func Balance(transactions []domain.Transaction) decimal.Decimal {
	return Summarize(transactions).Balance
}

type monthKey struct {
	year  int
	month int
}

type monthBucket struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

func Monthly(transactions []domain.Transaction) MonthlySeries {
	buckets := make(map[monthKey]*monthBucket)
	for _, t := range transactions {
		key := monthKey{year: t.Date.Year(), month: int(t.Date.Month())}
		b, ok := buckets[key]
		if !ok {
			b = &monthBucket{income: decimal.Zero, expenses: decimal.Zero}
			buckets[key] = b
		}
		switch t.Type {
		case domain.TypeIncome:
			b.income = b.income.Add(t.Amount)
		case domain.TypeExpense:
			b.expenses = b.expenses.Add(t.Amount)
		}
	}

	keys := make([]monthKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	series := MonthlySeries{
		Labels:   make([]string, 0, len(keys)),
		Income:   make([]decimal.Decimal, 0, len(keys)),
		Expenses: make([]decimal.Decimal, 0, len(keys)),
	}
	for _, k := range keys {
		series.Labels = append(series.Labels, MonthLabel(k.year, k.month))
		series.Income = append(series.Income, buckets[k].income)
		series.Expenses = append(series.Expenses, buckets[k].expenses)
	}
	return series
}

// MonthLabel formats a bucket label such as "Fev/2024". month is 1-based.
func MonthLabel(year, month int) string {
	return monthAbbreviations[month-1] + "/" + strconv.Itoa(year)
}

func ByCategory(transactions []domain.Transaction) CategorySeries {
	index := make(map[string]int)
	series := CategorySeries{Labels: []string{}, Values: []decimal.Decimal{}}
	for _, t := range transactions {
		if t.Type != domain.TypeExpense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(series.Labels)
			index[t.Category] = i
			series.Labels = append(series.Labels, t.Category)
			series.Values = append(series.Values, decimal.Zero)
		}
		series.Values[i] = series.Values[i].Add(t.Amount)
	}
	return series
}

// Progress computes clamp(balance/target*100, 0, 100). A non-positive target yields 0.
func Progress(balance, target decimal.Decimal) GoalProgress {
	p := GoalProgress{
		Target:  target,
		Current: decimal.Max(balance, decimal.Zero),
		Percent: decimal.Zero,
	}
	if !target.IsPositive() {
		return p
	}
	percent := balance.Div(target).Mul(hundred)
	switch {
	case percent.LessThan(decimal.Zero):
		percent = decimal.Zero
	case percent.GreaterThan(hundred):
		percent = hundred
	}
	p.Percent = percent.Round(1)
	return p
}

func GoalsProgress(transactions []domain.Transaction, goals []domain.Goal) []GoalProgress {
	balance := Balance(transactions)
	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		p := Progress(balance, g.Amount)
		p.GoalID = g.ID
		p.Description = g.Description
		progress = append(progress, p)
	}
	return progress
}
