package domain

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func IsValidTransactionType(t string) bool {
	return TransactionType(t) == TypeIncome || TransactionType(t) == TypeExpense
}

// Categories is the fixed vocabulary a transaction's category is drawn from.
var Categories = map[TransactionType][]string{
	TypeIncome:  {"Salário", "Freelance", "Investimentos", "Presente", "Outros"},
	TypeExpense: {"Moradia", "Alimentação", "Transporte", "Lazer", "Saúde", "Educação", "Contas", "Outros"},
}

func IsValidCategory(t TransactionType, category string) bool {
	for _, c := range Categories[t] {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryVocabulary is the wire shape of Categories.
type CategoryVocabulary struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}
