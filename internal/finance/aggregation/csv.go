package aggregation

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

const ExportFileName = "controle_financeiro_export.csv"

var csvHeader = []string{"ID", "Tipo", "Descrição", "Valor", "Categoria", "Data"}

// WriteCSV writes one row per transaction. Fields containing a comma are quoted.
func WriteCSV(w io.Writer, transactions []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range transactions {
		row := []string{
			t.ID,
			string(t.Type),
			t.Description,
			t.Amount.String(),
			t.Category,
			t.Date.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
