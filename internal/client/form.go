package client

import (
	"errors"
	"strings"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

// parseAmount accepts "1234.56" or "1234,56". Anything that is not a positive
// number is rejected rather than read as zero, and amounts the server could
// not store are rejected before any request is sent.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Msg: msgInvalidAmount}
	}
	if err := domain.ValidateAmount(domain.NormalizeAmount(amount), &ValidationError{Msg: msgInvalidAmount}); err != nil {
		var invalid *ValidationError
		if errors.As(err, &invalid) {
			return decimal.Zero, invalid
		}
		return decimal.Zero, &ValidationError{Msg: msgAmountTooLarge}
	}
	return amount, nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
