package domain

import (
	"github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(14,2): at most 12 integer digits and cents.
const (
	amountScale       = 2
	maxAmountDigits   = 12
	minAmountExponent = -32
)

var MaxAmount = decimal.New(1, maxAmountDigits)

// NormalizeAmount rounds d to cents. An exponent far outside the stored
// range is left alone so that rounding never expands it into digits.
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	exp := int(d.Exponent())
	if exp < minAmountExponent || d.NumDigits()+exp > maxAmountDigits {
		return d
	}
	return d.Round(amountScale)
}

// ValidateAmount returns invalid for non-positive amounts and
// ErrAmountTooLarge for amounts that do not fit the stored column.
// The digit count is checked before any comparison that would rescale d.
func ValidateAmount(d decimal.Decimal, invalid error) error {
	exp := int(d.Exponent())
	switch {
	case d.Sign() <= 0 || exp < minAmountExponent:
		return invalid
	case d.NumDigits()+exp > maxAmountDigits || d.GreaterThanOrEqual(MaxAmount):
		return errors.ErrAmountTooLarge
	}
	return nil
}
