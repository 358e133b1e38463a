package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGoalNotFound        = errors.New("goal not found")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func NewValidationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) || errors.Is(err, ErrGoalNotFound)
}

var (
	ErrInvalidType        = NewValidationError("Type must be 'income' or 'expense'")
	ErrInvalidCategory    = NewValidationError("Category is not valid for this transaction type")
	ErrInvalidAmount      = NewValidationError("Amount must be a number greater than zero")
	ErrAmountTooLarge     = NewValidationError("Amount is too large")
	ErrMissingDescription = NewValidationError("Description is required")
	ErrMissingDate        = NewValidationError("Date is required")
	ErrDescriptionLength  = NewValidationError("Description must be of length less than 200")
)

// ValidationErrors collects every problem found in a single request body.
type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Unwrap() []error {
	return ve.Errors
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

func (ve *ValidationErrors) Messages() []string {
	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = err.Error()
	}
	return messages
}

// ErrOrNil returns nil when nothing was collected.
func (ve *ValidationErrors) ErrOrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0]
	}
	return ve
}

func IsValidationErrors(err error) bool {
	var validationErrors *ValidationErrors
	ok := errors.As(err, &validationErrors)
	return ok
}
