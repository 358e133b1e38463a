package interfaces

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type (
	RespondJSONFunc  func(w http.ResponseWriter, status int, payload interface{})
	RespondErrorFunc func(w http.ResponseWriter, status int, message string, errors ...[]string)
)

// respondServiceError maps a service error onto the HTTP taxonomy. Unexpected
// errors are logged and hidden behind fallback.
func respondServiceError(w http.ResponseWriter, logger *slog.Logger, respondError RespondErrorFunc, err error, fallback string) {
	var validationErrors *financeErrors.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErrors.Messages())
	case financeErrors.IsValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case financeErrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

const maxBodyBytes = 1 << 20

// decodeJSON reads at most maxBodyBytes of the request body into dst. On
// failure it has already written the error response.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, respondError RespondErrorFunc) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	respondError(w, http.StatusBadRequest, "Invalid request body")
	return false
}
